package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/services"
	"github.com/rezensionsheld/backend/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) HandleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, utils.ErrInvalidRequest.Message)
		return
	}

	resp, err := h.orderService.Submit(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingOrderFields) {
			writeError(w, http.StatusBadRequest, utils.ErrMissingOrderFields.Message)
			return
		}
		utils.LogError(r.Context(), err, "order submission failed", nil)
		writeError(w, http.StatusInternalServerError, utils.ErrInternalServer.Message)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
