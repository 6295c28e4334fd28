package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/services"
	"github.com/rezensionsheld/backend/utils"
)

const defaultListLimit = 100

type AdminHandler struct {
	reportService *services.ReportService
}

func NewAdminHandler(reportService *services.ReportService) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
	}
}

type listOrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []*models.Order `json:"orders"`
	Total   int             `json:"total"`
}

func (h *AdminHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultListLimit)

	orders, err := h.reportService.List(r.Context(), limit)
	if err != nil {
		h.writeReportError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listOrdersResponse{
		Success: true,
		Orders:  orders,
		Total:   h.total(r, len(orders)),
	})
}

// total asks the store for the full order count; a failed count query falls
// back to the page length rather than failing the listing.
func (h *AdminHandler) total(r *http.Request, fallback int) int {
	count, err := h.reportService.Total(r.Context())
	if err != nil {
		return fallback
	}
	return int(count)
}

type listOrdersDetailedResponse struct {
	Success bool                  `json:"success"`
	Orders  []*models.OrderDetail `json:"orders"`
	Total   int                   `json:"total"`
	Hinweis string                `json:"hinweis"`
}

func (h *AdminHandler) HandleListOrdersDetailed(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultListLimit)

	details, err := h.reportService.ListDetailed(r.Context(), limit)
	if err != nil {
		h.writeReportError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listOrdersDetailedResponse{
		Success: true,
		Orders:  details,
		Total:   h.total(r, len(details)),
		Hinweis: "Formatierte Ansicht für die manuelle Prüfung",
	})
}

type orderDetailResponse struct {
	Success bool                  `json:"success"`
	Auftrag *models.OrderDetail   `json:"auftrag"`
	Reviews []models.ReviewDetail `json:"reviews"`
}

func (h *AdminHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	detail, err := h.reportService.Get(r.Context(), orderID)
	if err != nil {
		h.writeReportError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orderDetailResponse{
		Success: true,
		Auftrag: detail,
		Reviews: detail.Bewertungen,
	})
}

func (h *AdminHandler) writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNoStore):
		writeError(w, http.StatusServiceUnavailable, utils.ErrNoDatabase.Message)
	case errors.Is(err, services.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, utils.ErrOrderNotFound.Message)
	default:
		utils.LogError(r.Context(), err, "order reporting query failed", nil)
		writeError(w, http.StatusInternalServerError, utils.ErrOrderQuery.Message)
	}
}
