package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rezensionsheld/backend/services"
	"github.com/rezensionsheld/backend/utils"
)

const defaultSort = "lowest_rating"

type ReviewHandler struct {
	reviewService *services.ReviewService
	echoDetail    bool
}

// NewReviewHandler creates the handler for the review fetch endpoint.
// echoDetail controls whether the technical cause of an upstream failure is
// included in the response; it is off in production.
func NewReviewHandler(reviewService *services.ReviewService, echoDetail bool) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		echoDetail:    echoDetail,
	}
}

func (h *ReviewHandler) HandleGetReviews(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["placeId"]
	offset := queryInt(r, "offset", 0)
	sort := queryString(r, "sort", defaultSort)

	page, err := h.reviewService.GetReviews(r.Context(), placeID, offset, sort)
	if err != nil {
		var upstreamErr *utils.UpstreamError
		if errors.As(err, &upstreamErr) {
			resp := ErrorResponse{Message: upstreamErr.Message}
			if h.echoDetail {
				resp.Detail = upstreamErr.Detail
			}
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
		writeError(w, http.StatusInternalServerError, utils.MsgUpstreamGeneric)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
