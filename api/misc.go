package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rezensionsheld/backend/cache"
	"github.com/rezensionsheld/backend/mailer"
	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/services"
)

// MiscHandler hosts the placeholder business endpoint and the diagnostic
// routes.
type MiscHandler struct {
	mail          *mailer.Mailer
	reportService *services.ReportService
	cacheStore    cache.Store
}

func NewMiscHandler(mail *mailer.Mailer, reportService *services.ReportService, cacheStore cache.Store) *MiscHandler {
	return &MiscHandler{
		mail:          mail,
		reportService: reportService,
		cacheStore:    cacheStore,
	}
}

type businessResponse struct {
	Success  bool         `json:"success"`
	Business businessInfo `json:"business"`
}

type businessInfo struct {
	PlaceID string `json:"placeId"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// HandleGetBusiness returns placeholder business info; the frontend
// resolves the real details from the review fetch.
func (h *MiscHandler) HandleGetBusiness(w http.ResponseWriter, r *http.Request) {
	placeID := mux.Vars(r)["placeId"]

	writeJSON(w, http.StatusOK, businessResponse{
		Success: true,
		Business: businessInfo{
			PlaceID: placeID,
			Name:    "Unternehmen",
			Address: "",
		},
	})
}

type testEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleTestEmail queues a diagnostic mail. Always answers 200; the send
// itself is asynchronous and best-effort.
func (h *MiscHandler) HandleTestEmail(w http.ResponseWriter, r *http.Request) {
	if h.mail == nil {
		writeJSON(w, http.StatusOK, testEmailResponse{
			Success: false,
			Error:   "E-Mail-Versand nicht konfiguriert",
		})
		return
	}

	h.mail.SendTest(r.Context())
	writeJSON(w, http.StatusOK, testEmailResponse{
		Success: true,
		Message: "Test-E-Mail wurde in den Versand gegeben",
	})
}

type debugOrderEntry struct {
	OrderID            string `json:"orderId"`
	ReviewCount        int    `json:"reviewCount"`
	SelectedValidJSON  bool   `json:"selectedValidJson"`
	SelectedItemCount  int    `json:"selectedItemCount"`
	SelectedBytesTotal int    `json:"selectedBytesTotal"`
}

type debugOrdersResponse struct {
	Success bool              `json:"success"`
	Debug   []debugOrderEntry `json:"debug"`
	Cache   *cache.Stats      `json:"cache,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// statsReporter is the optional counter surface a cache backend may expose.
type statsReporter interface {
	GetStats() cache.Stats
}

func (h *MiscHandler) cacheStats() *cache.Stats {
	reporter, ok := h.cacheStore.(statsReporter)
	if !ok {
		return nil
	}
	stats := reporter.GetStats()
	return &stats
}

// HandleDebugOrdersRaw dumps the stored shape of selected_reviews per
// order. Failures are folded into the body instead of a non-200 status.
func (h *MiscHandler) HandleDebugOrdersRaw(w http.ResponseWriter, r *http.Request) {
	orders, err := h.reportService.List(r.Context(), defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusOK, debugOrdersResponse{
			Success: false,
			Cache:   h.cacheStats(),
			Error:   err.Error(),
		})
		return
	}

	entries := make([]debugOrderEntry, 0, len(orders))
	for _, order := range orders {
		var reviews []models.Review
		valid := json.Unmarshal(order.SelectedReviews, &reviews) == nil

		entries = append(entries, debugOrderEntry{
			OrderID:            order.OrderID,
			ReviewCount:        order.ReviewCount,
			SelectedValidJSON:  valid,
			SelectedItemCount:  len(reviews),
			SelectedBytesTotal: len(order.SelectedReviews),
		})
	}

	writeJSON(w, http.StatusOK, debugOrdersResponse{
		Success: true,
		Debug:   entries,
		Cache:   h.cacheStats(),
	})
}
