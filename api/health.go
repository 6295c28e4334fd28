package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Database    string    `json:"database"`
	Email       string    `json:"email"`
}

type HealthHandler struct {
	environment    string
	dbConfigured   bool
	mailConfigured bool
}

func NewHealthHandler(environment string, dbConfigured, mailConfigured bool) *HealthHandler {
	return &HealthHandler{
		environment:    environment,
		dbConfigured:   dbConfigured,
		mailConfigured: mailConfigured,
	}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now(),
		Environment: h.environment,
		Database:    configuredLabel(h.dbConfigured),
		Email:       configuredLabel(h.mailConfigured),
	}

	writeJSON(w, http.StatusOK, response)
}

func configuredLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "not_configured"
}
