package utils

import (
	"fmt"
	"net/http"
)

// APIError is an error that carries the HTTP status and the German
// user-facing message returned to the client.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrInvalidRequest     = NewAPIError(http.StatusBadRequest, "Ungültige Anfrage")
	ErrNotFound           = NewAPIError(http.StatusNotFound, "Nicht gefunden")
	ErrInternalServer     = NewAPIError(http.StatusInternalServerError, "Ein interner Fehler ist aufgetreten")
	ErrServiceUnavailable = NewAPIError(http.StatusServiceUnavailable, "Dienst derzeit nicht verfügbar")
)

var (
	ErrMissingOrderFields = NewAPIError(http.StatusBadRequest, "Business-ID und mindestens eine ausgewählte Bewertung sind erforderlich")
	ErrOrderNotFound      = NewAPIError(http.StatusNotFound, "Auftrag nicht gefunden")
	ErrNoDatabase         = NewAPIError(http.StatusServiceUnavailable, "Datenbank nicht konfiguriert")
	ErrOrderQuery         = NewAPIError(http.StatusInternalServerError, "Aufträge konnten nicht geladen werden")
)

// User-facing messages for upstream review API failures, keyed by the
// upstream status class. The service boundary always answers 500.
var (
	MsgUpstreamAuth    = "Authentifizierung beim Bewertungsdienst fehlgeschlagen"
	MsgUpstreamQuota   = "Das Abfragekontingent des Bewertungsdienstes ist erschöpft"
	MsgUpstreamLimited = "Zu viele Anfragen an den Bewertungsdienst, bitte später erneut versuchen"
	MsgUpstreamGeneric = "Bewertungen konnten nicht geladen werden"
)

// UpstreamError describes a failed call to the review aggregator. Message is
// safe to show to a client; Detail is the technical cause and is echoed only
// outside production.
type UpstreamError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// ClassifyUpstreamStatus maps an upstream HTTP status to the bounded set of
// user-facing messages.
func ClassifyUpstreamStatus(status int, detail string) *UpstreamError {
	msg := MsgUpstreamGeneric
	switch status {
	case http.StatusUnauthorized:
		msg = MsgUpstreamAuth
	case http.StatusForbidden:
		msg = MsgUpstreamQuota
	case http.StatusTooManyRequests:
		msg = MsgUpstreamLimited
	}
	return &UpstreamError{
		StatusCode: status,
		Message:    msg,
		Detail:     detail,
	}
}

func WrapError(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}
