package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// PricePerReview is the fixed charge per selected review. The total is
// always recomputed server-side from the selection count.
const PricePerReview = 39.99

// Order is a customer's request to have a set of negative reviews targeted
// for removal. selected_reviews is stored as JSONB; both reporting paths
// read it back as structured data.
type Order struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrderID         string         `json:"order_id" gorm:"uniqueIndex;not null"`
	BusinessName    string         `json:"business_name"`
	BusinessPlaceID string         `json:"business_place_id" gorm:"index;not null"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerPhone   string         `json:"customer_phone"`
	SelectedReviews datatypes.JSON `json:"selected_reviews" gorm:"type:jsonb"`
	TotalPrice      float64        `json:"total_price"`
	ReviewCount     int            `json:"review_count"`
	Status          OrderStatus    `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt       time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// SubmitOrderRequest is the client payload for POST /api/submit-order. Any
// client-supplied totalPrice is ignored in favor of the server computation.
type SubmitOrderRequest struct {
	BusinessName    string   `json:"businessName"`
	BusinessPlaceID string   `json:"businessPlaceId"`
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail"`
	CustomerPhone   string   `json:"customerPhone"`
	SelectedReviews []Review `json:"selectedReviews"`
	TotalPrice      float64  `json:"totalPrice,omitempty"`
}

type SubmitOrderResponse struct {
	Success                 bool    `json:"success"`
	OrderID                 string  `json:"orderId"`
	TotalPrice              float64 `json:"totalPrice"`
	ReviewCount             int     `json:"reviewCount"`
	EstimatedProcessingTime string  `json:"estimatedProcessingTime"`
}

// OrderDetail is the human-readable reshape used by the admin detail and
// detailed-list endpoints. Field labels are German on purpose; the audience
// is the internal operations team.
type OrderDetail struct {
	AuftragsID  string             `json:"auftragsId"`
	Status      OrderStatus        `json:"status"`
	ErstelltAm  time.Time          `json:"erstelltAm"`
	Unternehmen OrderBusinessBlock `json:"unternehmen"`
	Kunde       OrderCustomerBlock `json:"kunde"`
	Preis       OrderPriceBlock    `json:"preis"`
	Bewertungen []ReviewDetail     `json:"bewertungen"`
}

type OrderBusinessBlock struct {
	Name    string `json:"name"`
	PlaceID string `json:"placeId"`
}

type OrderCustomerBlock struct {
	Name    string `json:"name"`
	EMail   string `json:"email"`
	Telefon string `json:"telefon"`
}

type OrderPriceBlock struct {
	Gesamt    float64 `json:"gesamt"`
	ProReview float64 `json:"proReview"`
	Anzahl    int     `json:"anzahl"`
	Waehrung  string  `json:"waehrung"`
}

type ReviewDetail struct {
	ID         string `json:"id"`
	Bewerter   string `json:"bewerter"`
	Sterne     int    `json:"sterne"`
	Text       string `json:"text"`
	Textlaenge int    `json:"textlaenge"`
	URL        string `json:"url,omitempty"`
}
