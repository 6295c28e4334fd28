package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/stores"
	"github.com/rezensionsheld/backend/utils"
)

// ErrNoStore means reporting was requested but no database is configured.
// Handlers answer 503, distinct from a query failure against a configured
// store.
var ErrNoStore = errors.New("no order store configured")

var ErrOrderNotFound = stores.ErrOrderNotFound

// OrderReader is what reporting needs from storage.
type OrderReader interface {
	ListRecent(ctx context.Context, limit int) ([]*models.Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
}

// ReportService exposes read-only views over persisted orders: the raw rows
// for programmatic use and a German-labeled reshape for manual review.
type ReportService struct {
	store  OrderReader
	logger *utils.Logger
}

func NewReportService(store OrderReader) *ReportService {
	return &ReportService{
		store:  store,
		logger: utils.NewLogger("report-service"),
	}
}

func (s *ReportService) List(ctx context.Context, limit int) ([]*models.Order, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.ListRecent(ctx, limit)
}

// Total is the number of stored orders, independent of any list limit.
func (s *ReportService) Total(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, ErrNoStore
	}
	return s.store.Count(ctx)
}

func (s *ReportService) Get(ctx context.Context, orderID string) (*models.OrderDetail, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	order, err := s.store.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.reshape(ctx, order), nil
}

func (s *ReportService) ListDetailed(ctx context.Context, limit int) ([]*models.OrderDetail, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	orders, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	details := make([]*models.OrderDetail, 0, len(orders))
	for _, order := range orders {
		details = append(details, s.reshape(ctx, order))
	}
	return details, nil
}

func (s *ReportService) reshape(ctx context.Context, order *models.Order) *models.OrderDetail {
	var reviews []models.Review
	if len(order.SelectedReviews) > 0 {
		if err := json.Unmarshal(order.SelectedReviews, &reviews); err != nil {
			s.logger.Error(ctx, "stored selected_reviews is not valid JSON", map[string]interface{}{
				"order_id": order.OrderID,
				"error":    err.Error(),
			})
		}
	}

	reviewDetails := make([]models.ReviewDetail, 0, len(reviews))
	for _, review := range reviews {
		reviewDetails = append(reviewDetails, models.ReviewDetail{
			ID:         review.ID,
			Bewerter:   review.Reviewer,
			Sterne:     review.Rating,
			Text:       review.Text,
			Textlaenge: len([]rune(review.Text)),
			URL:        review.URL,
		})
	}

	return &models.OrderDetail{
		AuftragsID: order.OrderID,
		Status:     order.Status,
		ErstelltAm: order.CreatedAt,
		Unternehmen: models.OrderBusinessBlock{
			Name:    order.BusinessName,
			PlaceID: order.BusinessPlaceID,
		},
		Kunde: models.OrderCustomerBlock{
			Name:    order.CustomerName,
			EMail:   order.CustomerEmail,
			Telefon: order.CustomerPhone,
		},
		Preis: models.OrderPriceBlock{
			Gesamt:    order.TotalPrice,
			ProReview: models.PricePerReview,
			Anzahl:    order.ReviewCount,
			Waehrung:  "EUR",
		},
		Bewertungen: reviewDetails,
	}
}
