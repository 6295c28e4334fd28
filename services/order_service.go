package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/utils"
)

// ErrMissingOrderFields is the only validation failure a submission can
// produce; everything else is accepted as-is.
var ErrMissingOrderFields = errors.New("business place id and at least one selected review are required")

const estimatedProcessingTime = "24-48 Stunden"

// OrderPersister is what the order service needs from storage. Nil means no
// database is configured; submissions still succeed.
type OrderPersister interface {
	Create(ctx context.Context, order *models.Order) error
}

// Notifier queues the two templated notification mails. Implementations
// must never block or fail the caller.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order)
	SendAdminAlert(ctx context.Context, order *models.Order)
}

// OrderService validates and records removal orders. Persistence and
// notification are best-effort: their failures are logged and swallowed,
// and the customer-facing confirmation is returned regardless.
type OrderService struct {
	store    OrderPersister
	notifier Notifier
	logger   *utils.Logger
}

func NewOrderService(store OrderPersister, notifier Notifier) *OrderService {
	return &OrderService{
		store:    store,
		notifier: notifier,
		logger:   utils.NewLogger("order-service"),
	}
}

func (s *OrderService) Submit(ctx context.Context, req *models.SubmitOrderRequest) (*models.SubmitOrderResponse, error) {
	if req.BusinessPlaceID == "" || len(req.SelectedReviews) == 0 {
		return nil, ErrMissingOrderFields
	}

	reviewCount := len(req.SelectedReviews)
	totalPrice := math.Round(float64(reviewCount)*models.PricePerReview*100) / 100

	selectedJSON, err := json.Marshal(req.SelectedReviews)
	if err != nil {
		return nil, utils.WrapError(err, "failed to encode selected reviews")
	}

	order := &models.Order{
		OrderID:         utils.GenerateOrderID(),
		BusinessName:    req.BusinessName,
		BusinessPlaceID: req.BusinessPlaceID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SelectedReviews: selectedJSON,
		TotalPrice:      totalPrice,
		ReviewCount:     reviewCount,
		Status:          models.OrderStatusPending,
	}

	if s.store != nil {
		if err := s.store.Create(ctx, order); err != nil {
			s.logger.Error(ctx, "failed to persist order", map[string]interface{}{
				"order_id": order.OrderID,
				"error":    err.Error(),
			})
		}
	} else {
		s.logger.Warn(ctx, "no database configured, order not persisted", map[string]interface{}{
			"order_id": order.OrderID,
		})
	}

	if s.notifier != nil {
		s.notifier.SendOrderConfirmation(ctx, order)
		s.notifier.SendAdminAlert(ctx, order)
	}

	s.logger.Info(ctx, "order submitted", map[string]interface{}{
		"order_id":     order.OrderID,
		"review_count": reviewCount,
		"total_price":  totalPrice,
	})

	return &models.SubmitOrderResponse{
		Success:                 true,
		OrderID:                 order.OrderID,
		TotalPrice:              totalPrice,
		ReviewCount:             reviewCount,
		EstimatedProcessingTime: estimatedProcessingTime,
	}, nil
}
