package stores

import (
	"context"
	"errors"

	"github.com/rezensionsheld/backend/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

const maxListLimit = 100

type OrderStore struct {
	BaseStore
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{BaseStore: BaseStore{db: db}}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	return s.GetDB(ctx).Create(order).Error
}

// ListRecent returns up to limit orders, newest first. The limit is capped
// at 100.
func (s *OrderStore) ListRecent(ctx context.Context, limit int) ([]*models.Order, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	var orders []*models.Order
	if err := s.GetDB(ctx).Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.GetDB(ctx).First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.GetDB(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
