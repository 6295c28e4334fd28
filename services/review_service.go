package services

import (
	"context"
	"encoding/json"

	"github.com/rezensionsheld/backend/cache"
	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/providers"
	"github.com/rezensionsheld/backend/utils"
)

// ReviewService serves review pages cache-aside: a fresh cached page is
// returned without touching the upstream; a miss fetches, stores and
// returns. Cache failures degrade to a fetch, never to an error.
type ReviewService struct {
	provider providers.ReviewProvider
	cache    cache.Store
	logger   *utils.Logger
}

func NewReviewService(provider providers.ReviewProvider, cacheStore cache.Store) *ReviewService {
	return &ReviewService{
		provider: provider,
		cache:    cacheStore,
		logger:   utils.NewLogger("review-service"),
	}
}

func (s *ReviewService) GetReviews(ctx context.Context, placeID string, offset int, sort string) (*models.ReviewPage, error) {
	key := cache.Key(placeID, offset, sort)

	if payload, err := s.cache.Get(ctx, key); err == nil {
		var page models.ReviewPage
		if err := json.Unmarshal(payload, &page); err == nil {
			s.logger.Debug(ctx, "cache hit", map[string]interface{}{"key": key})
			return &page, nil
		}
		s.logger.Warn(ctx, "discarding undecodable cache entry", map[string]interface{}{"key": key})
	}

	page, err := s.provider.FetchReviews(ctx, placeID, offset, sort)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(page); err == nil {
		if err := s.cache.Put(ctx, key, payload); err != nil {
			s.logger.Warn(ctx, "failed to store review page in cache", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return page, nil
}
