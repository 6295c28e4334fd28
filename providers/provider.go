package providers

import (
	"context"

	"github.com/rezensionsheld/backend/models"
)

// ReviewProvider is the interface for upstream review aggregators.
type ReviewProvider interface {
	// FetchReviews returns one page of reviews for a place. Errors of type
	// *utils.UpstreamError carry a user-facing message classified from the
	// upstream status.
	FetchReviews(ctx context.Context, placeID string, offset int, sort string) (*models.ReviewPage, error)

	IsAvailable(ctx context.Context) bool
}
