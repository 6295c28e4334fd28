package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is how long a cached review page stays fresh.
const DefaultTTL = 5 * time.Minute

// ErrMiss is returned by Get when the key is absent or stale.
var ErrMiss = errors.New("cache: miss")

// Store is the cache backend behind the review service. The in-memory
// implementation is the default; a Redis backend can be substituted for
// multi-process deployments without changing call sites.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
}

type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// Key builds the composite cache key for a review page. Two requests with
// the same place, offset and sort share one entry.
func Key(placeID string, offset int, sort string) string {
	return fmt.Sprintf("%s:%d:%s", placeID, offset, sort)
}
