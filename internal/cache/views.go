package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewDedupTTL bounds how long a viewer is remembered per item. After
// it lapses the same viewer counts again.
const ViewDedupTTL = 30 * time.Minute

// ViewTracker deduplicates item views per viewer within a TTL window.
type ViewTracker struct {
	client *redis.Client
}

// NewViewTracker accepts a nil client; every view then counts as first.
func NewViewTracker(client *redis.Client) *ViewTracker {
	return &ViewTracker{client: client}
}

// FirstView reports whether this viewer has not seen the item within
// the dedup window, and records the view. viewerKey is a user ID for
// authenticated requests or a client IP otherwise. Redis errors are
// treated as a first view so counting never blocks browsing.
func (t *ViewTracker) FirstView(ctx context.Context, itemID, viewerKey string) bool {
	if t.client == nil {
		return true
	}

	key := fmt.Sprintf("views:%s:%s", itemID, viewerKey)
	set, err := t.client.SetNX(ctx, key, 1, ViewDedupTTL).Result()
	if err != nil {
		return true
	}
	return set
}
