package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Without Redis the tracker must not suppress view counting.
func TestViewTracker_NilClientCountsEveryView(t *testing.T) {
	t.Parallel()

	tracker := NewViewTracker(nil)

	assert.True(t, tracker.FirstView(context.Background(), "item-1", "viewer-1"))
	assert.True(t, tracker.FirstView(context.Background(), "item-1", "viewer-1"))
}
