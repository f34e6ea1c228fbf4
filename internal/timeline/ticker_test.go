package timeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/timeline"
)

func TestTick_PublishesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := timeline.Tick(ctx, time.Millisecond, func() int64 { return 42 })

	select {
	case v := <-ch:
		require.Equal(t, int64(42), v)
	case <-time.After(time.Second):
		t.Fatal("no tick received")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
