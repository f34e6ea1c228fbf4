package timeline

import (
	"context"
	"time"
)

// Tick publishes elapsed seconds on a fixed interval until ctx is done.
// elapsed is called once per tick; the returned channel is closed on exit.
// Slow receivers miss ticks rather than block the ticker.
func Tick(ctx context.Context, interval time.Duration, elapsed func() int64) <-chan int64 {
	out := make(chan int64, 1)
	go func() {
		defer close(out)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				select {
				case out <- elapsed():
				default:
				}
			}
		}
	}()
	return out
}
