package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
)

// maxCatchUp bounds the delta sent after a stall, in clock periods.
const maxCatchUp = 4

// RunClock sends one tick per 1/rate seconds to pid until ctx is done.
// Each tick carries the time measured since the previous one.
func RunClock(ctx context.Context, pid *actor.PID, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("clock rate must be positive, got %v", rate)
	}
	period := time.Duration(float64(time.Second) / rate)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case now := <-ticker.C:
			dt := min(now.Sub(last), maxCatchUp*period)
			last = now
			if err := actor.Tell(ctx, pid, NewTick(dt)); err != nil {
				if ctx.Err() != nil {
					continue
				}
				return fmt.Errorf("failed to send tick: %w", err)
			}
		}
	}
}
