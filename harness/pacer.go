package harness

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

// Drive steps a Running harness every _interval_ until the insertion cap is
// reached, returning nil, or until _ctx_ is done, returning its error. Steps are
// never interrupted, cancellation is observed between two steps. An _interval_ of
// 0 steps as fast as possible. Drive returns ErrInvalidTransition if the harness
// leaves Running for another reason than the cap.
func Drive(ctx context.Context, h *Harness, interval time.Duration) error {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	limiter := rate.NewLimiter(limit, 1)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := limiter.Wait(ctx); err != nil {
			// the deadline of ctx falls before the next tick
			<-ctx.Done()
			return ctx.Err()
		}
		if _, err := h.Step(); err != nil {
			if errors.Is(err, ErrCapReached) {
				return nil
			}
			return err
		}
		if h.State() == Stopped {
			return nil
		}
	}
}
