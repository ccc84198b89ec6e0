// README: Bounded pool for blocking outbound calls (LLM, city lookup, flight search, FAQ, handoff).
package workpool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"tripchat/internal/metrics"
)

// ErrSaturated is returned when no worker slot frees up before the caller's context ends.
var ErrSaturated = errors.New("outbound pool saturated")

// Pool caps the number of concurrent outbound calls across all requests and
// applies a per-call timeout. It never retries.
type Pool struct {
	sem     *semaphore.Weighted
	timeout time.Duration
}

// New returns a pool with size slots. A zero timeout leaves only the caller's deadline.
func New(size int, timeout time.Duration) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), timeout: timeout}
}

// Do runs fn once a slot is free. A nil Pool runs fn inline with the caller's context.
func (p *Pool) Do(ctx context.Context, target string, fn func(ctx context.Context) error) error {
	if p == nil {
		return fn(ctx)
	}

	start := time.Now()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		metrics.OutboundCalls.WithLabelValues(target, "saturated").Inc()
		return fmt.Errorf("%w: %s: %v", ErrSaturated, target, err)
	}
	defer p.sem.Release(1)

	metrics.OutboundInFlight.Inc()
	defer metrics.OutboundInFlight.Dec()

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	metrics.OutboundCalls.WithLabelValues(target, outcome(callCtx, err)).Inc()
	metrics.OutboundDuration.WithLabelValues(target).Observe(time.Since(start).Seconds())
	return err
}

func outcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
