package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/httperr"
)

// Reads retries idempotent reads with exponential backoff. Writes must not go
// through it.
type Reads struct {
	attempts uint
	initial  time.Duration
	max      time.Duration
	log      *zap.Logger
}

func NewReads(attempts int, log *zap.Logger) *Reads {
	if attempts < 1 {
		attempts = 1
	}
	return &Reads{
		attempts: uint(attempts),
		initial:  50 * time.Millisecond,
		max:      500 * time.Millisecond,
		log:      log.Named("retry"),
	}
}

// Do runs op until it succeeds, returns a permanent error, or runs out of
// attempts. Business errors and context cancellation are permanent.
func Do[T any](ctx context.Context, r *Reads, name string, op func(context.Context) (T, error)) (T, error) {
	if r == nil {
		return op(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxInterval = r.max

	return backoff.Retry(ctx,
		func() (T, error) {
			v, err := op(ctx)
			if err != nil && isPermanent(err) {
				return v, backoff.Permanent(err)
			}
			return v, err
		},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.attempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			r.log.Debug("retrying read",
				zap.String("op", name),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	)
}

func isPermanent(err error) bool {
	if _, ok := httperr.AsBusiness(err); ok {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
