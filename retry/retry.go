// Package retry implements bounded retries with exponential backoff and
// full jitter. It is the policy layer the client wraps around every
// request attempt; whether an error is worth retrying is decided by the
// errors package, not here.
package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/teskit/teskit/errors"
)

// Retry defaults.
const (
	// DefaultMaxAttempts is the total attempt budget, first try included.
	DefaultMaxAttempts = 3

	// DefaultInitialBackoff is the base delay before the second attempt.
	DefaultInitialBackoff = 200 * time.Millisecond

	// DefaultMaxBackoff caps the delay between attempts.
	DefaultMaxBackoff = 30 * time.Second

	// DefaultMultiplier is the factor the delay grows by per attempt.
	DefaultMultiplier = 2.0
)

// Policy describes how an operation is retried. The zero value uses the
// defaults, so a Policy can be embedded in configuration and left unset.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// InitialBackoff is the base delay between the first and second
	// attempt. Later delays grow by Multiplier.
	InitialBackoff time.Duration

	// MaxBackoff caps the grown delay.
	MaxBackoff time.Duration

	// Multiplier is the exponential growth factor.
	Multiplier float64
}

// DefaultPolicy returns the default retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    DefaultMaxAttempts,
		InitialBackoff: DefaultInitialBackoff,
		MaxBackoff:     DefaultMaxBackoff,
		Multiplier:     DefaultMultiplier,
	}
}

// normalized returns effective settings with defaults filled in.
func (p Policy) normalized() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = DefaultInitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = DefaultMaxBackoff
	}
	if p.Multiplier <= 1 {
		p.Multiplier = DefaultMultiplier
	}
	return p
}

// Do runs fn until it succeeds, returns a non-retryable error, or the
// attempt budget is spent. Non-retryable errors are returned unchanged
// after a single attempt; an exhausted budget returns a
// KindRetriesExhausted error stamped with op and wrapping the last
// attempt's failure. The backoff sleep is the only suspension point and
// honors ctx, so an abandoned operation performs no further attempts.
func (p Policy) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	p = p.normalized()

	backoff := p.InitialBackoff
	var err error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		if !errors.IsRetryable(err) {
			return err
		}

		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "retry aborted", errors.WithOp(op))
		case <-time.After(withJitter(backoff)):
		}

		backoff = time.Duration(float64(backoff) * p.Multiplier)
		if backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}

	return errors.Exhausted(p.MaxAttempts, err, errors.WithOp(op))
}

// withJitter returns a random delay in [0, d). Spreading the whole
// interval keeps clients that failed together from retrying together.
func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d)))
}
