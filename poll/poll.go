// Package poll watches tasks until they settle.
//
// A Waiter repeatedly fetches a task's state and returns once the task
// reaches a terminal state. Polling uses the MINIMAL view to keep load on
// the server low; the returned task comes from one final FULL fetch so the
// caller gets complete logs and outputs.
package poll

import (
	"context"
	"time"

	"github.com/teskit/teskit/errors"
	"github.com/teskit/teskit/tes"
)

const (
	// DefaultInterval is the delay before the second poll.
	DefaultInterval = time.Second

	// DefaultMaxInterval caps the delay between polls.
	DefaultMaxInterval = 10 * time.Second

	// DefaultMultiplier grows the delay after each poll.
	DefaultMultiplier = 2.0
)

// Getter fetches one task snapshot. *client.Client satisfies it.
type Getter interface {
	GetTask(ctx context.Context, id string, view tes.View) (*tes.Task, error)
}

// Waiter polls a task until it reaches a terminal state. The zero value
// is not usable: Getter is required. The pacing fields fall back to the
// package defaults when unset.
type Waiter struct {
	// Getter fetches task snapshots. Required.
	Getter Getter

	// Interval is the delay after the first poll.
	Interval time.Duration

	// MaxInterval caps the growing delay.
	MaxInterval time.Duration

	// Multiplier grows the delay after every poll. Values of 1 or less
	// fall back to DefaultMultiplier.
	Multiplier float64
}

// New returns a Waiter that polls g with the default pacing.
func New(g Getter) *Waiter {
	return &Waiter{Getter: g}
}

// Wait polls id until the task settles and returns the task's full record.
// UNKNOWN does not end the wait: a server may report it transiently for a
// task it is still tracking. The wait ends early when a fetch fails or ctx
// is done; a task that never settles polls until the caller's deadline.
func (w *Waiter) Wait(ctx context.Context, id string) (*tes.Task, error) {
	if w.Getter == nil {
		return nil, errors.Config("waiter requires a task getter", errors.WithOp("Wait"))
	}

	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxInterval := w.MaxInterval
	if maxInterval <= 0 {
		maxInterval = DefaultMaxInterval
	}
	multiplier := w.Multiplier
	if multiplier <= 1 {
		multiplier = DefaultMultiplier
	}

	for {
		task, err := w.Getter.GetTask(ctx, id, tes.ViewMinimal)
		if err != nil {
			return nil, err
		}
		if task.State.IsTerminal() {
			return w.Getter.GetTask(ctx, id, tes.ViewFull)
		}

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "wait aborted", errors.WithOp("Wait"))
		case <-time.After(interval):
		}

		interval = time.Duration(float64(interval) * multiplier)
		if interval > maxInterval {
			interval = maxInterval
		}
	}
}
