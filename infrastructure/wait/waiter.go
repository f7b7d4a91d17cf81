// Package wait polls conditions against a live session until they hold or a
// wall-clock deadline passes.
package wait

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

// DefaultInterval is the pause between two evaluations of a condition.
const DefaultInterval = 500 * time.Millisecond

// Waiter is the wait engine bound to one session. It blocks the calling goroutine.
type Waiter struct {
	session  interfaces.Session
	logger   *logrus.Logger
	interval time.Duration
	now      func() time.Time
	sleep    func(time.Duration)
}

// Option configures a Waiter
type Option func(*Waiter)

// WithInterval - sets the poll interval
func WithInterval(d time.Duration) Option {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithClock - replaces time.Now and time.Sleep
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(w *Waiter) {
		w.now = now
		w.sleep = sleep
	}
}

// NewWaiter - creates a wait engine for the session
func NewWaiter(session interfaces.Session, logger *logrus.Logger, opts ...Option) *Waiter {
	w := &Waiter{
		session:  session,
		logger:   logger,
		interval: DefaultInterval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Interval - returns the poll interval
func (w *Waiter) Interval() time.Duration {
	return w.interval
}

// For - waits until cond holds, failing with *errs.TimeoutError after timeout
func (w *Waiter) For(cond interfaces.Condition, timeout time.Duration) error {
	return w.Until(cond.String(), cond.Evaluate, timeout)
}

// Until - polls fn until it reports true. Retryable errors (stale or missing
// element, missing alert or frame) count as "not yet"; any other error stops
// the wait and is returned.
func (w *Waiter) Until(desc string, fn func(interfaces.Session) (bool, error), timeout time.Duration) error {
	start := w.now()
	deadline := start.Add(timeout)
	var lastErr error

	for {
		ok, err := fn(w.session)
		switch {
		case err == nil && ok:
			return nil
		case err != nil && !errs.IsRetryable(err):
			return fmt.Errorf("waiting for %s: %w", desc, err)
		case err != nil:
			lastErr = err
			w.logger.Debugf("Waiting for %s: retrying after %v", desc, err)
		}

		now := w.now()
		if !now.Before(deadline) {
			return &errs.TimeoutError{
				Condition: desc,
				Timeout:   timeout,
				Elapsed:   now.Sub(start),
				LastErr:   lastErr,
			}
		}

		pause := w.interval
		if remaining := deadline.Sub(now); remaining < pause {
			pause = remaining
		}
		w.sleep(pause)
	}
}
