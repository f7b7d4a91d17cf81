package wait

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/browser/browsertest"
)

type fakeClock struct {
	t    time.Time
	naps int
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.naps++
	c.t = c.t.Add(d)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newWaiter(s interfaces.Session) (*Waiter, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewWaiter(s, quietLogger(), WithInterval(100*time.Millisecond), WithClock(clk.now, clk.sleep)), clk
}

type funcCond struct {
	fn func() (bool, error)
}

func (c funcCond) Evaluate(interfaces.Session) (bool, error) { return c.fn() }
func (c funcCond) String() string { return "func condition" }

func TestForReturnsImmediatelyWhenSatisfied(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("login")
	s.Set(loc, browsertest.El("button", "Sign in"))
	w, clk := newWaiter(s)

	require.NoError(t, w.For(Presence{Locator: loc}, 5*time.Second))
	assert.Equal(t, 0, clk.naps)
	assert.Equal(t, 1, s.Lookups(loc))
}

func TestForPollsUntilSatisfied(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.CSS(".toast")
	s.Script(loc, func(call int) []*browsertest.Node {
		if call < 3 {
			return nil
		}
		return []*browsertest.Node{browsertest.El("div", "saved")}
	})
	w, clk := newWaiter(s)

	require.NoError(t, w.For(Presence{Locator: loc}, 5*time.Second))
	assert.Equal(t, 2, clk.naps)
	assert.Equal(t, 3, s.Lookups(loc))
}

func TestForTimesOut(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.XPath("//never")
	w, _ := newWaiter(s)

	err := w.For(Presence{Locator: loc}, time.Second)
	require.Error(t, err)

	var timeout *errs.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.GreaterOrEqual(t, timeout.Elapsed, time.Second)
	assert.Contains(t, timeout.Condition, "presence of")
	assert.Equal(t, errs.Timeout, errs.CodeOf(err))
}

func TestForZeroTimeoutEvaluatesOnce(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("x")
	w, _ := newWaiter(s)

	err := w.For(Presence{Locator: loc}, 0)
	assert.True(t, errs.IsTimeout(err))
	assert.Equal(t, 1, s.Lookups(loc))
}

func TestForPropagatesNonRetryableErrors(t *testing.T) {
	w, clk := newWaiter(browsertest.NewSession())
	boom := errors.New("session deleted")

	err := w.For(funcCond{fn: func() (bool, error) { return false, boom }}, time.Minute)
	require.ErrorIs(t, err, boom)
	assert.False(t, errs.IsTimeout(err))
	assert.Equal(t, 0, clk.naps)
}

func TestForRetriesStaleReferences(t *testing.T) {
	calls := 0
	w, _ := newWaiter(browsertest.NewSession())

	err := w.For(funcCond{fn: func() (bool, error) {
		calls++
		if calls < 4 {
			return false, errs.New(errs.StaleReference, "stale element reference")
		}
		return true, nil
	}}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}

func TestTimeoutKeepsLastRetryableError(t *testing.T) {
	w, _ := newWaiter(browsertest.NewSession())
	err := w.For(Visible{Target: ByLocator(entities.ID("ghost"))}, 300*time.Millisecond)

	var timeout *errs.TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Error(t, timeout.LastErr)
	assert.True(t, errs.Is(timeout.LastErr, errs.NoSuchElement))
}

func TestForDeadlineProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		timeoutMS := rapid.IntRange(0, 3000).Draw(rt, "timeout_ms")
		readyAt := rapid.IntRange(1, 60).Draw(rt, "ready_at_call")

		calls := 0
		clk := &fakeClock{t: time.Unix(0, 0)}
		w := NewWaiter(browsertest.NewSession(), quietLogger(),
			WithInterval(100*time.Millisecond), WithClock(clk.now, clk.sleep))
		start := clk.t
		timeout := time.Duration(timeoutMS) * time.Millisecond

		err := w.For(funcCond{fn: func() (bool, error) {
			calls++
			return calls >= readyAt, nil
		}}, timeout)

		elapsed := clk.t.Sub(start)
		if err == nil {
			if elapsed > timeout {
				rt.Fatalf("succeeded after %s, past timeout %s", elapsed, timeout)
			}
			return
		}
		if !errs.IsTimeout(err) {
			rt.Fatalf("unexpected error %v", err)
		}
		if elapsed < timeout {
			rt.Fatalf("timed out after %s, before timeout %s", elapsed, timeout)
		}
		// A condition that would have held by the deadline must not time out.
		if readyAt <= 1+timeoutMS/100 {
			rt.Fatalf("timed out although ready at call %d within %s", readyAt, timeout)
		}
	})
}

func TestForRealClock(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("late")
	w := NewWaiter(s, quietLogger(), WithInterval(10*time.Millisecond))

	time.AfterFunc(30*time.Millisecond, func() {
		s.Set(loc, browsertest.El("div", "late"))
	})

	start := time.Now()
	require.NoError(t, w.For(Presence{Locator: loc}, 2*time.Second))
	assert.Less(t, time.Since(start), 2*time.Second)

	start = time.Now()
	err := w.For(Presence{Locator: entities.ID("never")}, 50*time.Millisecond)
	assert.True(t, errs.IsTimeout(err))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestUntilWithSideEffects(t *testing.T) {
	s := browsertest.NewSession()
	w, _ := newWaiter(s)
	attempts := 0

	err := w.Until("frame to be available", func(interfaces.Session) (bool, error) {
		attempts++
		if attempts == 1 {
			return false, errs.New(errs.NoSuchFrame, "no such frame")
		}
		return true, nil
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
