package wait

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/infrastructure/browser/browsertest"
)

func TestInvisibleSucceedsWhenAbsentOrHidden(t *testing.T) {
	spinner := entities.CSS(".spinner")

	t.Run("absent", func(t *testing.T) {
		s := browsertest.NewSession()
		w, _ := newWaiter(s)
		require.NoError(t, w.For(Invisible{Locator: spinner}, time.Second))
	})

	t.Run("present but hidden", func(t *testing.T) {
		s := browsertest.NewSession()
		hidden := browsertest.El("div", "loading")
		hidden.Hidden = true
		s.Set(spinner, hidden)
		w, _ := newWaiter(s)
		require.NoError(t, w.For(Invisible{Locator: spinner}, time.Second))
	})

	t.Run("zero size", func(t *testing.T) {
		s := browsertest.NewSession()
		s.Set(spinner, browsertest.El("div", "loading").At(0, 0, 0, 0))
		ok, err := Invisible{Locator: spinner}.Evaluate(s)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("stale", func(t *testing.T) {
		s := browsertest.NewSession()
		gone := browsertest.El("div", "loading")
		gone.Stale = true
		s.Set(spinner, gone)
		ok, err := Invisible{Locator: spinner}.Evaluate(s)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("visible times out", func(t *testing.T) {
		s := browsertest.NewSession()
		s.Set(spinner, browsertest.El("div", "loading"))
		w, _ := newWaiter(s)
		assert.True(t, errs.IsTimeout(w.For(Invisible{Locator: spinner}, time.Second)))
	})
}

func TestInvisibleAfterElementDisappears(t *testing.T) {
	s := browsertest.NewSession()
	spinner := entities.CSS(".spinner")
	s.Script(spinner, func(call int) []*browsertest.Node {
		if call < 4 {
			return []*browsertest.Node{browsertest.El("div", "loading")}
		}
		return nil
	})
	w, clk := newWaiter(s)

	require.NoError(t, w.For(Invisible{Locator: spinner}, 5*time.Second))
	assert.Equal(t, 3, clk.naps)
}

func TestCountAtLeastProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "count")
		rows := entities.CSS("tr.row")
		s := browsertest.NewSession()
		nodes := make([]*browsertest.Node, n)
		for i := range nodes {
			nodes[i] = browsertest.El("tr", "row")
		}
		s.Set(rows, nodes...)
		w, _ := newWaiter(s)

		err := w.For(CountAtLeast{Locator: rows, N: 3}, time.Second)
		if n >= 3 && err != nil {
			rt.Fatalf("count %d: unexpected error %v", n, err)
		}
		if n < 3 && !errs.IsTimeout(err) {
			rt.Fatalf("count %d: want timeout, got %v", n, err)
		}
	})
}

func TestCountEquals(t *testing.T) {
	s := browsertest.NewSession()
	items := entities.CSS("li")
	s.Set(items, browsertest.El("li", "a"), browsertest.El("li", "b"))

	ok, err := CountEquals{Locator: items, N: 2}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CountEquals{Locator: items, N: 3}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAttributeEqualsIsExact(t *testing.T) {
	s := browsertest.NewSession()
	btn := entities.ID("save")
	s.Set(btn, browsertest.El("button", "Save").WithAttr("aria-busy", " false "))

	ok, err := AttributeEquals{Locator: btn, Name: "aria-busy", Value: "false"}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = AttributeEquals{Locator: btn, Name: "aria-busy", Value: " false "}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAttributeContainsTrimsAndNegates(t *testing.T) {
	s := browsertest.NewSession()
	tab := entities.ID("tab")
	s.Set(tab, browsertest.El("div", "Tab").WithAttr("class", "  tab active "))

	ok, err := AttributeContains{Target: ByLocator(tab), Name: "class", Value: "active"}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AttributeContains{Target: ByLocator(tab), Name: "class", Value: "active", Negate: true}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTextPredicates(t *testing.T) {
	s := browsertest.NewSession()
	status := entities.ID("status")
	s.Set(status, browsertest.El("span", "Uploading 3 files"))

	ok, err := TextContains{Target: ByLocator(status), Text: "Uploading"}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TextAbsent{Target: ByLocator(status), Text: "Uploading"}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = TextAbsent{Target: ByLocator(status), Text: "Failed"}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClickableRequiresEnabled(t *testing.T) {
	s := browsertest.NewSession()
	btn := entities.ID("submit")
	node := browsertest.El("button", "Submit")
	node.Disabled = true
	s.Set(btn, node)

	ok, err := Clickable{Target: ByLocator(btn)}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)

	s.Mutate(func() { node.Disabled = false })
	ok, err = Clickable{Target: ByLocator(btn)}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVisibleByElement(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("panel")
	node := browsertest.El("div", "panel")
	node.Hidden = true
	s.Set(loc, node)
	els, err := s.FindElements(loc)
	require.NoError(t, err)

	ok, err := Visible{Target: ByElement(els[0])}.Evaluate(s)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "visibility of element", Visible{Target: ByElement(els[0])}.String())
}

func TestEmptyTargetIsInvalid(t *testing.T) {
	_, err := Visible{}.Evaluate(browsertest.NewSession())
	assert.True(t, errs.Is(err, errs.InvalidArgument))
}

func TestAlertPresent(t *testing.T) {
	s := browsertest.NewSession()

	_, err := AlertPresent{}.Evaluate(s)
	assert.True(t, errs.IsRetryable(err))

	s.OpenAlert("Are you sure?")
	ok, err := AlertPresent{}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestURLContains(t *testing.T) {
	s := browsertest.NewSession()
	require.NoError(t, s.Navigate("https://app.example.test/dashboard"))

	ok, err := URLContains{Fragment: "/dashboard"}.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConditionDescriptions(t *testing.T) {
	loc := entities.ID("x")
	assert.Equal(t, `presence of id="x"`, Presence{Locator: loc}.String())
	assert.Equal(t, `invisibility of id="x"`, Invisible{Locator: loc}.String())
	assert.Equal(t, `at least 3 elements matching id="x"`, CountAtLeast{Locator: loc, N: 3}.String())
}
