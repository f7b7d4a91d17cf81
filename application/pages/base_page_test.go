package pages

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/infrastructure/browser/browsertest"
	"ui_automation/infrastructure/wait"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time        { return c.t }
func (c *clock) sleep(d time.Duration) { c.t = c.t.Add(d) }

// harness records the fixed post-action pauses separately from wait polling
type harness struct {
	page  *BasePage
	naps  []time.Duration
	clock *clock
}

func newHarness(s *browsertest.Session, opts ...Option) *harness {
	logger, _ := test.NewNullLogger()
	h := &harness{clock: &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}}
	base := []Option{
		WithPlatform("linux"),
		WithTimeout(5 * time.Second),
		WithWaitOptions(wait.WithInterval(100*time.Millisecond), wait.WithClock(h.clock.now, h.clock.sleep)),
		WithSleep(func(d time.Duration) { h.naps = append(h.naps, d) }),
	}
	h.page = NewBasePage(s, logger, append(base, opts...)...)
	return h
}

func TestModifierKeyFollowsPlatform(t *testing.T) {
	cases := map[string]entities.Key{
		"darwin":  entities.KeyMeta,
		"linux":   entities.KeyControl,
		"windows": entities.KeyControl,
		"freebsd": entities.KeyControl,
	}
	for goos, want := range cases {
		t.Run(goos, func(t *testing.T) {
			h := newHarness(browsertest.NewSession(), WithPlatform(goos))
			assert.Equal(t, want, h.page.ModifierKey())
		})
	}
}

func TestModifierKeyResolvedOncePerPage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		goos := rapid.SampledFrom([]string{"darwin", "linux", "windows"}).Draw(rt, "goos")
		ops := rapid.IntRange(1, 5).Draw(rt, "ops")

		s := browsertest.NewSession()
		field := browsertest.El("input", "")
		loc := entities.ID("notes")
		s.Set(loc, field)
		h := newHarness(s, WithPlatform(goos))

		for i := 0; i < ops; i++ {
			if err := h.page.Copy(loc); err != nil {
				rt.Fatalf("copy: %v", err)
			}
		}
		mod := string(entities.ModifierKeyFor(goos))
		for _, chord := range field.Pressed {
			if chord != mod+"+a" && chord != mod+"+c" {
				rt.Fatalf("chord %q does not use modifier %s", chord, mod)
			}
		}
		if len(field.Pressed) != 2*ops {
			rt.Fatalf("pressed %d chords, want %d", len(field.Pressed), 2*ops)
		}
	})
}

func TestFindOneTimeoutIsNotFound(t *testing.T) {
	h := newHarness(browsertest.NewSession())

	_, err := h.page.FindOne(entities.ID("ghost"), time.Second)
	require.Error(t, err)
	assert.Equal(t, errs.NotFound, errs.CodeOf(err))
	assert.True(t, errs.IsTimeout(err))
	assert.Contains(t, err.Error(), `id="ghost"`)
}

func TestFindOneWaitsForPresence(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.CSS(".row")
	row := browsertest.El("tr", "first")
	s.Script(loc, func(call int) []*browsertest.Node {
		if call < 3 {
			return nil
		}
		return []*browsertest.Node{row, browsertest.El("tr", "second")}
	})
	h := newHarness(s)

	el, err := h.page.FindOne(loc, 2*time.Second)
	require.NoError(t, err)
	txt, err := h.page.ElementText(el)
	require.NoError(t, err)
	assert.Equal(t, "first", txt)
}

func TestFindAllDoesNotWait(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.CSS("li")
	h := newHarness(s)

	els, err := h.page.FindAll(loc)
	require.NoError(t, err)
	assert.Empty(t, els)
	assert.Equal(t, 1, s.Lookups(loc))
}

func TestFindAllIsStableOnUnchangedPage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		texts := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), 0, 8).Draw(rt, "texts")
		s := browsertest.NewSession()
		loc := entities.TagName("li")
		nodes := make([]*browsertest.Node, len(texts))
		for i, txt := range texts {
			nodes[i] = browsertest.El("li", txt)
		}
		s.Set(loc, nodes...)
		h := newHarness(s)

		first, err := h.page.Texts(loc)
		if err != nil {
			rt.Fatal(err)
		}
		second, err := h.page.Texts(loc)
		if err != nil {
			rt.Fatal(err)
		}
		if len(first) != len(second) {
			rt.Fatalf("counts differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				rt.Fatalf("order differs at %d: %q vs %q", i, first[i], second[i])
			}
		}
	})
}

func TestFindBelowPicksNearest(t *testing.T) {
	s := browsertest.NewSession()
	label := entities.ID("email-label")
	inputs := entities.TagName("input")
	s.Set(label, browsertest.El("label", "Email").At(0, 0, 100, 20))
	far := browsertest.El("input", "").At(0, 200, 100, 20).WithAttr("name", "far")
	near := browsertest.El("input", "").At(0, 40, 100, 20).WithAttr("name", "near")
	above := browsertest.El("input", "").At(0, -40, 100, 20).WithAttr("name", "above")
	s.Set(inputs, far, near, above)
	h := newHarness(s)

	el, err := h.page.FindBelow(label, inputs)
	require.NoError(t, err)
	name, err := h.page.ElementAttribute(el, "name")
	require.NoError(t, err)
	assert.Equal(t, "near", name)

	el, err = h.page.FindAbove(label, inputs)
	require.NoError(t, err)
	name, err = h.page.ElementAttribute(el, "name")
	require.NoError(t, err)
	assert.Equal(t, "above", name)
}

func TestProbesTurnTimeoutsIntoFalse(t *testing.T) {
	s := browsertest.NewSession()
	hidden := browsertest.El("div", "spinner")
	hidden.Hidden = true
	s.Set(entities.ID("spinner"), hidden)
	s.Set(entities.ID("save"), browsertest.El("button", "Save"))
	h := newHarness(s)

	ok, err := h.page.IsVisible(entities.ID("spinner"), time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.page.IsVisible(entities.ID("save"), time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.page.IsClickable(entities.ID("missing"), time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWaitUntilAttributeContainsByElement(t *testing.T) {
	s := browsertest.NewSession()
	tab := browsertest.El("button", "Tab").WithAttr("class", "tab")
	s.Set(entities.ID("tab"), tab)
	tab.OnClick = func() { tab.WithAttr("class", " tab active ") }
	h := newHarness(s)

	el, err := h.page.Find(entities.ID("tab"))
	require.NoError(t, err)
	target := wait.ByElement(el)

	err = h.page.WaitUntilAttributeContains(target, "class", "active", time.Second)
	assert.True(t, errs.IsTimeout(err))

	require.NoError(t, el.Click())
	require.NoError(t, h.page.WaitUntilAttributeContains(target, "class", "active", time.Second))
	err = h.page.WaitUntilAttributeNotContains(target, "class", "active", time.Second)
	assert.True(t, errs.IsTimeout(err))
}

func TestElementByTextUsesContainsText(t *testing.T) {
	s := browsertest.NewSession()
	s.Set(entities.ContainsText("Welcome"), browsertest.El("h1", " Welcome back "))
	h := newHarness(s)

	el, err := h.page.ElementByText("Welcome")
	require.NoError(t, err)
	txt, err := h.page.ElementText(el)
	require.NoError(t, err)
	assert.Equal(t, "Welcome back", txt)

	_, err = h.page.ElementByText("Goodbye")
	assert.Equal(t, errs.NotFound, errs.CodeOf(err))
}
