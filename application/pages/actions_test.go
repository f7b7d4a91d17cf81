package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/infrastructure/browser/browsertest"
)

func TestClickWaitsUntilClickable(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("save")
	disabled := browsertest.El("button", "Save")
	disabled.Disabled = true
	enabled := browsertest.El("button", "Save")
	s.Script(loc, func(call int) []*browsertest.Node {
		if call < 3 {
			return []*browsertest.Node{disabled}
		}
		return []*browsertest.Node{enabled}
	})
	h := newHarness(s)

	require.NoError(t, h.page.ClickAndWait(loc, 2*time.Second))
	assert.Equal(t, 0, disabled.Clicks)
	assert.Equal(t, 1, enabled.Clicks)
	assert.Equal(t, []time.Duration{2 * time.Second}, h.naps)
}

func TestClickTimesOutOnDisabledButton(t *testing.T) {
	s := browsertest.NewSession()
	btn := browsertest.El("button", "Save")
	btn.Disabled = true
	s.Set(entities.ID("save"), btn)
	h := newHarness(s, WithTimeout(time.Second))

	err := h.page.Click(entities.ID("save"))
	assert.True(t, errs.IsTimeout(err))
	assert.Equal(t, 0, btn.Clicks)
}

func TestClickAndWaitForInvisibility(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.XPath("//button[.='Close']")
	btn := browsertest.El("button", "Close")
	btn.OnClick = func() { btn.Hidden = true }
	s.Set(loc, btn)
	h := newHarness(s)

	require.NoError(t, h.page.ClickAndWaitForInvisibility(loc, time.Second))
	assert.Equal(t, 1, btn.Clicks)
}

func TestClickAndWaitForTarget(t *testing.T) {
	s := browsertest.NewSession()
	open := entities.ID("open")
	menu := entities.ID("menu")
	panel := browsertest.El("ul", "items")
	panel.Hidden = true
	btn := browsertest.El("button", "Open")
	btn.OnClick = func() { s.Set(menu, panel) }
	s.Set(open, btn)
	h := newHarness(s)

	// The target only has to exist; it stays hidden.
	require.NoError(t, h.page.ClickAndWaitForTarget(open, &menu, time.Second))
	assert.Equal(t, 1, btn.Clicks)

	require.NoError(t, h.page.ClickAndWaitForTarget(open, nil, time.Second))
	assert.Equal(t, 2, btn.Clicks)

	ghost := entities.ID("ghost")
	err := h.page.ClickAndWaitForTarget(open, &ghost, time.Second)
	assert.True(t, errs.IsTimeout(err))
}

func TestClickAtOffset(t *testing.T) {
	s := browsertest.NewSession()
	canvas := browsertest.El("canvas", "")
	s.Set(entities.TagName("canvas"), canvas)
	h := newHarness(s)

	require.NoError(t, h.page.ClickAtOffset(entities.TagName("canvas"), 10, -5))
	assert.Equal(t, []string{"click canvas +10-5"}, s.Pointer)
	assert.Equal(t, 1, canvas.Clicks)
}

func TestEnterTextClearsOrAppends(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.Name("title")
	field := browsertest.El("input", "")
	field.Value = "old"
	s.Set(loc, field)
	h := newHarness(s)

	require.NoError(t, h.page.EnterText(loc, "er", false))
	assert.Equal(t, "older", field.Value)
	assert.Equal(t, []string{"Control+End"}, field.Pressed)

	require.NoError(t, h.page.EnterText(loc, "new", true))
	assert.Equal(t, "new", field.Value)

	require.NoError(t, h.page.ClearField(loc))
	assert.Empty(t, field.Value)
	assert.Equal(t, []string{"er", "new"}, field.Typed)
}

func TestEnterTextWaitsForVisibility(t *testing.T) {
	s := browsertest.NewSession()
	field := browsertest.El("input", "")
	field.Hidden = true
	s.Set(entities.ID("q"), field)
	h := newHarness(s, WithTimeout(time.Second))

	err := h.page.EnterText(entities.ID("q"), "hello", true)
	assert.True(t, errs.IsTimeout(err))
	assert.Empty(t, field.Typed)
}

func TestSlowTypeSendsOneRuneAtATime(t *testing.T) {
	s := browsertest.NewSession()
	field := browsertest.El("textarea", "")
	s.Set(entities.ID("bio"), field)
	h := newHarness(s)

	require.NoError(t, h.page.SlowType(entities.ID("bio"), "héj", 0))
	assert.Equal(t, []string{"h", "é", "j"}, field.Typed)
	assert.Equal(t, "héj", field.Value)
	assert.Equal(t, []time.Duration{SlowTypeDelay, SlowTypeDelay, SlowTypeDelay}, h.naps)
}

func TestPointerActions(t *testing.T) {
	s := browsertest.NewSession()
	card := entities.ID("card")
	column := entities.ID("done")
	s.Set(card, browsertest.El("div", "Card"))
	s.Set(column, browsertest.El("section", "Done"))
	h := newHarness(s)

	require.NoError(t, h.page.Hover(card, 500*time.Millisecond))
	require.NoError(t, h.page.DoubleClick(card))
	require.NoError(t, h.page.RightClick(card))
	require.NoError(t, h.page.DragTo(card, column))
	require.NoError(t, h.page.DragBy(card, 30, 0))

	assert.Equal(t, []string{
		"hover Card",
		"double-click Card",
		"context-click Card",
		"drag Card -> Done",
		"drag Card by +30+0",
	}, s.Pointer)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, DragSettle, DragSettle}, h.naps)
}

func TestDragRequiresDestination(t *testing.T) {
	s := browsertest.NewSession()
	s.Set(entities.ID("card"), browsertest.El("div", "Card"))
	h := newHarness(s, WithTimeout(time.Second))

	err := h.page.DragTo(entities.ID("card"), entities.ID("nowhere"))
	assert.Equal(t, errs.NotFound, errs.CodeOf(err))
	assert.Empty(t, s.Pointer)
	assert.Empty(t, h.naps)
}

func TestHoverAndClick(t *testing.T) {
	s := browsertest.NewSession()
	item := browsertest.El("li", "Settings")
	s.Set(entities.ID("settings"), item)
	h := newHarness(s)

	require.NoError(t, h.page.HoverAndClick(entities.ID("settings")))
	assert.Equal(t, []string{"hover Settings"}, s.Pointer)
	assert.Equal(t, 1, item.Clicks)
}

func TestKeyPresses(t *testing.T) {
	s := browsertest.NewSession()
	loc := entities.ID("search")
	field := browsertest.El("input", "")
	s.Set(loc, field)
	h := newHarness(s, WithPlatform("darwin"))

	require.NoError(t, h.page.PressEnter(&loc))
	require.NoError(t, h.page.PressBackspace(loc))
	require.NoError(t, h.page.PressArrowDown(loc))
	require.NoError(t, h.page.DeleteField(loc))
	assert.Equal(t, []string{"Enter", "Backspace", "ArrowDown", "Meta+a", "Delete"}, field.Pressed)

	require.NoError(t, h.page.PressEnter(nil))
	require.NoError(t, h.page.PressEscape())
	require.NoError(t, h.page.KeyboardShortcut("s"))
	assert.Equal(t, []string{"Enter", "Escape", "Control+Alt+s"}, s.Keys)
}

func TestPasteClicksThenUsesModifier(t *testing.T) {
	s := browsertest.NewSession()
	field := browsertest.El("input", "")
	s.Set(entities.ID("code"), field)
	h := newHarness(s)

	require.NoError(t, h.page.Paste(entities.ID("code")))
	assert.Equal(t, 1, field.Clicks)
	assert.Equal(t, []time.Duration{time.Second}, h.naps)
	assert.Equal(t, []string{"Control+v"}, s.Keys)
}

func TestScrollIntoViewPassesElement(t *testing.T) {
	s := browsertest.NewSession()
	footer := browsertest.El("footer", "bottom")
	s.Set(entities.TagName("footer"), footer)
	var got []any
	s.ScriptHandler = func(script string, args []any) (any, error) {
		got = args
		return nil, nil
	}
	h := newHarness(s)

	require.NoError(t, h.page.ScrollIntoView(entities.TagName("footer")))
	require.Len(t, got, 1)
	el, ok := got[0].(*browsertest.Element)
	require.True(t, ok)
	assert.Same(t, footer, el.Node)
	assert.Contains(t, s.Scripts[0], "scrollIntoView")
}
