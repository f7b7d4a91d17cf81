package pages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/infrastructure/browser/browsertest"
)

var dessert = entities.ID("dessert")

func dessertPage() (*harness, *browsertest.Node) {
	s := browsertest.NewSession()
	sel := browsertest.Dropdown("Apple Pie", "Banana Split")
	s.Set(dessert, sel)
	return newHarness(s), sel
}

func TestSelectByPartialText(t *testing.T) {
	h, sel := dessertPage()

	require.NoError(t, h.page.SelectByPartialText(dessert, "Banana"))
	assert.True(t, sel.Children[1].Selected)
	assert.False(t, sel.Children[0].Selected)

	got, err := h.page.SelectedText(dessert)
	require.NoError(t, err)
	assert.Equal(t, "Banana Split", got)

	err = h.page.SelectByPartialText(dessert, "Cherry")
	require.Error(t, err)
	assert.Equal(t, errs.NoMatch, errs.CodeOf(err))
	assert.True(t, sel.Children[1].Selected)
}

func TestSelectByPartialTextEmptyIsNoop(t *testing.T) {
	h, sel := dessertPage()

	require.NoError(t, h.page.SelectByPartialText(dessert, ""))
	for _, opt := range sel.Children {
		assert.Zero(t, opt.Clicks)
	}
}

func TestSelectByVisibleTextAndValue(t *testing.T) {
	h, sel := dessertPage()

	require.NoError(t, h.page.SelectByVisibleText(dessert, "Apple Pie"))
	assert.True(t, sel.Children[0].Selected)

	require.NoError(t, h.page.SelectByValue(dessert, "banana-split"))
	assert.True(t, sel.Children[1].Selected)
	assert.False(t, sel.Children[0].Selected)

	// already selected options are not clicked again
	require.NoError(t, h.page.SelectByValue(dessert, "banana-split"))
	assert.Equal(t, 1, sel.Children[1].Clicks)

	err := h.page.SelectByVisibleText(dessert, "Apple")
	assert.Equal(t, errs.NoMatch, errs.CodeOf(err))
}

func TestOptions(t *testing.T) {
	h, _ := dessertPage()

	opts, err := h.page.Options(dessert)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple Pie", "Banana Split"}, opts)

	_, err = h.page.SelectedText(dessert)
	assert.True(t, errs.Is(err, errs.NoSuchElement))
}

func TestSelectRejectsNonSelect(t *testing.T) {
	s := browsertest.NewSession()
	s.Set(entities.ID("menu"), browsertest.El("div", "Menu"))
	h := newHarness(s)

	err := h.page.SelectByVisibleText(entities.ID("menu"), "Menu")
	assert.Equal(t, errs.InvalidArgument, errs.CodeOf(err))
}

func TestSelectFromList(t *testing.T) {
	s := browsertest.NewSession()
	items := entities.CSS("ul.suggestions li")
	first := browsertest.El("li", " Berlin ")
	second := browsertest.El("li", "Bern")
	s.Set(items, first, second)
	h := newHarness(s)

	require.NoError(t, h.page.SelectFromList(items, "Bern"))
	assert.Equal(t, 0, first.Clicks)
	assert.Equal(t, 1, second.Clicks)

	err := h.page.SelectFromList(items, "Basel")
	assert.Equal(t, errs.NoMatch, errs.CodeOf(err))
}
