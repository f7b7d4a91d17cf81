package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/infrastructure/browser/browsertest"
)

func TestAllKeepsDocumentOrder(t *testing.T) {
	s := browsertest.NewSession()
	rows := entities.CSS("tr")
	s.Set(rows, browsertest.El("tr", "a"), browsertest.El("tr", "b"), browsertest.El("tr", "c"))

	first, err := All(s, rows)
	require.NoError(t, err)
	second, err := All(s, rows)
	require.NoError(t, err)

	require.Len(t, first, 3)
	require.Len(t, second, 3)
	for i := range first {
		a, _ := first[i].Text()
		b, _ := second[i].Text()
		assert.Equal(t, a, b)
	}
}

func TestFirstNoMatch(t *testing.T) {
	s := browsertest.NewSession()
	_, err := First(s, entities.ID("missing"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.NoSuchElement))
	assert.True(t, errs.IsRetryable(err))
}

func TestCount(t *testing.T) {
	s := browsertest.NewSession()
	s.Set(entities.TagName("li"), browsertest.El("li", "1"), browsertest.El("li", "2"))
	n, err := Count(s, entities.TagName("li"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRelativeLocators(t *testing.T) {
	s := browsertest.NewSession()
	anchor := entities.ID("password")
	s.Set(anchor, browsertest.El("input", "password").At(100, 100, 200, 20))

	labels := entities.TagName("label")
	s.Set(labels,
		browsertest.El("label", "far above").At(100, 0, 100, 20),
		browsertest.El("label", "email").At(100, 60, 100, 20),
		browsertest.El("label", "remember").At(100, 140, 100, 20),
		browsertest.El("label", "left").At(0, 100, 50, 20),
		browsertest.El("label", "right").At(320, 100, 50, 20),
	)

	cases := []struct {
		name string
		loc  entities.Locator
		want []string
	}{
		{"above nearest first", labels.Above(anchor), []string{"email", "far above"}},
		{"below", labels.Below(anchor), []string{"remember"}},
		{"left of", labels.LeftOf(anchor), []string{"left"}},
		{"right of", labels.RightOf(anchor), []string{"right"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			els, err := All(s, tc.loc)
			require.NoError(t, err)
			got := make([]string, 0, len(els))
			for _, el := range els {
				txt, err := el.Text()
				require.NoError(t, err)
				got = append(got, txt)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRelativeMissingAnchor(t *testing.T) {
	s := browsertest.NewSession()
	s.Set(entities.TagName("label"), browsertest.El("label", "x"))
	_, err := All(s, entities.TagName("label").Below(entities.ID("nope")))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.NoSuchElement))
}
