package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
)

func TestClosingLastPageLeavesNoCurrentWindow(t *testing.T) {
	s := &PlaywrightSession{
		logger:  quietLogger(),
		handles: []string{"main"},
		pages:   map[string]playwright.Page{"main": nil},
		current: "main",
	}

	s.forget("main")

	h, err := s.CurrentWindowHandle()
	require.NoError(t, err)
	assert.Empty(t, h)
	hs, _ := s.WindowHandles()
	assert.Empty(t, hs)

	_, err = s.CurrentURL()
	assert.True(t, errs.Is(err, errs.InvalidArgument))
	assert.True(t, errs.Is(s.Navigate("https://app.example.test"), errs.InvalidArgument))
	assert.True(t, errs.Is(s.PressKey(entities.KeyEnter), errs.InvalidArgument))
	_, err = s.FindElements(entities.CSS("button"))
	assert.True(t, errs.Is(err, errs.InvalidArgument))
	_, err = s.ExecuteScript("return 1;")
	assert.True(t, errs.Is(err, errs.InvalidArgument))
}

func TestForgettingBackgroundPageKeepsFocus(t *testing.T) {
	s := &PlaywrightSession{
		logger:  quietLogger(),
		handles: []string{"main", "popup"},
		pages:   map[string]playwright.Page{"main": nil, "popup": nil},
		current: "main",
	}

	s.forget("popup")

	h, _ := s.CurrentWindowHandle()
	assert.Equal(t, "main", h)
	hs, _ := s.WindowHandles()
	assert.Equal(t, []string{"main"}, hs)
}
