package browser

import (
	"strings"

	"github.com/tebeka/selenium"

	"ui_automation/domain/entities"
)

var seleniumKeys = map[entities.Key]string{
	entities.KeyControl:    selenium.ControlKey,
	entities.KeyMeta:       selenium.MetaKey,
	entities.KeyAlt:        selenium.AltKey,
	entities.KeyShift:      selenium.ShiftKey,
	entities.KeyEnter:      selenium.EnterKey,
	entities.KeyEscape:     selenium.EscapeKey,
	entities.KeyBackspace:  selenium.BackspaceKey,
	entities.KeyDelete:     selenium.DeleteKey,
	entities.KeyTab:        selenium.TabKey,
	entities.KeyEnd:        selenium.EndKey,
	entities.KeyHome:       selenium.HomeKey,
	entities.KeyArrowUp:    selenium.UpArrowKey,
	entities.KeyArrowDown:  selenium.DownArrowKey,
	entities.KeyArrowLeft:  selenium.LeftArrowKey,
	entities.KeyArrowRight: selenium.RightArrowKey,
}

// seleniumKey - maps a key name to its WebDriver code point; printable keys pass through
func seleniumKey(k entities.Key) string {
	if code, ok := seleniumKeys[k]; ok {
		return code
	}
	return string(k)
}

// seleniumChord - builds the SendKeys payload for key pressed with modifiers.
// The trailing null key releases every held modifier.
func seleniumChord(k entities.Key, modifiers []entities.Key) string {
	var b strings.Builder
	for _, m := range modifiers {
		b.WriteString(seleniumKey(m))
	}
	b.WriteString(seleniumKey(k))
	if len(modifiers) > 0 {
		b.WriteString(selenium.NullKey)
	}
	return b.String()
}

// playwrightChord - builds a playwright key combination such as "Meta+a"
func playwrightChord(k entities.Key, modifiers []entities.Key) string {
	parts := make([]string, 0, len(modifiers)+1)
	for _, m := range modifiers {
		parts = append(parts, string(m))
	}
	return strings.Join(append(parts, string(k)), "+")
}
