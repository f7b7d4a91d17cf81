package entities

// Key names a non-printable keyboard key. Printable keys are sent as their text.
type Key string

const (
	KeyControl    Key = "Control"
	KeyMeta       Key = "Meta"
	KeyAlt        Key = "Alt"
	KeyShift      Key = "Shift"
	KeyEnter      Key = "Enter"
	KeyEscape     Key = "Escape"
	KeyBackspace  Key = "Backspace"
	KeyDelete     Key = "Delete"
	KeyTab        Key = "Tab"
	KeyEnd        Key = "End"
	KeyHome       Key = "Home"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// ModifierKeyFor - returns the clipboard/select-all modifier for a GOOS value
func ModifierKeyFor(goos string) Key {
	if goos == "darwin" {
		return KeyMeta
	}
	return KeyControl
}
