package interfaces

import "ui_automation/domain/entities"

// Element is a transient handle to a located DOM node. Any method may fail
// with a stale_reference error once the node has been detached.
type Element interface {
	// Click clicks the element
	Click() error

	// SendKeys types text into the element
	SendKeys(text string) error

	// PressKey presses key while holding modifiers, with the element focused
	PressKey(key entities.Key, modifiers ...entities.Key) error

	// Clear clears an editable element
	Clear() error

	// Text returns the rendered text
	Text() (string, error)

	// TagName returns the lower-case tag name
	TagName() (string, error)

	// Attribute returns the named attribute
	Attribute(name string) (string, error)

	// Property returns the named DOM property as a string
	Property(name string) (string, error)

	// CSSValue returns the computed value of a CSS property
	CSSValue(name string) (string, error)

	// IsDisplayed reports whether the element is rendered with non-zero size
	IsDisplayed() (bool, error)

	// IsEnabled reports whether the element accepts interaction
	IsEnabled() (bool, error)

	// IsSelected reports whether an option, checkbox or radio is selected
	IsSelected() (bool, error)

	// Rect returns the rendered bounding box
	Rect() (entities.Rect, error)

	// FindElements finds descendants matching a plain locator
	FindElements(locator entities.Locator) ([]Element, error)
}

// Pointer is the pointer-device surface of a session
type Pointer interface {
	// Hover moves the pointer to the element center
	Hover(el Element) error

	// ClickAt clicks at an offset from the element center
	ClickAt(el Element, xOffset, yOffset int) error

	// DoubleClick double-clicks the element center
	DoubleClick(el Element) error

	// ContextClick right-clicks the element center
	ContextClick(el Element) error

	// DragTo presses on src, moves to dst and releases
	DragTo(src, dst Element) error

	// DragBy presses on src, moves by the offset and releases
	DragBy(src Element, xOffset, yOffset int) error
}

// Session defines the driver capability surface consumed by the toolkit
type Session interface {
	Pointer

	// Navigate navigates to a URL
	Navigate(url string) error

	// CurrentURL returns the current page URL
	CurrentURL() (string, error)

	// Title returns the current page title
	Title() (string, error)

	// FindElements finds all elements matching a plain locator in the current context
	FindElements(locator entities.Locator) ([]Element, error)

	// ExecuteScript runs script with the given arguments, exposed as arguments[i]
	ExecuteScript(script string, args ...any) (any, error)

	// PressKey presses key on the active element while holding modifiers
	PressKey(key entities.Key, modifiers ...entities.Key) error

	// CurrentWindowHandle returns the handle of the focused window
	CurrentWindowHandle() (string, error)

	// WindowHandles returns all window handles in creation order
	WindowHandles() ([]string, error)

	// SwitchWindow focuses the window with handle
	SwitchWindow(handle string) error

	// SwitchFrame switches into frame; nil switches to the top-level document
	SwitchFrame(frame Element) error

	// AlertText returns the text of the open alert
	AlertText() (string, error)

	// AcceptAlert accepts the open alert
	AcceptAlert() error

	// DismissAlert dismisses the open alert
	DismissAlert() error

	// Capabilities returns the negotiated session capabilities
	Capabilities() (map[string]any, error)

	// MaximizeWindow maximizes the focused window
	MaximizeWindow() error

	// Screenshot takes a PNG screenshot
	Screenshot() ([]byte, error)

	// Close ends the session and releases the driver
	Close() error
}
