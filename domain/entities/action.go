package entities

import "time"

// ActionType represents the type of step a scenario can perform
type ActionType string

const (
	ActionNavigate        ActionType = "navigate"
	ActionClick           ActionType = "click"
	ActionClickAndVanish  ActionType = "click_and_wait_for_invisibility"
	ActionTypeText        ActionType = "type"
	ActionSlowType        ActionType = "slow_type"
	ActionHover           ActionType = "hover"
	ActionSelectText      ActionType = "select_text"
	ActionSelectPartial   ActionType = "select_partial_text"
	ActionSelectValue     ActionType = "select_value"
	ActionPressEnter      ActionType = "press_enter"
	ActionWaitVisible     ActionType = "wait_visible"
	ActionWaitInvisible   ActionType = "wait_invisible"
	ActionAssertAttribute ActionType = "assert_attribute"
	ActionAssertVisible   ActionType = "assert_visible"
	ActionAssertHidden    ActionType = "assert_hidden"
	ActionAssertText      ActionType = "assert_text"
	ActionSwitchWindow    ActionType = "switch_window"
	ActionSwitchFrame     ActionType = "switch_frame"
	ActionDefaultContent  ActionType = "default_content"
	ActionSleep           ActionType = "sleep"
)

// Action represents a single scripted step
type Action struct {
	Type           ActionType `json:"type"`
	Locator        *Locator   `json:"locator,omitempty"`
	Text           string     `json:"text,omitempty"`
	URL            string     `json:"url,omitempty"`
	Attribute      string     `json:"attribute,omitempty"`
	Value          string     `json:"value,omitempty"`
	WindowPosition int        `json:"window_position,omitempty"`
	WindowHandle   string     `json:"window_handle,omitempty"`
	FrameIndex     int        `json:"frame_index,omitempty"`
	FrameID        string     `json:"frame_id,omitempty"`
	TimeoutSeconds float64    `json:"timeout,omitempty"`
	Description    string     `json:"description"`
}

// Timeout - returns the step timeout or def when unset
func (a Action) Timeout(def time.Duration) time.Duration {
	if a.TimeoutSeconds <= 0 {
		return def
	}
	return time.Duration(a.TimeoutSeconds * float64(time.Second))
}

// ActionResult represents the result of an action
type ActionResult struct {
	Action   Action        `json:"action"`
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
	URL      string        `json:"url,omitempty"`
}
