// Package scenario runs scripted steps against a page and records a report.
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
)

// Scenario is a named list of steps
type Scenario struct {
	Name  string            `json:"name"`
	Steps []entities.Action `json:"steps"`
}

var needsLocator = map[entities.ActionType]bool{
	entities.ActionClick:           true,
	entities.ActionClickAndVanish:  true,
	entities.ActionTypeText:        true,
	entities.ActionSlowType:        true,
	entities.ActionHover:           true,
	entities.ActionSelectText:      true,
	entities.ActionSelectPartial:   true,
	entities.ActionSelectValue:     true,
	entities.ActionWaitVisible:     true,
	entities.ActionWaitInvisible:   true,
	entities.ActionAssertAttribute: true,
	entities.ActionAssertVisible:   true,
	entities.ActionAssertHidden:    true,
	entities.ActionAssertText:      true,
}

var known = map[entities.ActionType]bool{
	entities.ActionNavigate:       true,
	entities.ActionPressEnter:     true,
	entities.ActionSwitchWindow:   true,
	entities.ActionSwitchFrame:    true,
	entities.ActionDefaultContent: true,
	entities.ActionSleep:          true,
}

// Validate - checks every step names a known action with its required fields
func (sc Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return errs.InvalidArgumentf("scenario", "%q has no steps", sc.Name)
	}
	for i, step := range sc.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func validateStep(a entities.Action) error {
	if !known[a.Type] && !needsLocator[a.Type] {
		return errs.InvalidArgumentf("action", "unknown action type %q", a.Type)
	}
	if needsLocator[a.Type] && (a.Locator == nil || a.Locator.IsZero()) {
		return errs.InvalidArgumentf("action", "%s requires a locator", a.Type)
	}
	switch a.Type {
	case entities.ActionNavigate:
		if a.URL == "" {
			return errs.InvalidArgumentf("action", "navigate requires a url")
		}
	case entities.ActionAssertAttribute:
		if a.Attribute == "" {
			return errs.InvalidArgumentf("action", "assert_attribute requires an attribute")
		}
	case entities.ActionSwitchWindow:
		if a.WindowHandle == "" && a.WindowPosition < 1 {
			return errs.InvalidArgumentf("action", "switch_window requires window_handle or a window_position from 1")
		}
	case entities.ActionSwitchFrame:
		if a.FrameID == "" && a.Locator == nil && a.FrameIndex < 1 {
			return errs.InvalidArgumentf("action", "switch_frame requires frame_id, locator or a frame_index from 1")
		}
	case entities.ActionSleep:
		if a.TimeoutSeconds <= 0 {
			return errs.InvalidArgumentf("action", "sleep requires a positive timeout")
		}
	}
	return nil
}

// ParseScenario - decodes a scenario object, or a bare list of steps named name
func ParseScenario(name string, data []byte) (Scenario, error) {
	var sc Scenario
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &sc.Steps); err != nil {
			return Scenario{}, fmt.Errorf("failed to parse steps: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &sc); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	return sc, sc.Validate()
}

// LoadScenario - reads and validates a scenario file
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(path, data)
}
