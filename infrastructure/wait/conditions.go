package wait

import (
	"fmt"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/locate"
)

// Target is either a locator, resolved to its first match on every evaluation,
// or an element handle obtained earlier.
type Target struct {
	locator *entities.Locator
	element interfaces.Element
}

// ByLocator - targets the first element matching l
func ByLocator(l entities.Locator) Target { return Target{locator: &l} }

// ByElement - targets an already located element
func ByElement(el interfaces.Element) Target { return Target{element: el} }

func (t Target) resolve(s interfaces.Session) (interfaces.Element, error) {
	if t.element != nil {
		return t.element, nil
	}
	if t.locator == nil {
		return nil, errs.New(errs.InvalidArgument, "empty wait target")
	}
	return locate.First(s, *t.locator)
}

func (t Target) String() string {
	if t.locator != nil {
		return t.locator.String()
	}
	return "element"
}

// Presence holds when at least one element matches, visible or not.
type Presence struct {
	Locator entities.Locator
}

func (c Presence) Evaluate(s interfaces.Session) (bool, error) {
	n, err := locate.Count(s, c.Locator)
	return n > 0, err
}

func (c Presence) String() string { return fmt.Sprintf("presence of %s", c.Locator) }

// Visible holds when the target is present and displayed.
type Visible struct {
	Target Target
}

func (c Visible) Evaluate(s interfaces.Session) (bool, error) {
	el, err := c.Target.resolve(s)
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}

func (c Visible) String() string { return fmt.Sprintf("visibility of %s", c.Target) }

// Invisible holds when nothing matches, the first match is not displayed, or
// the match was detached while being inspected.
type Invisible struct {
	Locator entities.Locator
}

func (c Invisible) Evaluate(s interfaces.Session) (bool, error) {
	el, err := locate.First(s, c.Locator)
	if errs.Is(err, errs.NoSuchElement) || errs.Is(err, errs.StaleReference) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	shown, err := el.IsDisplayed()
	if errs.Is(err, errs.StaleReference) {
		return true, nil
	}
	return !shown, err
}

func (c Invisible) String() string { return fmt.Sprintf("invisibility of %s", c.Locator) }

// Clickable holds when the target is displayed and enabled.
type Clickable struct {
	Target Target
}

func (c Clickable) Evaluate(s interfaces.Session) (bool, error) {
	el, err := c.Target.resolve(s)
	if err != nil {
		return false, err
	}
	shown, err := el.IsDisplayed()
	if err != nil || !shown {
		return false, err
	}
	return el.IsEnabled()
}

func (c Clickable) String() string { return fmt.Sprintf("%s to be clickable", c.Target) }

// AttributeEquals holds when the named attribute of the first match equals Value exactly.
type AttributeEquals struct {
	Locator entities.Locator
	Name    string
	Value   string
}

func (c AttributeEquals) Evaluate(s interfaces.Session) (bool, error) {
	el, err := locate.First(s, c.Locator)
	if err != nil {
		return false, err
	}
	v, err := el.Attribute(c.Name)
	if err != nil {
		return false, err
	}
	return v == c.Value, nil
}

func (c AttributeEquals) String() string {
	return fmt.Sprintf("attribute %q of %s to be %q", c.Name, c.Locator, c.Value)
}

// AttributeContains holds when the trimmed attribute contains Value, or does not
// contain it when Negate is set.
type AttributeContains struct {
	Target Target
	Name   string
	Value  string
	Negate bool
}

func (c AttributeContains) Evaluate(s interfaces.Session) (bool, error) {
	el, err := c.Target.resolve(s)
	if err != nil {
		return false, err
	}
	v, err := el.Attribute(c.Name)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.TrimSpace(v), c.Value) != c.Negate, nil
}

func (c AttributeContains) String() string {
	verb := "to contain"
	if c.Negate {
		verb = "not to contain"
	}
	return fmt.Sprintf("attribute %q of %s %s %q", c.Name, c.Target, verb, c.Value)
}

// TextContains holds when the rendered text of the target contains Text.
type TextContains struct {
	Target Target
	Text   string
}

func (c TextContains) Evaluate(s interfaces.Session) (bool, error) {
	el, err := c.Target.resolve(s)
	if err != nil {
		return false, err
	}
	txt, err := el.Text()
	if err != nil {
		return false, err
	}
	return strings.Contains(txt, c.Text), nil
}

func (c TextContains) String() string { return fmt.Sprintf("text %q in %s", c.Text, c.Target) }

// TextAbsent holds when the target is present and its rendered text does not contain Text.
type TextAbsent struct {
	Target Target
	Text   string
}

func (c TextAbsent) Evaluate(s interfaces.Session) (bool, error) {
	el, err := c.Target.resolve(s)
	if err != nil {
		return false, err
	}
	txt, err := el.Text()
	if err != nil {
		return false, err
	}
	return !strings.Contains(txt, c.Text), nil
}

func (c TextAbsent) String() string { return fmt.Sprintf("text %q gone from %s", c.Text, c.Target) }

// CountEquals holds when exactly N elements match.
type CountEquals struct {
	Locator entities.Locator
	N       int
}

func (c CountEquals) Evaluate(s interfaces.Session) (bool, error) {
	n, err := locate.Count(s, c.Locator)
	return n == c.N, err
}

func (c CountEquals) String() string { return fmt.Sprintf("%d elements matching %s", c.N, c.Locator) }

// CountAtLeast holds when N or more elements match.
type CountAtLeast struct {
	Locator entities.Locator
	N       int
}

func (c CountAtLeast) Evaluate(s interfaces.Session) (bool, error) {
	n, err := locate.Count(s, c.Locator)
	return n >= c.N, err
}

func (c CountAtLeast) String() string {
	return fmt.Sprintf("at least %d elements matching %s", c.N, c.Locator)
}

// AlertPresent holds while a JavaScript alert is open.
type AlertPresent struct{}

func (AlertPresent) Evaluate(s interfaces.Session) (bool, error) {
	if _, err := s.AlertText(); err != nil {
		return false, err
	}
	return true, nil
}

func (AlertPresent) String() string { return "alert to be present" }

// URLContains holds when the current URL contains Fragment.
type URLContains struct {
	Fragment string
}

func (c URLContains) Evaluate(s interfaces.Session) (bool, error) {
	u, err := s.CurrentURL()
	if err != nil {
		return false, err
	}
	return strings.Contains(u, c.Fragment), nil
}

func (c URLContains) String() string { return fmt.Sprintf("url to contain %q", c.Fragment) }

var (
	_ interfaces.Condition = Presence{}
	_ interfaces.Condition = Visible{}
	_ interfaces.Condition = Invisible{}
	_ interfaces.Condition = Clickable{}
	_ interfaces.Condition = AttributeEquals{}
	_ interfaces.Condition = AttributeContains{}
	_ interfaces.Condition = TextContains{}
	_ interfaces.Condition = TextAbsent{}
	_ interfaces.Condition = CountEquals{}
	_ interfaces.Condition = CountAtLeast{}
	_ interfaces.Condition = AlertPresent{}
	_ interfaces.Condition = URLContains{}
)
