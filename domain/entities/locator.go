package entities

import "fmt"

// Strategy identifies how a selector string is interpreted by the driver
type Strategy string

const (
	StrategyCSS             Strategy = "css selector"
	StrategyXPath           Strategy = "xpath"
	StrategyTagName         Strategy = "tag name"
	StrategyID              Strategy = "id"
	StrategyName            Strategy = "name"
	StrategyClassName       Strategy = "class name"
	StrategyLinkText        Strategy = "link text"
	StrategyPartialLinkText Strategy = "partial link text"
)

// Direction is the layout relation between a relative locator and its anchor
type Direction string

const (
	Above   Direction = "above"
	Below   Direction = "below"
	LeftOf  Direction = "left of"
	RightOf Direction = "right of"
)

// Locator identifies zero or more elements in the current document.
// A non-nil Relative restricts matches to elements positioned relative to an anchor.
type Locator struct {
	Strategy Strategy  `json:"strategy"`
	Selector string    `json:"selector"`
	Relative *Relation `json:"relative,omitempty"`
}

// Relation binds a locator to an anchor element found by another locator
type Relation struct {
	Direction Direction `json:"direction"`
	Anchor    Locator   `json:"anchor"`
}

// CSS - creates a CSS selector locator
func CSS(selector string) Locator { return Locator{Strategy: StrategyCSS, Selector: selector} }

// XPath - creates an XPath locator
func XPath(expr string) Locator { return Locator{Strategy: StrategyXPath, Selector: expr} }

// ID - creates an element ID locator
func ID(id string) Locator { return Locator{Strategy: StrategyID, Selector: id} }

// TagName - creates a tag name locator
func TagName(tag string) Locator { return Locator{Strategy: StrategyTagName, Selector: tag} }

// Name - creates a name attribute locator
func Name(name string) Locator { return Locator{Strategy: StrategyName, Selector: name} }

// ClassName - creates a class name locator
func ClassName(class string) Locator { return Locator{Strategy: StrategyClassName, Selector: class} }

// LinkText - creates an exact link text locator
func LinkText(text string) Locator { return Locator{Strategy: StrategyLinkText, Selector: text} }

// PartialLinkText - creates a partial link text locator
func PartialLinkText(text string) Locator {
	return Locator{Strategy: StrategyPartialLinkText, Selector: text}
}

// ContainsText - creates an XPath locator matching any element whose text contains text
func ContainsText(text string) Locator {
	return XPath(fmt.Sprintf(`//*[contains(text(),"%s")]`, text))
}

// Above - restricts l to elements rendered above the anchor
func (l Locator) Above(anchor Locator) Locator { return l.relativeTo(Above, anchor) }

// Below - restricts l to elements rendered below the anchor
func (l Locator) Below(anchor Locator) Locator { return l.relativeTo(Below, anchor) }

// LeftOf - restricts l to elements rendered left of the anchor
func (l Locator) LeftOf(anchor Locator) Locator { return l.relativeTo(LeftOf, anchor) }

// RightOf - restricts l to elements rendered right of the anchor
func (l Locator) RightOf(anchor Locator) Locator { return l.relativeTo(RightOf, anchor) }

func (l Locator) relativeTo(dir Direction, anchor Locator) Locator {
	l.Relative = &Relation{Direction: dir, Anchor: anchor}
	return l
}

// Plain - returns the locator without its relation
func (l Locator) Plain() Locator {
	l.Relative = nil
	return l
}

// IsZero - reports whether the locator has no selector
func (l Locator) IsZero() bool {
	return l.Strategy == "" && l.Selector == ""
}

func (l Locator) String() string {
	s := fmt.Sprintf("%s=%q", l.Strategy, l.Selector)
	if l.Relative != nil {
		s += fmt.Sprintf(" %s [%s]", l.Relative.Direction, l.Relative.Anchor)
	}
	return s
}
