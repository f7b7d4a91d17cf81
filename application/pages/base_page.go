// Package pages implements the page interaction layer: every action waits for
// its precondition, performs its effect, then optionally waits or sleeps.
package pages

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/locate"
	"ui_automation/infrastructure/network"
	"ui_automation/infrastructure/wait"
)

const (
	// DefaultTimeout bounds every wait that is not given an explicit timeout
	DefaultTimeout = 120 * time.Second
	// DragSettle is the pause after a drag so the page can react to the drop
	DragSettle = time.Second
	// FrameSettle is the pause after entering a frame
	FrameSettle = 2 * time.Second
	// SlowTypeDelay is the default pause between characters in SlowType
	SlowTypeDelay = 100 * time.Millisecond
)

// BasePage wraps a session with waiting interaction primitives. It drives one
// session from one goroutine.
type BasePage struct {
	session  interfaces.Session
	waiter   *wait.Waiter
	logger   *logrus.Logger
	network  *network.Toggler
	modifier entities.Key
	timeout  time.Duration
	sleep    func(time.Duration)

	goos     string
	waitOpts []wait.Option
}

// Option configures a BasePage
type Option func(*BasePage)

// WithPlatform - resolves the clipboard modifier for goos instead of runtime.GOOS
func WithPlatform(goos string) Option {
	return func(p *BasePage) { p.goos = goos }
}

// WithTimeout - sets the default wait timeout
func WithTimeout(d time.Duration) Option {
	return func(p *BasePage) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithNetwork - enables EnableNetwork and DisableNetwork
func WithNetwork(t *network.Toggler) Option {
	return func(p *BasePage) { p.network = t }
}

// WithWaitOptions - configures the underlying wait engine
func WithWaitOptions(opts ...wait.Option) Option {
	return func(p *BasePage) { p.waitOpts = append(p.waitOpts, opts...) }
}

// WithSleep - replaces time.Sleep for fixed post-action delays
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *BasePage) { p.sleep = sleep }
}

// NewBasePage - creates the interaction layer over a session
func NewBasePage(session interfaces.Session, logger *logrus.Logger, opts ...Option) *BasePage {
	p := &BasePage{
		session: session,
		logger:  logger,
		timeout: DefaultTimeout,
		sleep:   time.Sleep,
		goos:    runtime.GOOS,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.modifier = entities.ModifierKeyFor(p.goos)
	p.waiter = wait.NewWaiter(session, logger, p.waitOpts...)
	return p
}

// Session - returns the driven session
func (p *BasePage) Session() interfaces.Session { return p.session }

// ModifierKey - returns the select-all/copy/paste modifier chosen at construction
func (p *BasePage) ModifierKey() entities.Key { return p.modifier }

// Timeout - returns the default wait timeout
func (p *BasePage) Timeout() time.Duration { return p.timeout }

func (p *BasePage) pause(d time.Duration) {
	if d > 0 {
		p.sleep(d)
	}
}

// WaitFor - waits for an arbitrary condition
func (p *BasePage) WaitFor(cond interfaces.Condition, timeout time.Duration) error {
	return p.waiter.For(cond, timeout)
}

// WaitForExistence - waits until an element matching l is in the DOM
func (p *BasePage) WaitForExistence(l entities.Locator, timeout time.Duration) error {
	return p.WaitFor(wait.Presence{Locator: l}, timeout)
}

// WaitForVisibility - waits until the first match of l is displayed
func (p *BasePage) WaitForVisibility(l entities.Locator, timeout time.Duration) error {
	return p.WaitFor(wait.Visible{Target: wait.ByLocator(l)}, timeout)
}

// WaitForElementVisibility - waits until el is displayed
func (p *BasePage) WaitForElementVisibility(el interfaces.Element, timeout time.Duration) error {
	return p.WaitFor(wait.Visible{Target: wait.ByElement(el)}, timeout)
}

// WaitForInvisibility - waits until l matches nothing or nothing visible
func (p *BasePage) WaitForInvisibility(l entities.Locator, timeout time.Duration) error {
	return p.WaitFor(wait.Invisible{Locator: l}, timeout)
}

// WaitForText - waits until the text of the first match of l contains text
func (p *BasePage) WaitForText(l entities.Locator, text string, timeout time.Duration) error {
	return p.WaitFor(wait.TextContains{Target: wait.ByLocator(l), Text: text}, timeout)
}

// WaitForTextAbsent - waits until the text of the first match of l no longer contains text
func (p *BasePage) WaitForTextAbsent(l entities.Locator, text string, timeout time.Duration) error {
	return p.WaitFor(wait.TextAbsent{Target: wait.ByLocator(l), Text: text}, timeout)
}

// WaitForElementText - waits until the text of el contains text
func (p *BasePage) WaitForElementText(el interfaces.Element, text string, timeout time.Duration) error {
	return p.WaitFor(wait.TextContains{Target: wait.ByElement(el), Text: text}, timeout)
}

// WaitForElementTextAbsent - waits until the text of el no longer contains text
func (p *BasePage) WaitForElementTextAbsent(el interfaces.Element, text string, timeout time.Duration) error {
	return p.WaitFor(wait.TextAbsent{Target: wait.ByElement(el), Text: text}, timeout)
}

// WaitForClickable - waits until the first match of l is displayed and enabled
func (p *BasePage) WaitForClickable(l entities.Locator, timeout time.Duration) error {
	return p.WaitFor(wait.Clickable{Target: wait.ByLocator(l)}, timeout)
}

// WaitForCount - waits until exactly n elements match l
func (p *BasePage) WaitForCount(l entities.Locator, n int, timeout time.Duration) error {
	return p.WaitFor(wait.CountEquals{Locator: l, N: n}, timeout)
}

// WaitForCountAtLeast - waits until n or more elements match l
func (p *BasePage) WaitForCountAtLeast(l entities.Locator, n int, timeout time.Duration) error {
	return p.WaitFor(wait.CountAtLeast{Locator: l, N: n}, timeout)
}

// WaitForAttribute - waits until attribute name of the first match of l equals value exactly
func (p *BasePage) WaitForAttribute(l entities.Locator, name, value string, timeout time.Duration) error {
	return p.WaitFor(wait.AttributeEquals{Locator: l, Name: name, Value: value}, timeout)
}

// WaitUntilAttributeContains - waits until attribute name of target contains value
func (p *BasePage) WaitUntilAttributeContains(target wait.Target, name, value string, timeout time.Duration) error {
	return p.WaitFor(wait.AttributeContains{Target: target, Name: name, Value: value}, timeout)
}

// WaitUntilAttributeNotContains - waits until attribute name of target no longer contains value
func (p *BasePage) WaitUntilAttributeNotContains(target wait.Target, name, value string, timeout time.Duration) error {
	return p.WaitFor(wait.AttributeContains{Target: target, Name: name, Value: value, Negate: true}, timeout)
}

// WaitForURL - waits until the current URL contains fragment
func (p *BasePage) WaitForURL(fragment string, timeout time.Duration) error {
	return p.WaitFor(wait.URLContains{Fragment: fragment}, timeout)
}

// FindOne - waits up to timeout for l to match and returns the first match.
// Exhausting the wait yields a not_found error that still reads as a timeout.
func (p *BasePage) FindOne(l entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	if err := p.WaitForExistence(l, timeout); err != nil {
		if errs.IsTimeout(err) {
			return nil, errs.NotFoundAfter(l, err)
		}
		return nil, err
	}
	return locate.First(p.session, l)
}

// Find - FindOne with the default timeout
func (p *BasePage) Find(l entities.Locator) (interfaces.Element, error) {
	return p.FindOne(l, p.timeout)
}

// FindAll - returns whatever currently matches l, without waiting
func (p *BasePage) FindAll(l entities.Locator) ([]interfaces.Element, error) {
	return locate.All(p.session, l)
}

// Count - returns how many elements currently match l
func (p *BasePage) Count(l entities.Locator) (int, error) {
	return locate.Count(p.session, l)
}

// findRelative - waits for the anchor, then returns the nearest target in direction
func (p *BasePage) findRelative(anchor, target entities.Locator, dir entities.Direction) (interfaces.Element, error) {
	if _, err := p.Find(anchor); err != nil {
		return nil, err
	}
	rel := target.Plain()
	rel.Relative = &entities.Relation{Direction: dir, Anchor: anchor}
	return locate.First(p.session, rel)
}

// FindAbove - returns the target match nearest above the anchor
func (p *BasePage) FindAbove(anchor, target entities.Locator) (interfaces.Element, error) {
	return p.findRelative(anchor, target, entities.Above)
}

// FindBelow - returns the target match nearest below the anchor
func (p *BasePage) FindBelow(anchor, target entities.Locator) (interfaces.Element, error) {
	return p.findRelative(anchor, target, entities.Below)
}

// FindLeftOf - returns the target match nearest to the left of the anchor
func (p *BasePage) FindLeftOf(anchor, target entities.Locator) (interfaces.Element, error) {
	return p.findRelative(anchor, target, entities.LeftOf)
}

// FindRightOf - returns the target match nearest to the right of the anchor
func (p *BasePage) FindRightOf(anchor, target entities.Locator) (interfaces.Element, error) {
	return p.findRelative(anchor, target, entities.RightOf)
}

// Parent - returns the parent of the first match of l
func (p *BasePage) Parent(l entities.Locator) (interfaces.Element, error) {
	el, err := p.Find(l)
	if err != nil {
		return nil, err
	}
	parents, err := el.FindElements(entities.XPath("./parent::*"))
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return nil, errs.New(errs.NoSuchElement, fmt.Sprintf("no parent for %s", l))
	}
	return parents[0], nil
}

// ElementByText - returns the first element whose own text contains text, waiting up to 3s
func (p *BasePage) ElementByText(text string) (interfaces.Element, error) {
	return p.FindOne(entities.ContainsText(text), 3*time.Second)
}

// ElementsByText - returns every element whose own text contains text
func (p *BasePage) ElementsByText(text string) ([]interfaces.Element, error) {
	return p.FindAll(entities.ContainsText(text))
}

// probe - converts a timeout into false
func probe(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errs.IsTimeout(err) {
		return false, nil
	}
	return false, err
}

// IsVisible - reports whether l becomes visible within timeout
func (p *BasePage) IsVisible(l entities.Locator, timeout time.Duration) (bool, error) {
	return probe(p.WaitForVisibility(l, timeout))
}

// IsElementVisible - reports whether el becomes visible within timeout
func (p *BasePage) IsElementVisible(el interfaces.Element, timeout time.Duration) (bool, error) {
	return probe(p.WaitForElementVisibility(el, timeout))
}

// IsClickable - reports whether l becomes clickable within timeout
func (p *BasePage) IsClickable(l entities.Locator, timeout time.Duration) (bool, error) {
	return probe(p.WaitForClickable(l, timeout))
}

// IsDisplayed - finds l and reports whether it is displayed right now
func (p *BasePage) IsDisplayed(l entities.Locator) (bool, error) {
	el, err := p.Find(l)
	if err != nil {
		return false, err
	}
	return el.IsDisplayed()
}
