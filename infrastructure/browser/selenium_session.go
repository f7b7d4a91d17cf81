package browser

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// SeleniumSession drives a browser through a W3C WebDriver endpoint
type SeleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

var _ interfaces.Session = (*SeleniumSession)(nil)

// NewSeleniumSession - wraps an established WebDriver session. service may be nil
// when the session was not started by this process.
func NewSeleniumSession(wd selenium.WebDriver, service *selenium.Service, logger *logrus.Logger) *SeleniumSession {
	return &SeleniumSession{wd: wd, service: service, logger: logger}
}

// byFor - maps a locator strategy to the WebDriver "using" value
func byFor(s entities.Strategy) (string, error) {
	switch s {
	case entities.StrategyCSS:
		return selenium.ByCSSSelector, nil
	case entities.StrategyXPath:
		return selenium.ByXPATH, nil
	case entities.StrategyTagName:
		return selenium.ByTagName, nil
	case entities.StrategyID:
		return selenium.ByID, nil
	case entities.StrategyName:
		return selenium.ByName, nil
	case entities.StrategyClassName:
		return selenium.ByClassName, nil
	case entities.StrategyLinkText:
		return selenium.ByLinkText, nil
	case entities.StrategyPartialLinkText:
		return selenium.ByPartialLinkText, nil
	}
	return "", fmt.Errorf("unsupported locator strategy %q", s)
}

func (s *SeleniumSession) wrap(els []selenium.WebElement) []interfaces.Element {
	out := make([]interfaces.Element, len(els))
	for i, el := range els {
		out[i] = &seleniumElement{el: el, session: s}
	}
	return out
}

// unwrap - returns the WebElement behind an Element created by this session
func (s *SeleniumSession) unwrap(el interfaces.Element) (selenium.WebElement, error) {
	se, ok := el.(*seleniumElement)
	if !ok {
		return nil, fmt.Errorf("element %T does not belong to a selenium session", el)
	}
	return se.el, nil
}

// Navigate - navigates browser to specified URL
func (s *SeleniumSession) Navigate(url string) error {
	s.logger.Infof("Navigating to: %s", url)
	return classify("navigate", s.wd.Get(url))
}

// CurrentURL - returns current page URL
func (s *SeleniumSession) CurrentURL() (string, error) {
	u, err := s.wd.CurrentURL()
	return u, classify("current url", err)
}

// Title - returns current page title
func (s *SeleniumSession) Title() (string, error) {
	t, err := s.wd.Title()
	return t, classify("title", err)
}

// FindElements - finds all elements matching a plain locator
func (s *SeleniumSession) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	by, err := byFor(l.Strategy)
	if err != nil {
		return nil, err
	}
	els, err := s.wd.FindElements(by, l.Selector)
	if err != nil {
		return nil, classify(fmt.Sprintf("find %s", l), err)
	}
	return s.wrap(els), nil
}

// ExecuteScript - runs script, passing elements through as WebElement references
func (s *SeleniumSession) ExecuteScript(script string, args ...any) (any, error) {
	wdArgs := make([]interface{}, len(args))
	for i, a := range args {
		if el, ok := a.(interfaces.Element); ok {
			we, err := s.unwrap(el)
			if err != nil {
				return nil, err
			}
			a = we
		}
		wdArgs[i] = a
	}
	res, err := s.wd.ExecuteScript(script, wdArgs)
	return res, classify("execute script", err)
}

// PressKey - sends a key chord to the focused element
func (s *SeleniumSession) PressKey(k entities.Key, modifiers ...entities.Key) error {
	active, err := s.wd.ActiveElement()
	if err != nil {
		return classify("active element", err)
	}
	return classify("press key", active.SendKeys(seleniumChord(k, modifiers)))
}

func (s *SeleniumSession) CurrentWindowHandle() (string, error) {
	h, err := s.wd.CurrentWindowHandle()
	return h, classify("current window", err)
}

func (s *SeleniumSession) WindowHandles() ([]string, error) {
	hs, err := s.wd.WindowHandles()
	return hs, classify("window handles", err)
}

func (s *SeleniumSession) SwitchWindow(handle string) error {
	return classify(fmt.Sprintf("switch to window %s", handle), s.wd.SwitchWindow(handle))
}

// SwitchFrame - switches into the frame element, or to the top-level document for nil
func (s *SeleniumSession) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		return classify("switch to default content", s.wd.SwitchFrame(nil))
	}
	we, err := s.unwrap(frame)
	if err != nil {
		return err
	}
	return classify("switch to frame", s.wd.SwitchFrame(we))
}

func (s *SeleniumSession) AlertText() (string, error) {
	t, err := s.wd.AlertText()
	return t, classify("alert text", err)
}

func (s *SeleniumSession) AcceptAlert() error {
	return classify("accept alert", s.wd.AcceptAlert())
}

func (s *SeleniumSession) DismissAlert() error {
	return classify("dismiss alert", s.wd.DismissAlert())
}

// Capabilities - returns the capabilities negotiated at session creation
func (s *SeleniumSession) Capabilities() (map[string]any, error) {
	caps, err := s.wd.Capabilities()
	if err != nil {
		return nil, classify("capabilities", err)
	}
	return map[string]any(caps), nil
}

func (s *SeleniumSession) MaximizeWindow() error {
	return classify("maximize window", s.wd.MaximizeWindow(""))
}

// Screenshot - takes screenshot of current page
func (s *SeleniumSession) Screenshot() ([]byte, error) {
	png, err := s.wd.Screenshot()
	return png, classify("screenshot", err)
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumSession) Close() error {
	var err error
	if s.wd != nil {
		err = s.wd.Quit()
	}
	if s.service != nil {
		if stopErr := s.service.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	return err
}

// viewportCenterScript returns the center of arguments[0] relative to the
// viewport, first scrolling it to the middle of the screen when arguments[1] is true
const viewportCenterScript = `var el = arguments[0];
if (arguments[1]) { el.scrollIntoView({block: 'center', inline: 'center'}); }
var r = el.getBoundingClientRect();
return [r.left + r.width / 2, r.top + r.height / 2];`

// center - scrolls the element into view and returns its center in viewport coordinates
func (s *SeleniumSession) center(el interfaces.Element) (entities.Position, error) {
	return s.viewportCenter(el, true)
}

func (s *SeleniumSession) viewportCenter(el interfaces.Element, scroll bool) (entities.Position, error) {
	we, err := s.unwrap(el)
	if err != nil {
		return entities.Position{}, err
	}
	res, err := s.wd.ExecuteScript(viewportCenterScript, []interface{}{we, scroll})
	if err != nil {
		return entities.Position{}, classify("element center", err)
	}
	xy, ok := res.([]interface{})
	if !ok || len(xy) != 2 {
		return entities.Position{}, fmt.Errorf("unexpected element center %v", res)
	}
	x, okX := xy[0].(float64)
	y, okY := xy[1].(float64)
	if !okX || !okY {
		return entities.Position{}, fmt.Errorf("unexpected element center %v", res)
	}
	return entities.Position{X: int(math.Round(x)), Y: int(math.Round(y))}, nil
}

func moveTo(p entities.Position) selenium.PointerAction {
	return selenium.PointerMoveAction(0, selenium.Point{X: p.X, Y: p.Y}, selenium.FromViewport)
}

// perform - runs one W3C pointer action sequence and releases the input state
func (s *SeleniumSession) perform(op string, actions ...selenium.PointerAction) error {
	s.wd.StorePointerActions("mouse", selenium.MousePointer, actions...)
	if err := s.wd.PerformActions(); err != nil {
		return classify(op, err)
	}
	return classify(op, s.wd.ReleaseActions())
}

// Hover - moves the pointer over the element center
func (s *SeleniumSession) Hover(el interfaces.Element) error {
	c, err := s.center(el)
	if err != nil {
		return err
	}
	return s.perform("hover", moveTo(c))
}

// ClickAt - clicks at an offset from the element center
func (s *SeleniumSession) ClickAt(el interfaces.Element, xOffset, yOffset int) error {
	c, err := s.center(el)
	if err != nil {
		return err
	}
	target := entities.Position{X: c.X + xOffset, Y: c.Y + yOffset}
	return s.perform("click at offset",
		moveTo(target),
		selenium.PointerDownAction(selenium.LeftButton),
		selenium.PointerUpAction(selenium.LeftButton),
	)
}

func (s *SeleniumSession) DoubleClick(el interfaces.Element) error {
	c, err := s.center(el)
	if err != nil {
		return err
	}
	return s.perform("double click",
		moveTo(c),
		selenium.PointerDownAction(selenium.LeftButton),
		selenium.PointerUpAction(selenium.LeftButton),
		selenium.PointerDownAction(selenium.LeftButton),
		selenium.PointerUpAction(selenium.LeftButton),
	)
}

func (s *SeleniumSession) ContextClick(el interfaces.Element) error {
	c, err := s.center(el)
	if err != nil {
		return err
	}
	return s.perform("context click",
		moveTo(c),
		selenium.PointerDownAction(selenium.RightButton),
		selenium.PointerUpAction(selenium.RightButton),
	)
}

// DragTo - presses on src, moves to the center of dst and releases. Only src
// is scrolled into view; dst is measured where it ends up.
func (s *SeleniumSession) DragTo(src, dst interfaces.Element) error {
	from, err := s.center(src)
	if err != nil {
		return err
	}
	to, err := s.viewportCenter(dst, false)
	if err != nil {
		return err
	}
	return s.perform("drag",
		moveTo(from),
		selenium.PointerDownAction(selenium.LeftButton),
		selenium.PointerPauseAction(100*time.Millisecond),
		selenium.PointerMoveAction(250*time.Millisecond, selenium.Point{X: to.X, Y: to.Y}, selenium.FromViewport),
		selenium.PointerUpAction(selenium.LeftButton),
	)
}

// DragBy - presses on src, moves by the offset and releases
func (s *SeleniumSession) DragBy(src interfaces.Element, xOffset, yOffset int) error {
	from, err := s.center(src)
	if err != nil {
		return err
	}
	return s.perform("drag by offset",
		moveTo(from),
		selenium.PointerDownAction(selenium.LeftButton),
		selenium.PointerPauseAction(100*time.Millisecond),
		selenium.PointerMoveAction(250*time.Millisecond, selenium.Point{X: xOffset, Y: yOffset}, selenium.FromPointer),
		selenium.PointerUpAction(selenium.LeftButton),
	)
}

type seleniumElement struct {
	el      selenium.WebElement
	session *SeleniumSession
}

var _ interfaces.Element = (*seleniumElement)(nil)

// Click - scrolls the element to the viewport center, then clicks it
func (e *seleniumElement) Click() error {
	script := `arguments[0].scrollIntoView({block: 'center', inline: 'nearest'}); return true;`
	if _, err := e.session.wd.ExecuteScript(script, []interface{}{e.el}); err != nil {
		e.session.logger.Warnf("Failed to scroll to element: %v", err)
	}
	return classify("click", e.el.Click())
}

func (e *seleniumElement) SendKeys(text string) error {
	return classify("send keys", e.el.SendKeys(text))
}

func (e *seleniumElement) PressKey(k entities.Key, modifiers ...entities.Key) error {
	return classify("press key", e.el.SendKeys(seleniumChord(k, modifiers)))
}

func (e *seleniumElement) Clear() error {
	return classify("clear", e.el.Clear())
}

func (e *seleniumElement) Text() (string, error) {
	t, err := e.el.Text()
	return t, classify("text", err)
}

func (e *seleniumElement) TagName() (string, error) {
	t, err := e.el.TagName()
	return t, classify("tag name", err)
}

func (e *seleniumElement) Attribute(name string) (string, error) {
	v, err := e.el.GetAttribute(name)
	if err != nil && isMissingValue(err) {
		return "", nil
	}
	return v, classify("attribute "+name, err)
}

func (e *seleniumElement) Property(name string) (string, error) {
	v, err := e.el.GetProperty(name)
	if err != nil && isMissingValue(err) {
		return "", nil
	}
	return v, classify("property "+name, err)
}

func (e *seleniumElement) CSSValue(name string) (string, error) {
	v, err := e.el.CSSProperty(name)
	return v, classify("css value "+name, err)
}

func (e *seleniumElement) IsDisplayed() (bool, error) {
	ok, err := e.el.IsDisplayed()
	return ok, classify("is displayed", err)
}

func (e *seleniumElement) IsEnabled() (bool, error) {
	ok, err := e.el.IsEnabled()
	return ok, classify("is enabled", err)
}

func (e *seleniumElement) IsSelected() (bool, error) {
	ok, err := e.el.IsSelected()
	return ok, classify("is selected", err)
}

// Rect - returns the element box in document coordinates
func (e *seleniumElement) Rect() (entities.Rect, error) {
	loc, err := e.el.Location()
	if err != nil {
		return entities.Rect{}, classify("location", err)
	}
	size, err := e.el.Size()
	if err != nil {
		return entities.Rect{}, classify("size", err)
	}
	return entities.Rect{
		X:      float64(loc.X),
		Y:      float64(loc.Y),
		Width:  float64(size.Width),
		Height: float64(size.Height),
	}, nil
}

func (e *seleniumElement) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	by, err := byFor(l.Strategy)
	if err != nil {
		return nil, err
	}
	els, err := e.el.FindElements(by, l.Selector)
	if err != nil {
		return nil, classify(fmt.Sprintf("find %s", l), err)
	}
	return e.session.wrap(els), nil
}

// isMissingValue reports the error tebeka/selenium returns for a null attribute
func isMissingValue(err error) bool {
	return err != nil && err.Error() == "nil return value"
}
