package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

// PlaywrightSession drives Chromium through playwright. Pages stand in for
// WebDriver windows and get uuid handles in the order they open.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  *logrus.Logger

	mu      sync.Mutex
	handles []string
	pages   map[string]playwright.Page
	current string
	frame   playwright.Frame
	dialog  playwright.Dialog
}

var _ interfaces.Session = (*PlaywrightSession)(nil)

// NewPlaywrightSession - launches Chromium and opens the first page
func NewPlaywrightSession(opts entities.BrowserOptions, logger *logrus.Logger) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--use-fake-device-for-media-stream",
			"--use-fake-ui-for-media-stream",
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:          &playwright.Size{Width: 1280, Height: 720},
		IgnoreHttpsErrors: playwright.Bool(true),
		Permissions:       []string{"camera", "microphone", "clipboard-read", "clipboard-write"},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	s := &PlaywrightSession{
		pw:      pw,
		browser: browser,
		context: bctx,
		logger:  logger,
		pages:   map[string]playwright.Page{},
	}

	bctx.OnPage(func(p playwright.Page) {
		s.track(p)
	})

	page, err := bctx.NewPage()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	// OnPage may not have fired yet for the first page.
	s.track(page)

	logger.Infof("Playwright Chromium %s started", browser.Version())
	return s, nil
}

// track - registers a page under a fresh handle once; the first page becomes current
func (s *PlaywrightSession) track(p playwright.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.pages {
		if known == p {
			return
		}
	}

	handle := uuid.NewString()
	s.handles = append(s.handles, handle)
	s.pages[handle] = p
	if s.current == "" {
		s.current = handle
		s.frame = p.MainFrame()
	}

	p.OnDialog(func(d playwright.Dialog) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.dialog = d
	})
	p.OnClose(func(playwright.Page) {
		s.forget(handle)
	})
}

// forget - drops a closed page; focus moves to the oldest remaining page, or
// to none when the last one closed
func (s *PlaywrightSession) forget(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages, handle)
	for i, h := range s.handles {
		if h == handle {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
	if s.current != handle {
		return
	}
	s.current, s.frame = "", nil
	if len(s.handles) > 0 {
		s.current = s.handles[0]
		s.frame = s.pages[s.current].MainFrame()
	}
}

func errNoWindow() error {
	return errs.InvalidArgumentf("window", "no open window")
}

func (s *PlaywrightSession) page() (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[s.current]
	if !ok || p == nil {
		return nil, errNoWindow()
	}
	return p, nil
}

func (s *PlaywrightSession) currentFrame() (playwright.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil, errNoWindow()
	}
	return s.frame, nil
}

// playwrightSelector - converts a plain locator to a playwright selector
func playwrightSelector(l entities.Locator) (string, error) {
	switch l.Strategy {
	case entities.StrategyCSS:
		return "css=" + l.Selector, nil
	case entities.StrategyXPath:
		return "xpath=" + l.Selector, nil
	case entities.StrategyTagName:
		return "css=" + l.Selector, nil
	case entities.StrategyID:
		return fmt.Sprintf("css=[id=%q]", l.Selector), nil
	case entities.StrategyName:
		return fmt.Sprintf("css=[name=%q]", l.Selector), nil
	case entities.StrategyClassName:
		return "css=." + strings.Join(strings.Fields(l.Selector), "."), nil
	case entities.StrategyLinkText:
		return fmt.Sprintf("xpath=//a[normalize-space()=%s]", xpathLiteral(l.Selector)), nil
	case entities.StrategyPartialLinkText:
		return fmt.Sprintf("xpath=//a[contains(normalize-space(), %s)]", xpathLiteral(l.Selector)), nil
	}
	return "", fmt.Errorf("unsupported locator strategy %q", l.Strategy)
}

// xpathLiteral - quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + p + `"`
	}
	return "concat(" + strings.Join(quoted, `, '"', `) + ")"
}

func (s *PlaywrightSession) wrap(handles []playwright.ElementHandle) []interfaces.Element {
	out := make([]interfaces.Element, len(handles))
	for i, h := range handles {
		out[i] = &playwrightElement{h: h, session: s}
	}
	return out
}

func (s *PlaywrightSession) unwrap(el interfaces.Element) (playwright.ElementHandle, error) {
	pe, ok := el.(*playwrightElement)
	if !ok {
		return nil, fmt.Errorf("element %T does not belong to a playwright session", el)
	}
	return pe.h, nil
}

// Navigate - navigates the current page to the URL
func (s *PlaywrightSession) Navigate(url string) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	s.logger.Infof("Navigating to: %s", url)
	_, err = p.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return classify("navigate", err)
}

func (s *PlaywrightSession) CurrentURL() (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	return p.URL(), nil
}

func (s *PlaywrightSession) Title() (string, error) {
	p, err := s.page()
	if err != nil {
		return "", err
	}
	t, err := p.Title()
	return t, classify("title", err)
}

// FindElements - queries the current frame without waiting
func (s *PlaywrightSession) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	sel, err := playwrightSelector(l)
	if err != nil {
		return nil, err
	}
	frame, err := s.currentFrame()
	if err != nil {
		return nil, err
	}
	hs, err := frame.QuerySelectorAll(sel)
	if err != nil {
		return nil, classify(fmt.Sprintf("find %s", l), err)
	}
	return s.wrap(hs), nil
}

// ExecuteScript - runs a WebDriver-style script body in the current frame.
// The body sees its arguments as arguments[i].
func (s *PlaywrightSession) ExecuteScript(script string, args ...any) (any, error) {
	pwArgs := make([]interface{}, len(args))
	for i, a := range args {
		if el, ok := a.(interfaces.Element); ok {
			h, err := s.unwrap(el)
			if err != nil {
				return nil, err
			}
			a = h
		}
		pwArgs[i] = a
	}
	frame, err := s.currentFrame()
	if err != nil {
		return nil, err
	}
	expr := fmt.Sprintf("(args) => (function() { %s }).apply(null, args)", script)
	res, err := frame.Evaluate(expr, pwArgs)
	return res, classify("execute script", err)
}

func (s *PlaywrightSession) PressKey(k entities.Key, modifiers ...entities.Key) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	return classify("press key", p.Keyboard().Press(playwrightChord(k, modifiers)))
}

func (s *PlaywrightSession) CurrentWindowHandle() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *PlaywrightSession) WindowHandles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.handles...), nil
}

// SwitchWindow - focuses the page with the handle
func (s *PlaywrightSession) SwitchWindow(handle string) error {
	s.mu.Lock()
	p, ok := s.pages[handle]
	if ok {
		s.current = handle
		s.frame = p.MainFrame()
	}
	s.mu.Unlock()
	if !ok {
		return errs.InvalidArgumentf("window", "no window with handle %q", handle)
	}
	return classify("bring to front", p.BringToFront())
}

// SwitchFrame - enters the content frame of an iframe element, or returns to the main frame for nil
func (s *PlaywrightSession) SwitchFrame(frame interfaces.Element) error {
	if frame == nil {
		p, err := s.page()
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.frame = p.MainFrame()
		s.mu.Unlock()
		return nil
	}
	h, err := s.unwrap(frame)
	if err != nil {
		return err
	}
	f, err := h.ContentFrame()
	if err != nil {
		return classify("switch to frame", err)
	}
	if f == nil {
		return errs.New(errs.NoSuchFrame, "no such frame: element is not an iframe")
	}
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
	return nil
}

func (s *PlaywrightSession) openDialog() (playwright.Dialog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialog == nil {
		return nil, errs.New(errs.NoSuchAlert, "no such alert")
	}
	return s.dialog, nil
}

func (s *PlaywrightSession) clearDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = nil
}

func (s *PlaywrightSession) AlertText() (string, error) {
	d, err := s.openDialog()
	if err != nil {
		return "", err
	}
	return d.Message(), nil
}

func (s *PlaywrightSession) AcceptAlert() error {
	d, err := s.openDialog()
	if err != nil {
		return err
	}
	defer s.clearDialog()
	return classify("accept alert", d.Accept())
}

func (s *PlaywrightSession) DismissAlert() error {
	d, err := s.openDialog()
	if err != nil {
		return err
	}
	defer s.clearDialog()
	return classify("dismiss alert", d.Dismiss())
}

// Capabilities - reports the launched browser in WebDriver capability terms
func (s *PlaywrightSession) Capabilities() (map[string]any, error) {
	return map[string]any{
		"browserName":    "chromium",
		"browserVersion": s.browser.Version(),
	}, nil
}

// MaximizeWindow - playwright has no window manager, so the viewport is enlarged instead
func (s *PlaywrightSession) MaximizeWindow() error {
	p, err := s.page()
	if err != nil {
		return err
	}
	return classify("maximize window", p.SetViewportSize(1920, 1080))
}

func (s *PlaywrightSession) Screenshot() ([]byte, error) {
	p, err := s.page()
	if err != nil {
		return nil, err
	}
	png, err := p.Screenshot()
	return png, classify("screenshot", err)
}

func ignoreClosed(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "closed") || strings.Contains(msg, "target closed") {
		return nil
	}
	return err
}

// Close - closes context and browser, then stops the playwright driver
func (s *PlaywrightSession) Close() error {
	var closeErr error
	if s.context != nil {
		if err := ignoreClosed(s.context.Close()); err != nil {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := ignoreClosed(s.browser.Close()); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		s.pw = nil
	}
	return closeErr
}

// center - scrolls the element into view and returns its center in viewport coordinates
func (s *PlaywrightSession) center(el interfaces.Element) (entities.Position, error) {
	h, err := s.unwrap(el)
	if err != nil {
		return entities.Position{}, err
	}
	if err := h.ScrollIntoViewIfNeeded(); err != nil {
		return entities.Position{}, classify("scroll into view", err)
	}
	r, err := el.Rect()
	if err != nil {
		return entities.Position{}, err
	}
	return r.Center(), nil
}

func (s *PlaywrightSession) Hover(el interfaces.Element) error {
	h, err := s.unwrap(el)
	if err != nil {
		return err
	}
	return classify("hover", h.Hover())
}

func (s *PlaywrightSession) ClickAt(el interfaces.Element, xOffset, yOffset int) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	c, err := s.center(el)
	if err != nil {
		return err
	}
	return classify("click at offset", p.Mouse().Click(float64(c.X+xOffset), float64(c.Y+yOffset)))
}

func (s *PlaywrightSession) DoubleClick(el interfaces.Element) error {
	h, err := s.unwrap(el)
	if err != nil {
		return err
	}
	return classify("double click", h.Dblclick())
}

func (s *PlaywrightSession) ContextClick(el interfaces.Element) error {
	h, err := s.unwrap(el)
	if err != nil {
		return err
	}
	return classify("context click", h.Click(playwright.ElementHandleClickOptions{
		Button: playwright.MouseButtonRight,
	}))
}

// drag - presses at from, moves to to in small steps and releases
func (s *PlaywrightSession) drag(from, to entities.Position) error {
	p, err := s.page()
	if err != nil {
		return err
	}
	mouse := p.Mouse()
	if err := mouse.Move(float64(from.X), float64(from.Y)); err != nil {
		return classify("drag", err)
	}
	if err := mouse.Down(); err != nil {
		return classify("drag", err)
	}
	if err := mouse.Move(float64(to.X), float64(to.Y), playwright.MouseMoveOptions{Steps: playwright.Int(10)}); err != nil {
		return classify("drag", err)
	}
	return classify("drag", mouse.Up())
}

func (s *PlaywrightSession) DragTo(src, dst interfaces.Element) error {
	from, err := s.center(src)
	if err != nil {
		return err
	}
	to, err := s.center(dst)
	if err != nil {
		return err
	}
	return s.drag(from, to)
}

func (s *PlaywrightSession) DragBy(src interfaces.Element, xOffset, yOffset int) error {
	from, err := s.center(src)
	if err != nil {
		return err
	}
	return s.drag(from, entities.Position{X: from.X + xOffset, Y: from.Y + yOffset})
}

type playwrightElement struct {
	h       playwright.ElementHandle
	session *PlaywrightSession
}

var _ interfaces.Element = (*playwrightElement)(nil)

func (e *playwrightElement) eval(op, expr string, arg ...interface{}) (string, error) {
	v, err := e.h.Evaluate(expr, arg...)
	if err != nil {
		return "", classify(op, err)
	}
	if v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

func (e *playwrightElement) Click() error {
	return classify("click", e.h.Click())
}

func (e *playwrightElement) SendKeys(text string) error {
	p, err := e.session.page()
	if err != nil {
		return err
	}
	if err := e.h.Focus(); err != nil {
		return classify("focus", err)
	}
	return classify("send keys", p.Keyboard().Type(text))
}

func (e *playwrightElement) PressKey(k entities.Key, modifiers ...entities.Key) error {
	return classify("press key", e.h.Press(playwrightChord(k, modifiers)))
}

func (e *playwrightElement) Clear() error {
	return classify("clear", e.h.Fill(""))
}

func (e *playwrightElement) Text() (string, error) {
	t, err := e.h.InnerText()
	return t, classify("text", err)
}

func (e *playwrightElement) TagName() (string, error) {
	return e.eval("tag name", "el => el.tagName.toLowerCase()")
}

func (e *playwrightElement) Attribute(name string) (string, error) {
	v, err := e.h.GetAttribute(name)
	return v, classify("attribute "+name, err)
}

func (e *playwrightElement) Property(name string) (string, error) {
	return e.eval("property "+name, "(el, name) => el[name] == null ? '' : String(el[name])", name)
}

func (e *playwrightElement) CSSValue(name string) (string, error) {
	return e.eval("css value "+name, "(el, name) => getComputedStyle(el).getPropertyValue(name)", name)
}

func (e *playwrightElement) IsDisplayed() (bool, error) {
	ok, err := e.h.IsVisible()
	return ok, classify("is displayed", err)
}

func (e *playwrightElement) IsEnabled() (bool, error) {
	ok, err := e.h.IsEnabled()
	return ok, classify("is enabled", err)
}

func (e *playwrightElement) IsSelected() (bool, error) {
	v, err := e.eval("is selected", "el => !!(el.selected || el.checked)")
	return v == "true", err
}

func (e *playwrightElement) Rect() (entities.Rect, error) {
	box, err := e.h.BoundingBox()
	if err != nil {
		return entities.Rect{}, classify("bounding box", err)
	}
	if box == nil {
		return entities.Rect{}, nil
	}
	return entities.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *playwrightElement) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	sel, err := playwrightSelector(l)
	if err != nil {
		return nil, err
	}
	hs, err := e.h.QuerySelectorAll(sel)
	if err != nil {
		return nil, classify(fmt.Sprintf("find %s", l), err)
	}
	return e.session.wrap(hs), nil
}
