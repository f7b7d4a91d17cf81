// Package browsertest provides an in-memory driver session for unit tests of
// code written against interfaces.Session. Tests describe the page as a set of
// nodes bound to locators and mutate it between or during waits.
package browsertest

import (
	"fmt"
	"strings"
	"sync"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

// Node is a fake DOM node
type Node struct {
	Tag      string
	Text     string
	Value    string
	Attrs    map[string]string
	Props    map[string]string
	CSS      map[string]string
	Hidden   bool
	Disabled bool
	Selected bool
	Stale    bool
	Rect     entities.Rect
	Children []*Node
	OnClick  func()

	parent *Node

	// Typed records every SendKeys call in order.
	Typed   []string
	// Pressed records every key chord pressed on this node, e.g. "Meta+a".
	Pressed []string
	Clicks  int
}

// El - creates a visible node with the given tag and text
func El(tag, text string) *Node {
	return &Node{Tag: tag, Text: text, Rect: entities.Rect{Width: 10, Height: 10}}
}

// At - sets the node's rendered box
func (n *Node) At(x, y, w, h float64) *Node {
	n.Rect = entities.Rect{X: x, Y: y, Width: w, Height: h}
	return n
}

// WithAttr - sets an attribute
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
	return n
}

// Add - appends children
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// Dropdown - builds a <select> whose options carry the given visible texts.
// Option values are the texts lower-cased with spaces replaced by dashes.
func Dropdown(texts ...string) *Node {
	sel := El("select", "")
	for _, t := range texts {
		sel.Add(El("option", t).WithAttr("value", strings.ReplaceAll(strings.ToLower(t), " ", "-")))
	}
	return sel
}

// Session is a fake interfaces.Session. The zero value is not usable; call NewSession.
type Session struct {
	mu sync.Mutex

	url     string
	title   string
	nodes   map[string][]*Node
	dynamic map[string]func(call int) []*Node
	calls   map[string]int

	windows []string
	current string

	frame  *Node
	Frames []*Node

	alert *string

	caps map[string]any

	// ScriptHandler answers ExecuteScript; nil returns (nil, nil).
	ScriptHandler func(script string, args []any) (any, error)
	Scripts       []string

	Keys      []string
	Pointer   []string
	Closed    bool
	Maximized bool
}

var _ interfaces.Session = (*Session)(nil)

// NewSession - creates a fake session with a single window
func NewSession() *Session {
	return &Session{
		nodes:   map[string][]*Node{},
		dynamic: map[string]func(int) []*Node{},
		calls:   map[string]int{},
		windows: []string{"window-1"},
		current: "window-1",
		caps:    map[string]any{"browserName": "chrome", "browserVersion": "120.0.0.0"},
	}
}

func key(l entities.Locator) string {
	return l.Plain().String()
}

// Set - binds nodes to a locator, replacing any previous binding
func (s *Session) Set(l entities.Locator, nodes ...*Node) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.dynamic, key(l))
	s.nodes[key(l)] = nodes
	return s
}

// Script - binds a function computing the matches for the n-th lookup (starting at 1)
func (s *Session) Script(l entities.Locator, fn func(call int) []*Node) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dynamic[key(l)] = fn
	return s
}

// Lookups - returns how many times the locator was queried
func (s *Session) Lookups(l entities.Locator) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key(l)]
}

// Mutate - runs fn while holding the session lock, for changing nodes from
// another goroutine while a wait is polling
func (s *Session) Mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// OpenWindow - adds a window handle
func (s *Session) OpenWindow(handle string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows, handle)
	return s
}

// OpenAlert - opens an alert with text
func (s *Session) OpenAlert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alert = &text
}

// AlertOpen - reports whether an alert is open
func (s *Session) AlertOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alert != nil
}

// CurrentFrame - returns the frame node last switched into, nil for the top-level document
func (s *Session) CurrentFrame() *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// SetCapability - overrides a capability
func (s *Session) SetCapability(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caps[name] = value
}

func (s *Session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	return nil
}

func (s *Session) CurrentURL() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url, nil
}

func (s *Session) Title() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title, nil
}

func (s *Session) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	s.mu.Lock()
	k := key(l)
	s.calls[k]++
	call := s.calls[k]
	fn, dyn := s.dynamic[k]
	nodes := s.nodes[k]
	s.mu.Unlock()

	if dyn {
		nodes = fn(call)
	}
	return wrap(s, nodes), nil
}

func wrap(s *Session, nodes []*Node) []interfaces.Element {
	out := make([]interfaces.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Element{Node: n, session: s})
	}
	return out
}

func (s *Session) ExecuteScript(script string, args ...any) (any, error) {
	s.mu.Lock()
	s.Scripts = append(s.Scripts, script)
	h := s.ScriptHandler
	s.mu.Unlock()
	if h == nil {
		return nil, nil
	}
	return h(script, args)
}

func chord(k entities.Key, modifiers []entities.Key) string {
	parts := make([]string, 0, len(modifiers)+1)
	for _, m := range modifiers {
		parts = append(parts, string(m))
	}
	return strings.Join(append(parts, string(k)), "+")
}

func (s *Session) PressKey(k entities.Key, modifiers ...entities.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Keys = append(s.Keys, chord(k, modifiers))
	return nil
}

func (s *Session) CurrentWindowHandle() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

func (s *Session) WindowHandles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.windows...), nil
}

func (s *Session) SwitchWindow(handle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.windows {
		if w == handle {
			s.current = handle
			return nil
		}
	}
	return fmt.Errorf("no such window: %s", handle)
}

func (s *Session) SwitchFrame(frame interfaces.Element) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if frame == nil {
		s.frame = nil
		return nil
	}
	el, ok := frame.(*Element)
	if !ok {
		return fmt.Errorf("foreign element %T", frame)
	}
	if el.Node.Stale {
		return errs.New(errs.StaleReference, "stale element reference")
	}
	s.frame = el.Node
	s.Frames = append(s.Frames, el.Node)
	return nil
}

func (s *Session) AlertText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alert == nil {
		return "", errs.New(errs.NoSuchAlert, "no such alert")
	}
	return *s.alert, nil
}

func (s *Session) AcceptAlert() error {
	return s.closeAlert()
}

func (s *Session) DismissAlert() error {
	return s.closeAlert()
}

func (s *Session) closeAlert() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.alert == nil {
		return errs.New(errs.NoSuchAlert, "no such alert")
	}
	s.alert = nil
	return nil
}

func (s *Session) Capabilities() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.caps))
	for k, v := range s.caps {
		out[k] = v
	}
	return out, nil
}

func (s *Session) MaximizeWindow() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Maximized = true
	return nil
}

func (s *Session) Screenshot() ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

func (s *Session) record(format string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pointer = append(s.Pointer, fmt.Sprintf(format, args...))
	return nil
}

func label(el interfaces.Element) string {
	if e, ok := el.(*Element); ok {
		if e.Node.Text != "" {
			return e.Node.Text
		}
		return e.Node.Tag
	}
	return "?"
}

func (s *Session) Hover(el interfaces.Element) error {
	return s.record("hover %s", label(el))
}

func (s *Session) ClickAt(el interfaces.Element, x, y int) error {
	if err := s.record("click %s %+d%+d", label(el), x, y); err != nil {
		return err
	}
	return el.Click()
}

func (s *Session) DoubleClick(el interfaces.Element) error {
	return s.record("double-click %s", label(el))
}

func (s *Session) ContextClick(el interfaces.Element) error {
	return s.record("context-click %s", label(el))
}

func (s *Session) DragTo(src, dst interfaces.Element) error {
	return s.record("drag %s -> %s", label(src), label(dst))
}

func (s *Session) DragBy(src interfaces.Element, x, y int) error {
	return s.record("drag %s by %+d%+d", label(src), x, y)
}

// Element is a fake interfaces.Element backed by a Node
type Element struct {
	Node    *Node
	session *Session
}

var _ interfaces.Element = (*Element)(nil)

func (e *Element) check() error {
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	if e.Node.Stale {
		return errs.New(errs.StaleReference, "stale element reference: element is not attached to the page document")
	}
	return nil
}

func (e *Element) Click() error {
	if err := e.check(); err != nil {
		return err
	}
	e.session.mu.Lock()
	n := e.Node
	n.Clicks++
	if n.Tag == "option" && n.parent != nil {
		for _, sib := range n.parent.Children {
			sib.Selected = false
		}
		n.Selected = true
	}
	onClick := n.OnClick
	e.session.mu.Unlock()
	if onClick != nil {
		onClick()
	}
	return nil
}

func (e *Element) SendKeys(text string) error {
	if err := e.check(); err != nil {
		return err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	e.Node.Typed = append(e.Node.Typed, text)
	e.Node.Value += text
	return nil
}

func (e *Element) PressKey(k entities.Key, modifiers ...entities.Key) error {
	if err := e.check(); err != nil {
		return err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	e.Node.Pressed = append(e.Node.Pressed, chord(k, modifiers))
	return nil
}

func (e *Element) Clear() error {
	if err := e.check(); err != nil {
		return err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	e.Node.Value = ""
	return nil
}

func (e *Element) Text() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	if e.Node.Hidden {
		return "", nil
	}
	return e.Node.Text, nil
}

func (e *Element) TagName() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	return e.Node.Tag, nil
}

func (e *Element) Attribute(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	if name == "value" && e.Node.Tag != "option" {
		return e.Node.Value, nil
	}
	return e.Node.Attrs[name], nil
}

func (e *Element) Property(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return e.Node.Props[name], nil
}

func (e *Element) CSSValue(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return e.Node.CSS[name], nil
}

func (e *Element) IsDisplayed() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return !e.Node.Hidden && e.Node.Rect.Width > 0 && e.Node.Rect.Height > 0, nil
}

func (e *Element) IsEnabled() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return !e.Node.Disabled, nil
}

func (e *Element) IsSelected() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return e.Node.Selected, nil
}

func (e *Element) Rect() (entities.Rect, error) {
	if err := e.check(); err != nil {
		return entities.Rect{}, err
	}
	e.session.mu.Lock()
	defer e.session.mu.Unlock()
	return e.Node.Rect, nil
}

// FindElements matches descendants by tag name; other strategies fall back to
// the session-level bindings.
func (e *Element) FindElements(l entities.Locator) ([]interfaces.Element, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	if l.Strategy != entities.StrategyTagName {
		return e.session.FindElements(l)
	}
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Tag == l.Selector {
				out = append(out, c)
			}
			walk(c)
		}
	}
	e.session.mu.Lock()
	walk(e.Node)
	e.session.mu.Unlock()
	return wrap(e.session, out), nil
}
