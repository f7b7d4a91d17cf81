package entities

import "fmt"

// WindowRef identifies a browser window either by its 1-based position or by its handle
type WindowRef interface {
	fmt.Stringer
	windowRef()
}

// WindowPosition is a 1-based index into the session's window handles
type WindowPosition int

// WindowHandle is a driver-issued window handle
type WindowHandle string

func (WindowPosition) windowRef() {}
func (WindowHandle) windowRef()   {}

func (p WindowPosition) String() string { return fmt.Sprintf("window #%d", int(p)) }
func (h WindowHandle) String() string   { return fmt.Sprintf("window %q", string(h)) }

// FrameRef identifies an iframe by 1-based index, by element ID or by locator
type FrameRef interface {
	fmt.Stringer
	frameRef()
}

// FrameIndex is a 1-based index into the iframes of the current document
type FrameIndex int

// FrameID is the id attribute of the frame element
type FrameID string

// FrameLocator locates the frame element
type FrameLocator struct {
	Locator Locator
}

func (FrameIndex) frameRef()   {}
func (FrameID) frameRef()      {}
func (FrameLocator) frameRef() {}

func (i FrameIndex) String() string   { return fmt.Sprintf("frame #%d", int(i)) }
func (id FrameID) String() string     { return fmt.Sprintf("frame id %q", string(id)) }
func (f FrameLocator) String() string { return fmt.Sprintf("frame %s", f.Locator) }
