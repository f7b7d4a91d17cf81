package pages

import (
	"context"
	"fmt"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/locate"
	"ui_automation/infrastructure/wait"
)

var iframeTag = entities.TagName("iframe")

// SwitchWindow - focuses the window at a 1-based position or with a handle
func (p *BasePage) SwitchWindow(ref entities.WindowRef) error {
	switch r := ref.(type) {
	case entities.WindowPosition:
		handles, err := p.session.WindowHandles()
		if err != nil {
			return err
		}
		if int(r) < 1 || int(r) > len(handles) {
			return errs.InvalidArgumentf("window", "%s out of range, %d windows open", r, len(handles))
		}
		return p.switchWindow(handles[r-1])
	case entities.WindowHandle:
		return p.switchWindow(string(r))
	default:
		return errs.InvalidArgumentf("window", "unsupported window reference %T", ref)
	}
}

func (p *BasePage) switchWindow(handle string) error {
	p.logger.Infof("Switching to window: %s", handle)
	if err := p.session.SwitchWindow(handle); err != nil {
		return fmt.Errorf("switch to window %s: %w", handle, err)
	}
	return nil
}

// SwitchFrame - enters an iframe. FrameIndex picks among the iframes present
// right now; FrameID and FrameLocator wait up to timeout for the frame.
func (p *BasePage) SwitchFrame(ref entities.FrameRef, timeout time.Duration) error {
	var err error
	switch r := ref.(type) {
	case entities.FrameIndex:
		err = p.switchFrameIndex(int(r))
	case entities.FrameID:
		err = p.waitFrame(ref, entities.ID(string(r)), timeout)
	case entities.FrameLocator:
		err = p.waitFrame(ref, r.Locator, timeout)
	default:
		return errs.InvalidArgumentf("frame", "unsupported frame reference %T", ref)
	}
	if err != nil {
		return err
	}
	p.logger.Infof("Switched to %s", ref)
	p.pause(FrameSettle)
	return nil
}

func (p *BasePage) switchFrameIndex(i int) error {
	frames, err := p.FindAll(iframeTag)
	if err != nil {
		return err
	}
	if i < 1 || i > len(frames) {
		return errs.InvalidArgumentf("frame", "frame #%d out of range, %d iframes present", i, len(frames))
	}
	return p.session.SwitchFrame(frames[i-1])
}

func (p *BasePage) waitFrame(ref entities.FrameRef, l entities.Locator, timeout time.Duration) error {
	return p.waiter.Until(fmt.Sprintf("%s to be available", ref), func(s interfaces.Session) (bool, error) {
		el, err := locate.First(s, l)
		if err != nil {
			return false, err
		}
		if err := s.SwitchFrame(el); err != nil {
			return false, err
		}
		return true, nil
	}, timeout)
}

// DefaultContent - leaves any frame for the top-level document
func (p *BasePage) DefaultContent() error {
	return p.session.SwitchFrame(nil)
}

// WaitForAlert - waits until an alert is open
func (p *BasePage) WaitForAlert(timeout time.Duration) error {
	return p.WaitFor(wait.AlertPresent{}, timeout)
}

// AlertText - returns the text of the open alert
func (p *BasePage) AlertText() (string, error) {
	return p.session.AlertText()
}

// AcceptAlert - waits for an alert and accepts it
func (p *BasePage) AcceptAlert(timeout time.Duration) error {
	if err := p.WaitForAlert(timeout); err != nil {
		return err
	}
	return p.session.AcceptAlert()
}

// DismissAlert - waits for an alert and dismisses it
func (p *BasePage) DismissAlert(timeout time.Duration) error {
	if err := p.WaitForAlert(timeout); err != nil {
		return err
	}
	return p.session.DismissAlert()
}

// EnableNetwork - turns host networking back on
func (p *BasePage) EnableNetwork(ctx context.Context) error {
	if p.network == nil {
		return errs.InvalidArgumentf("network", "no network toggler configured")
	}
	return p.network.Enable(ctx)
}

// DisableNetwork - turns host networking off
func (p *BasePage) DisableNetwork(ctx context.Context) error {
	if p.network == nil {
		return errs.InvalidArgumentf("network", "no network toggler configured")
	}
	return p.network.Disable(ctx)
}
