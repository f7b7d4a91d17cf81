package pages

import (
	"fmt"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
	"ui_automation/infrastructure/locate"
	"ui_automation/infrastructure/wait"
)

// ClickAndWait - waits for l to be clickable, clicks it, then sleeps delay
func (p *BasePage) ClickAndWait(l entities.Locator, delay time.Duration) error {
	if err := p.WaitForClickable(l, p.timeout); err != nil {
		return err
	}
	el, err := locate.First(p.session, l)
	if err != nil {
		return err
	}
	p.logger.Infof("Clicking on: %s", l)
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s: %w", l, err)
	}
	p.pause(delay)
	return nil
}

// Click - clicks l once it is clickable
func (p *BasePage) Click(l entities.Locator) error {
	return p.ClickAndWait(l, 0)
}

// ClickElement - waits for el to be clickable, clicks it, then sleeps delay
func (p *BasePage) ClickElement(el interfaces.Element, delay time.Duration) error {
	if err := p.WaitFor(wait.Clickable{Target: wait.ByElement(el)}, p.timeout); err != nil {
		return err
	}
	if err := el.Click(); err != nil {
		return fmt.Errorf("click element: %w", err)
	}
	p.pause(delay)
	return nil
}

// ClickAndWaitForTarget - clicks l, then waits for target to exist in the DOM.
// A nil target makes this a plain click.
func (p *BasePage) ClickAndWaitForTarget(l entities.Locator, target *entities.Locator, timeout time.Duration) error {
	if err := p.Click(l); err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	return p.WaitForExistence(*target, timeout)
}

// ClickAndWaitForInvisibility - clicks l, then waits for l itself to disappear
func (p *BasePage) ClickAndWaitForInvisibility(l entities.Locator, timeout time.Duration) error {
	if err := p.Click(l); err != nil {
		return err
	}
	return p.WaitForInvisibility(l, timeout)
}

// ClickAtOffset - clicks at an offset from the center of l
func (p *BasePage) ClickAtOffset(l entities.Locator, xOffset, yOffset int) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.session.ClickAt(el, xOffset, yOffset)
}

// EnterText - waits for l to be visible, clears it or moves the caret to the
// end, then types text
func (p *BasePage) EnterText(l entities.Locator, text string, clear bool) error {
	el, err := p.visible(l)
	if err != nil {
		return err
	}
	if clear {
		if err := el.Clear(); err != nil {
			return fmt.Errorf("clear %s: %w", l, err)
		}
	} else if err := el.PressKey(entities.KeyEnd, entities.KeyControl); err != nil {
		return fmt.Errorf("move to end of %s: %w", l, err)
	}
	if text == "" {
		return nil
	}
	p.logger.Debugf("Typing %d characters into: %s", len(text), l)
	return el.SendKeys(text)
}

// ClearField - clears l once it is visible
func (p *BasePage) ClearField(l entities.Locator) error {
	return p.EnterText(l, "", true)
}

// SlowType - types text into l one character at a time, pausing delay
// between characters (SlowTypeDelay when delay is zero)
func (p *BasePage) SlowType(l entities.Locator, text string, delay time.Duration) error {
	if delay <= 0 {
		delay = SlowTypeDelay
	}
	el, err := p.visible(l)
	if err != nil {
		return err
	}
	for _, r := range text {
		if err := el.SendKeys(string(r)); err != nil {
			return fmt.Errorf("slow type into %s: %w", l, err)
		}
		p.pause(delay)
	}
	return nil
}

func (p *BasePage) visible(l entities.Locator) (interfaces.Element, error) {
	if err := p.WaitForVisibility(l, p.timeout); err != nil {
		return nil, err
	}
	return locate.First(p.session, l)
}

// Hover - moves the pointer to l, then sleeps delay
func (p *BasePage) Hover(l entities.Locator, delay time.Duration) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.HoverElement(el, delay)
}

// HoverElement - moves the pointer to el, then sleeps delay
func (p *BasePage) HoverElement(el interfaces.Element, delay time.Duration) error {
	if err := p.session.Hover(el); err != nil {
		return fmt.Errorf("hover: %w", err)
	}
	p.pause(delay)
	return nil
}

// HoverAndClick - moves the pointer to l and clicks it
func (p *BasePage) HoverAndClick(l entities.Locator) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.HoverAndClickElement(el)
}

// HoverAndClickElement - moves the pointer to el and clicks it
func (p *BasePage) HoverAndClickElement(el interfaces.Element) error {
	if err := p.HoverElement(el, 0); err != nil {
		return err
	}
	return el.Click()
}

// HoverAndDoubleClickElement - moves the pointer to el and double-clicks it
func (p *BasePage) HoverAndDoubleClickElement(el interfaces.Element) error {
	if err := p.HoverElement(el, 0); err != nil {
		return err
	}
	return p.session.DoubleClick(el)
}

// ScrollToElement - brings l into view by moving the pointer onto it
func (p *BasePage) ScrollToElement(l entities.Locator) error {
	return p.Hover(l, 0)
}

// DoubleClick - double-clicks l
func (p *BasePage) DoubleClick(l entities.Locator) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.session.DoubleClick(el)
}

// RightClick - opens the context menu on l
func (p *BasePage) RightClick(l entities.Locator) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.RightClickElement(el)
}

// RightClickElement - opens the context menu on el
func (p *BasePage) RightClickElement(el interfaces.Element) error {
	return p.session.ContextClick(el)
}

// DragTo - drags the first match of src onto the first match of dst
func (p *BasePage) DragTo(src, dst entities.Locator) error {
	from, err := p.Find(src)
	if err != nil {
		return err
	}
	to, err := p.Find(dst)
	if err != nil {
		return err
	}
	p.logger.Infof("Dragging %s to %s", src, dst)
	if err := p.session.DragTo(from, to); err != nil {
		return fmt.Errorf("drag %s to %s: %w", src, dst, err)
	}
	p.pause(DragSettle)
	return nil
}

// DragBy - drags the first match of src by an offset
func (p *BasePage) DragBy(src entities.Locator, xOffset, yOffset int) error {
	from, err := p.Find(src)
	if err != nil {
		return err
	}
	p.logger.Infof("Dragging %s by (%d, %d)", src, xOffset, yOffset)
	if err := p.session.DragBy(from, xOffset, yOffset); err != nil {
		return fmt.Errorf("drag %s: %w", src, err)
	}
	p.pause(DragSettle)
	return nil
}

// pressOn - presses a chord on l, or on the active element when l is nil
func (p *BasePage) pressOn(l *entities.Locator, key entities.Key, modifiers ...entities.Key) error {
	if l == nil {
		return p.session.PressKey(key, modifiers...)
	}
	el, err := p.Find(*l)
	if err != nil {
		return err
	}
	return el.PressKey(key, modifiers...)
}

// PressEnter - presses Enter on l, or on the focused element when l is nil
func (p *BasePage) PressEnter(l *entities.Locator) error {
	return p.pressOn(l, entities.KeyEnter)
}

// PressEscape - presses Escape on the focused element
func (p *BasePage) PressEscape() error {
	return p.pressOn(nil, entities.KeyEscape)
}

// PressBackspace - presses Backspace on l
func (p *BasePage) PressBackspace(l entities.Locator) error {
	return p.pressOn(&l, entities.KeyBackspace)
}

// PressArrowUp - presses the up arrow on l
func (p *BasePage) PressArrowUp(l entities.Locator) error {
	return p.pressOn(&l, entities.KeyArrowUp)
}

// PressArrowDown - presses the down arrow on l
func (p *BasePage) PressArrowDown(l entities.Locator) error {
	return p.pressOn(&l, entities.KeyArrowDown)
}

// PressArrowLeft - presses the left arrow on l
func (p *BasePage) PressArrowLeft(l entities.Locator) error {
	return p.pressOn(&l, entities.KeyArrowLeft)
}

// PressArrowRight - presses the right arrow on l
func (p *BasePage) PressArrowRight(l entities.Locator) error {
	return p.pressOn(&l, entities.KeyArrowRight)
}

// KeyboardShortcut - presses Control+Alt+key on the focused element
func (p *BasePage) KeyboardShortcut(key entities.Key) error {
	return p.pressOn(nil, key, entities.KeyControl, entities.KeyAlt)
}

// SelectAll - selects the whole content of l
func (p *BasePage) SelectAll(l entities.Locator) error {
	el, err := p.FindOne(l, 5*time.Second)
	if err != nil {
		return err
	}
	return el.PressKey("a", p.modifier)
}

// DeleteField - selects the whole content of l and deletes it
func (p *BasePage) DeleteField(l entities.Locator) error {
	if err := p.SelectAll(l); err != nil {
		return err
	}
	return p.pressOn(&l, entities.KeyDelete)
}

// Copy - selects the whole content of l and copies it to the clipboard
func (p *BasePage) Copy(l entities.Locator) error {
	if err := p.SelectAll(l); err != nil {
		return err
	}
	return p.pressOn(&l, "c", p.modifier)
}

// Paste - clicks l, gives it a second to take focus, then pastes the clipboard
func (p *BasePage) Paste(l entities.Locator) error {
	if err := p.ClickAndWait(l, time.Second); err != nil {
		return err
	}
	return p.pressOn(nil, "v", p.modifier)
}

// ScrollIntoView - scrolls l into the viewport
func (p *BasePage) ScrollIntoView(l entities.Locator) error {
	el, err := p.Find(l)
	if err != nil {
		return err
	}
	return p.ScrollElementIntoView(el)
}

// ScrollElementIntoView - scrolls el into the viewport
func (p *BasePage) ScrollElementIntoView(el interfaces.Element) error {
	_, err := p.session.ExecuteScript("arguments[0].scrollIntoView(true);", el)
	return err
}
