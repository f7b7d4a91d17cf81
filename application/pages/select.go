package pages

import (
	"fmt"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

var optionTag = entities.TagName("option")

// options - finds the dropdown at l and returns its option elements
func (p *BasePage) options(l entities.Locator) ([]interfaces.Element, error) {
	el, err := p.Find(l)
	if err != nil {
		return nil, err
	}
	tag, err := el.TagName()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(tag, "select") {
		return nil, errs.InvalidArgumentf("dropdown", "%s is a <%s>, not a <select>", l, tag)
	}
	return el.FindElements(optionTag)
}

// selectFirst - clicks the first option accepted by match unless it is already selected
func (p *BasePage) selectFirst(l entities.Locator, what string, match func(interfaces.Element) (bool, error)) error {
	opts, err := p.options(l)
	if err != nil {
		return err
	}
	for _, opt := range opts {
		ok, err := match(opt)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		p.logger.Infof("Selecting %s in %s", what, l)
		selected, err := opt.IsSelected()
		if err != nil || selected {
			return err
		}
		return opt.Click()
	}
	return errs.New(errs.NoMatch, fmt.Sprintf("no option with %s in %s", what, l))
}

// SelectByVisibleText - selects the option of dropdown l whose text equals text
func (p *BasePage) SelectByVisibleText(l entities.Locator, text string) error {
	want := strings.TrimSpace(text)
	return p.selectFirst(l, fmt.Sprintf("text %q", text), func(opt interfaces.Element) (bool, error) {
		got, err := opt.Text()
		return strings.TrimSpace(got) == want, err
	})
}

// SelectByValue - selects the option of dropdown l whose value attribute equals value
func (p *BasePage) SelectByValue(l entities.Locator, value string) error {
	return p.selectFirst(l, fmt.Sprintf("value %q", value), func(opt interfaces.Element) (bool, error) {
		got, err := opt.Attribute("value")
		return got == value, err
	})
}

// SelectByPartialText - selects the first option of dropdown l whose text
// contains partial. Fails with no_match when no option does. An empty partial
// text selects nothing.
func (p *BasePage) SelectByPartialText(l entities.Locator, partial string) error {
	if partial == "" {
		p.logger.Warnf("No partial text given for %s, nothing selected", l)
		return nil
	}
	return p.selectFirst(l, fmt.Sprintf("text containing %q", partial), func(opt interfaces.Element) (bool, error) {
		got, err := opt.Text()
		return strings.Contains(got, partial), err
	})
}

// SelectedText - returns the trimmed text of the first selected option of dropdown l
func (p *BasePage) SelectedText(l entities.Locator) (string, error) {
	opts, err := p.options(l)
	if err != nil {
		return "", err
	}
	for _, opt := range opts {
		selected, err := opt.IsSelected()
		if err != nil {
			return "", err
		}
		if selected {
			return elementText(opt)
		}
	}
	return "", errs.New(errs.NoSuchElement, fmt.Sprintf("no selected option in %s", l))
}

// Options - returns the trimmed texts of every option of dropdown l
func (p *BasePage) Options(l entities.Locator) ([]string, error) {
	opts, err := p.options(l)
	if err != nil {
		return nil, err
	}
	return textsOf(opts)
}

// SelectFromList - clicks the first element matching l whose trimmed text equals item
func (p *BasePage) SelectFromList(l entities.Locator, item string) error {
	if _, err := p.Find(l); err != nil {
		return err
	}
	els, err := p.FindAll(l)
	if err != nil {
		return err
	}
	for _, el := range els {
		txt, err := elementText(el)
		if err != nil {
			return err
		}
		if txt == item {
			return el.Click()
		}
	}
	return errs.New(errs.NoMatch, fmt.Sprintf("no item %q in %s", item, l))
}
