package pages

import (
	"fmt"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

const computedStyleScript = `var s = window.getComputedStyle(arguments[0]);
var out = {};
for (var i = 0; i < s.length; i++) { out[s[i]] = s.getPropertyValue(s[i]); }
return out;`

const pseudoStyleScript = `var el = document.querySelector(arguments[0]);
if (!el) { return null; }
return window.getComputedStyle(el, arguments[1]).getPropertyValue(arguments[2]);`

const propertyScript = `var el = document.querySelector(arguments[0]);
if (!el) { return null; }
return el[arguments[1]];`

func elementText(el interfaces.Element) (string, error) {
	txt, err := el.Text()
	return strings.TrimSpace(txt), err
}

func textsOf(els []interfaces.Element) ([]string, error) {
	out := make([]string, 0, len(els))
	for _, el := range els {
		txt, err := elementText(el)
		if err != nil {
			return nil, err
		}
		out = append(out, txt)
	}
	return out, nil
}

// Text - returns the trimmed text of the first match of l
func (p *BasePage) Text(l entities.Locator) (string, error) {
	el, err := p.Find(l)
	if err != nil {
		return "", err
	}
	return elementText(el)
}

// ElementText - returns the trimmed text of el
func (p *BasePage) ElementText(el interfaces.Element) (string, error) {
	return elementText(el)
}

// Texts - returns the trimmed texts of every current match of l
func (p *BasePage) Texts(l entities.Locator) ([]string, error) {
	els, err := p.FindAll(l)
	if err != nil {
		return nil, err
	}
	return textsOf(els)
}

// TextsOf - returns the trimmed texts of els
func (p *BasePage) TextsOf(els []interfaces.Element) ([]string, error) {
	return textsOf(els)
}

// Attribute - returns the trimmed attribute name of the first match of l
func (p *BasePage) Attribute(l entities.Locator, name string) (string, error) {
	el, err := p.Find(l)
	if err != nil {
		return "", err
	}
	return p.ElementAttribute(el, name)
}

// ElementAttribute - returns the trimmed attribute name of el
func (p *BasePage) ElementAttribute(el interfaces.Element, name string) (string, error) {
	v, err := el.Attribute(name)
	return strings.TrimSpace(v), err
}

// Attributes - returns attribute name of every current match of l
func (p *BasePage) Attributes(l entities.Locator, name string) ([]string, error) {
	els, err := p.FindAll(l)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		v, err := p.ElementAttribute(el, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Property - returns the trimmed DOM property name of the first match of l
func (p *BasePage) Property(l entities.Locator, name string) (string, error) {
	el, err := p.Find(l)
	if err != nil {
		return "", err
	}
	v, err := el.Property(name)
	return strings.TrimSpace(v), err
}

// CSSValue - returns the computed CSS property of the first match of l
func (p *BasePage) CSSValue(l entities.Locator, property string) (string, error) {
	el, err := p.Find(l)
	if err != nil {
		return "", err
	}
	return p.ElementCSSValue(el, property)
}

// ElementCSSValue - returns the computed CSS property of el
func (p *BasePage) ElementCSSValue(el interfaces.Element, property string) (string, error) {
	v, err := el.CSSValue(property)
	return strings.TrimSpace(v), err
}

// BackgroundColor - returns the computed background color of l
func (p *BasePage) BackgroundColor(l entities.Locator) (string, error) {
	return p.CSSValue(l, "background-color")
}

// BorderColor - returns the computed border color of l
func (p *BasePage) BorderColor(l entities.Locator) (string, error) {
	return p.CSSValue(l, "border-color")
}

// ComputedStyle - returns every computed style property of the first match of l
func (p *BasePage) ComputedStyle(l entities.Locator) (map[string]string, error) {
	el, err := p.Find(l)
	if err != nil {
		return nil, err
	}
	res, err := p.session.ExecuteScript(computedStyleScript, el)
	if err != nil {
		return nil, fmt.Errorf("computed style of %s: %w", l, err)
	}
	raw, ok := res.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("computed style of %s: unexpected result %T", l, res)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out, nil
}

// PseudoElementStyle - returns property of the pseudo element (e.g. "::before")
// of the first element matching the CSS selector
func (p *BasePage) PseudoElementStyle(selector, pseudo, property string) (string, error) {
	return p.scriptString(pseudoStyleScript, selector, pseudo, property)
}

// ScriptProperty - returns the JavaScript property of the first element matching
// the CSS selector
func (p *BasePage) ScriptProperty(selector, property string) (string, error) {
	return p.scriptString(propertyScript, selector, property)
}

func (p *BasePage) scriptString(script string, args ...any) (string, error) {
	res, err := p.session.ExecuteScript(script, args...)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", nil
	}
	return strings.TrimSpace(fmt.Sprint(res)), nil
}

// CurrentURL - returns the URL of the current page
func (p *BasePage) CurrentURL() (string, error) {
	return p.session.CurrentURL()
}

// CurrentWindowHandle - returns the handle of the focused window
func (p *BasePage) CurrentWindowHandle() (string, error) {
	return p.session.CurrentWindowHandle()
}

// Title - returns the current page title
func (p *BasePage) Title() (string, error) {
	return p.session.Title()
}

// Navigate - loads url in the focused window
func (p *BasePage) Navigate(url string) error {
	p.logger.Infof("Navigating to: %s", url)
	return p.session.Navigate(url)
}
