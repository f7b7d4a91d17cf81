// Package locate resolves locators to live element handles, including
// relative locators that match on rendered layout rather than DOM position.
package locate

import (
	"fmt"
	"sort"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

// All - returns every element currently matching the locator, without waiting.
// Plain locators keep document order; relative locators are ordered by distance
// from the anchor, nearest first.
func All(s interfaces.Session, l entities.Locator) ([]interfaces.Element, error) {
	if l.Relative == nil {
		return s.FindElements(l)
	}
	return relative(s, l)
}

// First - returns the first element matching the locator or a no_such_element error
func First(s interfaces.Session, l entities.Locator) (interfaces.Element, error) {
	els, err := All(s, l)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, errs.New(errs.NoSuchElement, fmt.Sprintf("no such element: %s", l))
	}
	return els[0], nil
}

// Count - returns the number of elements matching the locator
func Count(s interfaces.Session, l entities.Locator) (int, error) {
	els, err := All(s, l)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

type candidate struct {
	el   interfaces.Element
	dist float64
}

func relative(s interfaces.Session, l entities.Locator) ([]interfaces.Element, error) {
	anchor, err := First(s, l.Relative.Anchor)
	if err != nil {
		return nil, fmt.Errorf("anchor for %s: %w", l, err)
	}
	anchorRect, err := anchor.Rect()
	if err != nil {
		return nil, fmt.Errorf("anchor rect: %w", err)
	}

	els, err := All(s, l.Plain())
	if err != nil {
		return nil, err
	}

	matches := make([]candidate, 0, len(els))
	for _, el := range els {
		r, err := el.Rect()
		if err != nil {
			return nil, err
		}
		if r.Satisfies(l.Relative.Direction, anchorRect) {
			matches = append(matches, candidate{el: el, dist: r.Distance(anchorRect)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	out := make([]interfaces.Element, len(matches))
	for i, m := range matches {
		out[i] = m.el
	}
	return out, nil
}
