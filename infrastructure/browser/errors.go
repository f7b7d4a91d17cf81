package browser

import (
	"errors"
	"strings"

	"github.com/tebeka/selenium"

	"ui_automation/domain/errs"
)

// driverErrorCodes maps W3C WebDriver error names to automation error codes
var driverErrorCodes = map[string]errs.Code{
	"stale element reference": errs.StaleReference,
	"no such element":         errs.NoSuchElement,
	"no such alert":           errs.NoSuchAlert,
	"no such frame":           errs.NoSuchFrame,
	"no such window":          errs.InvalidArgument,
	"invalid argument":        errs.InvalidArgument,
	"invalid selector":        errs.InvalidArgument,
	"timeout":                 errs.Timeout,
}

// classify - wraps a driver error into the error taxonomy so the wait engine can
// tell retryable failures from fatal ones. Unknown errors pass through unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var coded *errs.Error
	if errors.As(err, &coded) {
		return err
	}

	var wdErr *selenium.Error
	if errors.As(err, &wdErr) {
		if code, ok := driverErrorCodes[wdErr.Err]; ok {
			return errs.Wrap(code, op, err)
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "stale element"),
		strings.Contains(msg, "not attached to the dom"),
		strings.Contains(msg, "element is not attached"),
		strings.Contains(msg, "execution context was destroyed"):
		return errs.Wrap(errs.StaleReference, op, err)
	case strings.Contains(msg, "no such alert"), strings.Contains(msg, "no alert open"):
		return errs.Wrap(errs.NoSuchAlert, op, err)
	case strings.Contains(msg, "no such frame"):
		return errs.Wrap(errs.NoSuchFrame, op, err)
	case strings.Contains(msg, "no such element"):
		return errs.Wrap(errs.NoSuchElement, op, err)
	}
	return err
}
