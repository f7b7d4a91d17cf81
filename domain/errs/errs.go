// Package errs defines the error taxonomy shared by the wait engine, the
// query layer and the page interaction layer.
package errs

import (
	"errors"
	"fmt"
	"time"
)

// Code is an automation error code.
type Code string

const (
	Timeout             Code = "timeout"
	NotFound            Code = "not_found"
	StaleReference      Code = "stale_reference"
	NoSuchElement       Code = "no_such_element"
	NoSuchAlert         Code = "no_such_alert"
	NoSuchFrame         Code = "no_such_frame"
	NoMatch             Code = "no_match"
	InvalidArgument     Code = "invalid_argument"
	UnsupportedPlatform Code = "unsupported_platform"
	Internal            Code = "internal"
)

// Error is a coded automation error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		if e.Err != nil {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a coded error with message.
func New(code Code, message string) error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a coded error with message and cause.
func Wrap(code Code, message string, cause error) error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     cause,
	}
}

// InvalidArgumentf reports a rejected discrete-choice input.
func InvalidArgumentf(argument, format string, args ...any) error {
	return &Error{
		Code:    InvalidArgument,
		Message: fmt.Sprintf("invalid %s: %s", argument, fmt.Sprintf(format, args...)),
	}
}

// TimeoutError is returned when a wait condition never became true.
type TimeoutError struct {
	Condition string
	Timeout   time.Duration
	Elapsed   time.Duration
	// LastErr is the last retryable error seen while polling, if any.
	LastErr error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s waiting for %s (timeout %s)",
		e.Elapsed.Round(time.Millisecond), e.Condition, e.Timeout)
	if e.LastErr != nil {
		msg += ": last error: " + e.LastErr.Error()
	}
	return msg
}

func (e *TimeoutError) Unwrap() error { return e.LastErr }

// CodeOf returns the code of the outermost coded error in err's chain,
// defaulting to internal.
func CodeOf(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Code == "" {
				return Internal
			}
			return e.Code
		case *TimeoutError:
			return Timeout
		}
		err = errors.Unwrap(err)
	}
	return Internal
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	if code == Timeout && IsTimeout(err) {
		return true
	}
	for err != nil {
		var coded *Error
		if !errors.As(err, &coded) {
			break
		}
		if coded.Code == code {
			return true
		}
		err = coded.Err
	}
	return false
}

// IsTimeout reports whether err is a wait timeout, including NotFound which
// wraps the timeout that exhausted the search.
func IsTimeout(err error) bool {
	var timeout *TimeoutError
	return errors.As(err, &timeout)
}

// IsRetryable reports whether a poll attempt that failed with err may succeed
// on a later attempt.
func IsRetryable(err error) bool {
	if IsTimeout(err) {
		return false
	}
	return Is(err, StaleReference) || Is(err, NoSuchElement) || Is(err, NoSuchAlert) || Is(err, NoSuchFrame)
}

// NotFoundAfter converts an exhausted presence wait into a NotFound error.
func NotFoundAfter(locator fmt.Stringer, timeout error) error {
	return Wrap(NotFound, fmt.Sprintf("no element matched %s", locator), timeout)
}
