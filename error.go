package tabmark

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL   = "internal"
	EINVALID    = "invalid"
	ENOTFOUND   = "not_found"
	ENOTARGET   = "no_target"
	EPARSE      = "parse"
	ECONVERSION = "conversion"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("tabmark error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NoActiveTargetError is returned by collaborators when there is no eligible
// document to convert, e.g. no open http(s) tab in the browser.
type NoActiveTargetError struct {
	Reason string
}

func (e *NoActiveTargetError) Error() string {
	if e.Reason == "" {
		return "no active target"
	}
	return "no active target: " + e.Reason
}

// ParseError is returned when markup cannot be parsed into a node tree.
// URL identifies the document the markup came from.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConversionError is returned when no rule applies to a node.
// It cannot happen with a RuleSet that includes the fallback rule.
type ConversionError struct {
	Node string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("no conversion rule for node %q", e.Node)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var (
		appErr    *Error
		targetErr *NoActiveTargetError
		parseErr  *ParseError
		convErr   *ConversionError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Code
	case errors.As(err, &targetErr):
		return ENOTARGET
	case errors.As(err, &parseErr):
		return EPARSE
	case errors.As(err, &convErr):
		return ECONVERSION
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		appErr    *Error
		targetErr *NoActiveTargetError
		parseErr  *ParseError
		convErr   *ConversionError
	)
	switch {
	case errors.As(err, &appErr):
		return appErr.Message
	case errors.As(err, &targetErr):
		return targetErr.Error()
	case errors.As(err, &parseErr):
		return parseErr.Error()
	case errors.As(err, &convErr):
		return convErr.Error()
	}
	return "Internal error."
}
