// Package errors provides the coded errors shared by the CLI and the HTTP API.
//
// Codes are grouped by prefix: INVALID_* for rejected input (scenes, anchors,
// formats, query options), *NOT_FOUND for missing files and routes, and
// INTERNAL_ERROR for everything unexpected. [HTTPStatus] maps them to status codes.
//
// The layout engine itself never returns errors: an unsolvable scene is a
// successful solve with Resolved set to false. Errors come from loading scenes,
// caching and rendering.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAnchor, "unknown target %q", target).In(boxID)
//	if errors.Is(err, errors.ErrCodeInvalidAnchor) {
//	    log.Error("bad anchor", "box", errors.Subject(err))
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidScene, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidAnchor Code = "INVALID_ANCHOR"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
//
// Subject names the scene element the error is about (a box or guideline ID,
// or "chain 2") so that API clients can point at it without parsing Message.
type Error struct {
	Code    Code
	Message string
	Subject string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// In sets the subject and returns e.
func (e *Error) In(subject string) *Error {
	e.Subject = subject
	return e
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as returns the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// Subject returns the first non-empty subject in err's chain, or "".
func Subject(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Subject != "" {
			return e.Subject
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns the message without the code prefix. Errors that are not
// an *Error are returned as-is.
func UserMessage(err error) string {
	e, ok := as(err)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// HTTPStatus maps an error code to the HTTP status the API answers with.
// Unknown and empty codes map to 500.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidScene, ErrCodeInvalidAnchor, ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
