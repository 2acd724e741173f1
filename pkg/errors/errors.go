// Package errors carries sketchgrid's coded errors.
//
// Every failure a caller can act on has a [Code]. The CLI prints
// [UserMessage] and the HTTP server maps the code to a status with
// [IsClientError]. Causes stay reachable through the standard
// errors.Is and errors.As.
//
//	err := errors.New(errors.ErrCodeInvalidEdgeShape, "(%d,%d)-(%d,%d) is not an edge", x0, y0, x1, y1)
//	if errors.Is(err, errors.ErrCodeInvalidEdgeShape) {
//	    // reject the stroke
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidEdgeShape     Code = "INVALID_EDGE_SHAPE"
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidMode          Code = "INVALID_MODE"
	ErrCodeMalformedEncoding    Code = "MALFORMED_ENCODING"
	ErrCodeNotFound             Code = "NOT_FOUND"
	ErrCodeInternal             Code = "INTERNAL_ERROR"
	ErrCodeUnsupported          Code = "UNSUPPORTED"
)

// clientCodes are the codes caused by what the caller sent.
var clientCodes = map[Code]bool{
	ErrCodeInvalidConfiguration: true,
	ErrCodeInvalidEdgeShape:     true,
	ErrCodeInvalidInput:         true,
	ErrCodeInvalidFormat:        true,
	ErrCodeInvalidMode:          true,
	ErrCodeMalformedEncoding:    true,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error, or "" if there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause from coded errors.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err is the caller's fault.
func IsClientError(err error) bool {
	return clientCodes[GetCode(err)]
}
