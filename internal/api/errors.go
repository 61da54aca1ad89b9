package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain failure so the transport layer can pick a status
// without inspecting message strings.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *Error {
	return NewError(CodeInvalidInput, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return NewError(CodeUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return NewError(CodeForbidden, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return NewError(CodeNotFound, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return NewError(CodeConflict, format, args...)
}

func Internal(format string, args ...any) *Error {
	return NewError(CodeInternal, format, args...)
}

// AsError unwraps err into *Error when it carries a domain code.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StatusOf maps a domain error to its HTTP status. Anything without a code is
// an infrastructure failure and becomes 500.
func StatusOf(err error) int {
	e, ok := AsError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
