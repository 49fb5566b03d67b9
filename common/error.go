package common

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error classification carried on the wire.
type ErrorCode string

const (
	ErrInvalid  ErrorCode = "invalid"
	ErrNotFound ErrorCode = "not_found"
	ErrInternal ErrorCode = "internal"
)

// Error is an application error with a code the client can branch on.
type Error struct {
	Code        ErrorCode
	Description string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Description
}

func Errorf(code ErrorCode, format string, args ...any) error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code associated with err, or ErrInternal if err isn't
// an application error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return ErrInternal
}
