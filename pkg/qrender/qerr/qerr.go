package qerr

import (
	"errors"
	"fmt"
)

// Code represents a stable failure kind that callers can switch on.
type Code string

const (
	CodeUnknown            Code = "unknown"
	CodeDocumentNotSaved   Code = "document_not_saved"
	CodeExecutableNotFound Code = "executable_not_found"
	CodeLaunchFailure      Code = "launch_failure"
	CodeInternalRender     Code = "internal_render"
	CodeOutputUnavailable  Code = "output_unavailable"
)

// Error is a simple value type that carries a Code plus the underlying error.
type Error struct {
	Code Code
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// New wraps an error with the provided code. If err is nil a nil is returned.
func New(code Code, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, err: err}
}

// Newf builds a coded error from a format string.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, err: fmt.Errorf(format, args...)}
}

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code && err != nil
}

// CodeOf extracts the Code from err, or CodeUnknown when err is not coded.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
