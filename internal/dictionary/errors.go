package dictionary

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes dictionary errors.
type ErrorCode string

const (
	// ErrCodeInvalidLineFormat indicates a directive line with too few fields.
	ErrCodeInvalidLineFormat ErrorCode = "INVALID_LINE_FORMAT"

	// ErrCodeInvalidNameLength indicates a name longer than NameLength.
	ErrCodeInvalidNameLength ErrorCode = "INVALID_NAME_LENGTH"

	// ErrCodeInvalidType indicates an unknown type keyword or ValueType.
	ErrCodeInvalidType ErrorCode = "INVALID_TYPE"

	// ErrCodeInvalidNumericField indicates a number that is missing, does not
	// start with a digit, or overflows 32 bits.
	ErrCodeInvalidNumericField ErrorCode = "INVALID_NUMERIC_FIELD"

	// ErrCodeUnknownVendor indicates BEGIN-VENDOR or an attribute option
	// naming a vendor that has not been defined.
	ErrCodeUnknownVendor ErrorCode = "UNKNOWN_VENDOR_REFERENCE"

	// ErrCodeIO indicates a failure opening or reading a source.
	ErrCodeIO ErrorCode = "IO_FAILURE"
)

// Error is returned by loads and direct additions.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Source is the dictionary file path, or "memory" for buffers.
	// Empty for direct additions.
	Source string

	// Line is the 1-based line number within Source, 0 if not line specific.
	Line int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Source != "" && e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d of dictionary %s)", msg, e.Line, e.Source)
	} else if e.Source != "" {
		msg = fmt.Sprintf("%s (dictionary %s)", msg, e.Source)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a
// dictionary error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
