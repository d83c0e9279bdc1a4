package errors

import (
	stderrors "errors"
	"fmt"
)

// Error is the unified lambdachain error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c}) works
// without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// --- Constructors ---

// UnsupportedOperation reports that op has no evaluation rule for the given operands.
func UnsupportedOperation(op string, operands ...any) *Error {
	types := make([]string, len(operands))
	for i, o := range operands {
		types[i] = fmt.Sprintf("%T", o)
	}
	return &Error{
		Code:    ErrCodeUnsupportedOperation,
		Message: fmt.Sprintf("unsupported operation %q for operand types %v", op, types),
		Details: map[string]any{"op": op, "types": types},
	}
}

// AttributeNotFound reports that value has no member called name.
func AttributeNotFound(name string, value any) *Error {
	return &Error{
		Code:    ErrCodeAttributeNotFound,
		Message: fmt.Sprintf("%T has no attribute %q", value, name),
		Details: map[string]any{"attribute": name, "type": fmt.Sprintf("%T", value)},
	}
}

// KeyNotFound reports that key is absent from a mapping.
func KeyNotFound(key any) *Error {
	return &Error{
		Code:    ErrCodeKeyNotFound,
		Message: fmt.Sprintf("key %v not found", key),
		Details: map[string]any{"key": key},
	}
}

// IndexOutOfRange reports that index falls outside a sequence of the given length.
func IndexOutOfRange(index, length int) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("index %d out of range [0:%d]", index, length),
		Details: map[string]any{"index": index, "length": length},
	}
}

// DivisionByZero reports a division or modulo by zero.
func DivisionByZero(op string) *Error {
	return &Error{
		Code:    ErrCodeDivisionByZero,
		Message: fmt.Sprintf("%s by zero", op),
		Details: map[string]any{"op": op},
	}
}

// NotCallable reports that value cannot be used as a function.
func NotCallable(value any) *Error {
	return &Error{
		Code:    ErrCodeNotCallable,
		Message: fmt.Sprintf("%T is not callable", value),
		Details: map[string]any{"type": fmt.Sprintf("%T", value)},
	}
}

// TypeMismatch reports that value is not of the wanted type.
func TypeMismatch(want string, value any) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %T", want, value),
		Details: map[string]any{"want": want, "got": fmt.Sprintf("%T", value)},
	}
}

// NotSpliceable reports a template with no identifiable rebindable source.
func NotSpliceable(reason string) *Error {
	return &Error{
		Code:    ErrCodeNotSpliceable,
		Message: fmt.Sprintf("template is not spliceable: %s", reason),
	}
}

// InvalidConfig reports a configuration validation failure.
func InvalidConfig(message string) *Error {
	return &Error{Code: ErrCodeInvalidConfig, Message: message}
}
