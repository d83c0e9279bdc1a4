package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Expression errors
const (
	// ErrCodeUnsupportedOperation indicates an operation has no evaluation rule for its operands.
	ErrCodeUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	// ErrCodeDivisionByZero indicates a division or modulo by zero.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"
	// ErrCodeNotCallable indicates a stage parameter or resolved value cannot be invoked.
	ErrCodeNotCallable ErrorCode = "NOT_CALLABLE"
	// ErrCodeTypeMismatch indicates a value could not be converted to the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Access errors
const (
	// ErrCodeAttributeNotFound indicates the input has no member with the captured name.
	ErrCodeAttributeNotFound ErrorCode = "ATTRIBUTE_NOT_FOUND"
	// ErrCodeKeyNotFound indicates the captured key is absent from a map.
	ErrCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"
	// ErrCodeIndexOutOfRange indicates the captured index is outside a sequence.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
)

// Chain errors
const (
	// ErrCodeNotSpliceable indicates a template has no rebindable source.
	ErrCodeNotSpliceable ErrorCode = "NOT_SPLICEABLE"
	// ErrCodeInvalidConfig indicates the loaded configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var accessCodes = map[ErrorCode]bool{
	ErrCodeAttributeNotFound: true,
	ErrCodeKeyNotFound:       true,
	ErrCodeIndexOutOfRange:   true,
}

// IsAccessCode reports whether code describes a missing attribute, key or index.
func IsAccessCode(code ErrorCode) bool {
	return accessCodes[code]
}
