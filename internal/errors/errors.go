package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrTypeMismatch    = errors.New("element or collection type does not match")
	ErrMalformed       = errors.New("malformed represent string")
	ErrUnterminated    = errors.New("unterminated part in represent string")
	ErrUnknownType     = errors.New("unknown collection type")
	ErrNilCollection   = errors.New("collection must not be nil")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnsupported     = errors.New("operation not supported by this collection")
	ErrCycle           = errors.New("collection cannot contain itself")
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeTypeMismatch    ErrorType = "type_mismatch"
	ErrorTypeFormat          ErrorType = "format"
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	ErrorTypeInput           ErrorType = "input"
	ErrorTypeConversion      ErrorType = "conversion"
	ErrorTypeConfig          ErrorType = "config"
	ErrorTypeOutput          ErrorType = "output"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewTypeMismatchError creates an error for a wrong variant access or a
// decoded collection type that disagrees with the target.
func NewTypeMismatchError(message string, err error) *AppError {
	if err == nil {
		err = ErrTypeMismatch
	}
	return &AppError{
		Type:    ErrorTypeTypeMismatch,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates an error for malformed represent strings
func NewFormatError(message string, err error) *AppError {
	if err == nil {
		err = ErrMalformed
	}
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgumentError creates an error for bad arguments such as nil
// collections or out-of-range indices
func NewInvalidArgumentError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidArgument,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewConversionError creates a new error related to JSON conversion
func NewConversionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConversion,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err is an *AppError of the given type anywhere in its chain
func IsType(err error, t ErrorType) bool {
	return errors.Is(err, &AppError{Type: t})
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeTypeMismatch:
			return fmt.Sprintf("Type mismatch: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Format error: %s", appErr.Message)
		case ErrorTypeInvalidArgument:
			return fmt.Sprintf("Invalid argument: %s", appErr.Message)
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeConversion:
			return fmt.Sprintf("Conversion error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a represent string or JSON document."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
