package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeFormat,
				Message: "missing closing brace at offset 12",
				Err:     ErrUnterminated,
			},
			expected: "format: missing closing brace at offset 12: unterminated part in represent string",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "stdin closed",
				Err:     nil,
			},
			expected: "input: stdin closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	assert.Equal(t, wrappedErr, appErr.Unwrap())
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name:     "same type",
			appError: &AppError{Type: ErrorTypeTypeMismatch, Message: "a"},
			target:   &AppError{Type: ErrorTypeTypeMismatch, Message: "b", Err: errors.New("x")},
			expected: true,
		},
		{
			name:     "different type",
			appError: &AppError{Type: ErrorTypeFormat, Message: "a"},
			target:   &AppError{Type: ErrorTypeTypeMismatch, Message: "a"},
			expected: false,
		},
		{
			name:     "not an AppError",
			appError: &AppError{Type: ErrorTypeFormat, Message: "a"},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appError.Is(tt.target))
		})
	}
}

func TestConstructors_DefaultSentinels(t *testing.T) {
	assert.ErrorIs(t, NewTypeMismatchError("wrong shape", nil), ErrTypeMismatch)
	assert.ErrorIs(t, NewFormatError("bad", nil), ErrMalformed)
	assert.ErrorIs(t, NewFormatError("bad", ErrUnknownType), ErrUnknownType)
	assert.ErrorIs(t, NewInvalidArgumentError("nil", ErrNilCollection), ErrNilCollection)
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("decoding entry 3: %w", NewFormatError("bad", nil))

	assert.True(t, IsType(err, ErrorTypeFormat))
	assert.False(t, IsType(err, ErrorTypeTypeMismatch))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeFormat))
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "type mismatch",
			err:      NewTypeMismatchError("expected NestableDictionary, got NestableListL", nil),
			expected: "Type mismatch: expected NestableDictionary, got NestableListL",
		},
		{
			name:     "format error",
			err:      NewFormatError("missing opening brace", nil),
			expected: "Format error: missing opening brace",
		},
		{
			name:     "invalid argument",
			err:      NewInvalidArgumentError("index 4 out of range", ErrIndexOutOfRange),
			expected: "Invalid argument: index 4 out of range",
		},
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "conversion error",
			err:      NewConversionError("unsupported JSON value", nil),
			expected: "Conversion error: unsupported JSON value",
		},
		{
			name:     "config error",
			err:      NewConfigError("bad key case", nil),
			expected: "Configuration error: bad key case",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide a represent string or JSON document.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}
