package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrTrailingData     = errors.New("trailing data after first JSON value")
	ErrTooDeep          = errors.New("value nesting exceeds the maximum depth")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe text to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrNothingRecovered = errors.New("no JSON value could be recovered from the input")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeSegment ErrorType = "segment"
	ErrorTypePath    ErrorType = "path"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
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

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to strict JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewSegmentError creates a new error for a segment that no decoding
// fallback could recover. The message carries the chain of attempt errors.
func NewSegmentError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSegment,
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

// PathErrorKind distinguishes the two ways path traversal can fail.
type PathErrorKind int

const (
	// KeyNotFound means the current value is not an object or lacks the key.
	KeyNotFound PathErrorKind = iota
	// IndexOutOfRange means the current value is not an array or the index
	// is past its end.
	IndexOutOfRange
)

// PathError reports a failed path traversal, naming the token that failed.
type PathError struct {
	Token string
	Kind  PathErrorKind
}

// Error implements error interface
func (e *PathError) Error() string {
	if e.Kind == IndexOutOfRange {
		return fmt.Sprintf("index out of range at %s", e.Token)
	}
	return fmt.Sprintf("key not found: %s", e.Token)
}

// NewKeyNotFoundError reports a missing object key.
func NewKeyNotFoundError(token string) *PathError {
	return &PathError{Token: token, Kind: KeyNotFound}
}

// NewIndexOutOfRangeError reports an array index that cannot be resolved.
func NewIndexOutOfRangeError(token string) *PathError {
	return &PathError{Token: token, Kind: IndexOutOfRange}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("Path error: %s", pathErr.Error())
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSegment:
			return fmt.Sprintf("Segment decoding error: %s", appErr.Message)
		case ErrorTypePath:
			return fmt.Sprintf("Path error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide JSON or JSON-like text."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrTrailingData) {
		return "Error: Extra data found after the first JSON value."
	}
	if errors.Is(err, ErrTooDeep) {
		return "Error: The input is nested too deeply to process."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe text to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrNothingRecovered) {
		return "Error: No JSON value could be recovered from the input."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
