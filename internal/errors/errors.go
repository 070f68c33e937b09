package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: please specify a file or pipe data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeLexical    ErrorType = "lexical"
	ErrorTypeSyntax     ErrorType = "syntax"
	ErrorTypeSemantic   ErrorType = "semantic"
	ErrorTypeStructural ErrorType = "structural"
	ErrorTypeStream     ErrorType = "stream"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeUnknown    ErrorType = "unknown"
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

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to writing results
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// Wrap attaches message to a diagnostic, choosing the error type from the
// diagnostic it carries.
func Wrap(message string, err error) *AppError {
	return &AppError{
		Type:    Classify(err),
		Message: message,
		Err:     err,
	}
}

// Classify reports the category of err by looking for the diagnostic types
// of this package in its chain.
func Classify(err error) ErrorType {
	var (
		appErr   *AppError
		lexErr   *LexError
		tokErr   *UnexpectedTokenError
		semErr   *SemanticError
		emptyErr *EmptyCollectionError
		strErr   *StreamFormatError
	)
	switch {
	case err == nil:
		return ErrorTypeUnknown
	case errors.As(err, &appErr):
		return appErr.Type
	case errors.As(err, &lexErr):
		return ErrorTypeLexical
	case errors.As(err, &tokErr):
		return ErrorTypeSyntax
	case errors.As(err, &semErr):
		return ErrorTypeSemantic
	case errors.As(err, &emptyErr):
		return ErrorTypeStructural
	case errors.As(err, &strErr):
		return ErrorTypeStream
	default:
		return ErrorTypeUnknown
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		detail := appErr.Message
		if appErr.Err != nil {
			detail = fmt.Sprintf("%s: %v", appErr.Message, appErr.Err)
		}
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", detail)
		case ErrorTypeLexical:
			return fmt.Sprintf("Lexical error: %s", detail)
		case ErrorTypeSyntax:
			return fmt.Sprintf("Syntax error: %s", detail)
		case ErrorTypeSemantic:
			var semErr *SemanticError
			if errors.As(err, &semErr) {
				return fmt.Sprintf("Semantic error [%s]: %s", semErr.Kind.Code(), detail)
			}
			return fmt.Sprintf("Semantic error: %s", detail)
		case ErrorTypeStructural:
			return fmt.Sprintf("Structural error: %s", detail)
		case ErrorTypeStream:
			return fmt.Sprintf("Token stream error: %s", detail)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", detail)
		default:
			return fmt.Sprintf("Error: %s", detail)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a document to parse."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please name one or more files or pipe data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if t := Classify(err); t != ErrorTypeUnknown {
		return UserFriendlyError(Wrap("parse failed", err))
	}

	return fmt.Sprintf("Error: %v", err)
}
