// Package errors provides a structured error type (DocWikiError) carrying a
// category and severity so the CLI can classify, log and report failures.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory classifies a DocWikiError.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Per-file processing errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryDecode     ErrorCategory = "decode"

	// External system errors
	CategoryGit ErrorCategory = "git"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Counted, run continues
	SeverityWarning ErrorSeverity = "warning" // Degraded output
)

// DocWikiError is a structured error with category, severity and context.
type DocWikiError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocWikiError
type ContextFields map[string]any

func (e *DocWikiError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

func (e *DocWikiError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocWikiError) WithContext(key string, value any) *DocWikiError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocWikiError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocWikiError {
	return &DocWikiError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocWikiError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocWikiError {
	return &DocWikiError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost DocWikiError in err's chain.
func As(err error) (*DocWikiError, bool) {
	var dwe *DocWikiError
	if stdErrors.As(err, &dwe) {
		return dwe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dwe, ok := As(err); ok {
		return dwe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocWikiError
func GetCategory(err error) ErrorCategory {
	if dwe, ok := As(err); ok {
		return dwe.Category
	}
	return CategoryInternal
}
