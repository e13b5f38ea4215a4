// Package errors provides a lightweight structured error type for
// category-based classification across the build pipeline and CLI.
package errors

import (
	"fmt"
)

// Category classifies an error for reporting and exit-code decisions.
type Category string

const (
	// CategoryConfig covers user-facing configuration errors (missing input
	// directory, bad environment values).
	CategoryConfig Category = "config"

	// CategoryTemplate covers a document resolving to a template that does
	// not exist. Always fatal for the current pass.
	CategoryTemplate Category = "template"

	// CategoryRender covers failures while producing a single page.
	CategoryRender Category = "render"

	// CategoryFileSystem covers I/O failures reading sources or writing the
	// output tree.
	CategoryFileSystem Category = "filesystem"

	// CategoryWatch covers watcher setup and event handling failures.
	CategoryWatch Category = "watch"

	// CategoryInternal is the fallback for unclassified errors.
	CategoryInternal Category = "internal"
)

// Severity indicates how critical an error is.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Aborts the current operation
	SeverityError   Severity = "error"   // Error, but the watcher keeps running
	SeverityWarning Severity = "warning" // Degraded, processing continues
)

// Error is a structured error with category, severity, and optional context.
type Error struct {
	Category Category
	Severity Severity
	Message  string
	Cause    error
	Context  map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap supports errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context field to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(category Category, severity Severity, message string) *Error {
	return &Error{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(err error, category Category, severity Severity, message string) *Error {
	return &Error{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks whether err belongs to a specific category.
func IsCategory(err error, category Category) bool {
	if e, ok := err.(*Error); ok {
		return e.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or CategoryInternal when
// it is not a structured Error.
func GetCategory(err error) Category {
	if e, ok := err.(*Error); ok {
		return e.Category
	}
	return CategoryInternal
}

// IsFatal reports whether err carries fatal severity.
func IsFatal(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Severity == SeverityFatal
	}
	return false
}
