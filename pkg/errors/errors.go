package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a family document parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a field of a family document or settings file that failed a check.
// Field uses the document's own key names, e.g. components[1].default_variants.size.
type ValidationError struct {
	// Path is the document the field belongs to; empty until the error reaches a file boundary.
	Path    string
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// WithPath returns a copy of err with Path set when err is a *ValidationError without one.
// Other errors, wrapped ones included, are returned unchanged.
func WithPath(err error, path string) error {
	v, ok := err.(*ValidationError)
	if !ok || v == nil || v.Path != "" {
		return err
	}
	cp := *v
	cp.Path = path
	return &cp
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	location := e.Field
	if e.Path != "" {
		location = strings.TrimSuffix(e.Path+": "+e.Field, ": ")
	}
	if location != "" {
		return fmt.Sprintf("validation error: %s: %s", location, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RenderError represents a failure while expanding a component tree.
type RenderError struct {
	Component string
	Message   string
	Err       error
}

// NewRenderError constructs a RenderError for the named component.
func NewRenderError(component, message string, err error) error {
	return &RenderError{Component: component, Message: message, Err: err}
}

func (e *RenderError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Component != "" {
		return fmt.Sprintf("render error [%s]: %s", e.Component, msg)
	}
	return fmt.Sprintf("render error: %s", msg)
}

// Unwrap exposes the underlying error.
func (e *RenderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
