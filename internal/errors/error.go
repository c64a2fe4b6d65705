package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryResolve  Category = "resolve"
	CategoryPipeline Category = "pipeline"
	CategoryConfig   Category = "config"
	CategoryBuild    Category = "build"
	CategoryDev      Category = "dev"
	CategoryDeploy   Category = "deploy"
	CategoryCLI      Category = "cli"
)

// Location represents a source code location.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SvgkitError is a structured error with source location, suggestions, and documentation.
type SvgkitError struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type (resolve, pipeline, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the source location where the error occurred.
	Location *Location

	// Context contains surrounding source lines.
	Context []string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SvgkitError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SvgkitError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds source location to the error.
func (e *SvgkitError) WithLocation(file string, line, column int) *SvgkitError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SvgkitError) WithSuggestion(s string) *SvgkitError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SvgkitError) WithDetail(d string) *SvgkitError {
	e.Detail = d
	return e
}

// WithContext adds custom context lines to the error.
func (e *SvgkitError) WithContext(lines []string) *SvgkitError {
	e.Context = lines
	return e
}

// Wrap wraps another error.
func (e *SvgkitError) Wrap(err error) *SvgkitError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) []string {
	file, err := os.Open(filename)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := targetLine - contextSize/2
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines
}

// New creates a SvgkitError from a registered error code.
func New(code string) *SvgkitError {
	template, ok := registry[code]
	if !ok {
		return &SvgkitError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SvgkitError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new SvgkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SvgkitError {
	return &SvgkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SvgkitError.
func FromError(err error, code string) *SvgkitError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SvgkitError); ok {
		return se
	}
	return New(code).Wrap(err)
}

// IsCategory reports whether err is a SvgkitError of the given category.
func IsCategory(err error, cat Category) bool {
	se, ok := err.(*SvgkitError)
	return ok && se.Category == cat
}
