// Package errors provides structured, actionable error messages for svgkit.
//
// Every fatal condition in the import pipeline surfaces through this
// package so the host bundler (and the CLI) can report build failures
// with file context:
//   - Shows exact source locations (file, line, column)
//   - Explains what went wrong in plain language
//   - Suggests how to fix issues
//   - Links to documentation
//
// # Error Categories
//
// Errors are organized into categories:
//   - resolve: import resolution errors (unknown importer, bad pattern)
//   - pipeline: content pipeline errors (read, optimize, compile)
//   - config: svgkit.json errors
//   - build: production bundling errors
//   - dev: development server errors
//   - cli: command-line errors
//
// # Error Codes
//
// Each error has a unique code (e.g., "E201") that maps to a short
// message, a detailed explanation, and a documentation URL.
//
// # Usage
//
//	err := errors.New("E202").
//	    WithDetail("open icons/arrow.svg: no such file or directory").
//	    WithSuggestion("Check that the file exists relative to the importer")
//
//	fmt.Println(err.Format())
package errors
