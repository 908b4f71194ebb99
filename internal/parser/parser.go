// Package parser deserializes the manifest dialects of the supported
// e-learning specifications into the typed trees the validation engine
// consumes. Parsers fail with a structured ParseError; they never attempt
// to repair malformed input.
package parser

import "fmt"

// ParseError reports a malformed or structurally incomplete manifest. It
// carries the package-relative path of the offending document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
