package validation

import "github.com/lmsforge/packlint/internal/domain"

// Rule is one checkable property of a manifest kind M. Check is a pure
// function of the manifest: no I/O, no mutation, no panics on invalid
// input — invalid input produces Error-severity issues.
type Rule[M any] struct {
	Name  string
	Check func(m *M) domain.ValidationResult
}

// Engine runs a fixed, ordered rule set for one manifest kind and
// concatenates the results. Issue order follows rule declaration order
// and is deterministic across runs.
type Engine[M any] struct {
	rules []Rule[M]
}

// NewEngine creates an Engine over the given rules in declaration order.
func NewEngine[M any](rules ...Rule[M]) *Engine[M] {
	return &Engine[M]{rules: rules}
}

// Validate runs every rule against m and merges the results in rule
// order. Passing a nil manifest is a programmer error, not bad input
// data, and panics rather than producing issues.
func (e *Engine[M]) Validate(m *M) domain.ValidationResult {
	if m == nil {
		panic("validation: nil manifest passed to engine")
	}
	var result domain.ValidationResult
	for _, rule := range e.rules {
		result.Merge(rule.Check(m))
	}
	return result
}
