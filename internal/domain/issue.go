package domain

// Severity classifies a validation issue. Errors invalidate the package;
// warnings are advisory and never affect validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationIssue is one specification-rule violation. Immutable once
// constructed. Location is a path-like locator into the manifest, e.g.
// "resources/resource[@identifier='intro']".
type ValidationIssue struct {
	Code         string
	Severity     Severity
	Message      string
	Location     string
	SuggestedFix string
}

// ValidationResult is an ordered sequence of issues. Issue order follows
// rule execution order and is part of the contract: validating the same
// manifest twice yields identical results.
type ValidationResult struct {
	Issues []ValidationIssue
}

// AddError appends an Error-severity issue.
func (r *ValidationResult) AddError(code, message, location, fix string) {
	r.Issues = append(r.Issues, ValidationIssue{
		Code:         code,
		Severity:     SeverityError,
		Message:      message,
		Location:     location,
		SuggestedFix: fix,
	})
}

// AddWarning appends a Warning-severity issue.
func (r *ValidationResult) AddWarning(code, message, location, fix string) {
	r.Issues = append(r.Issues, ValidationIssue{
		Code:         code,
		Severity:     SeverityWarning,
		Message:      message,
		Location:     location,
		SuggestedFix: fix,
	})
}

// Merge appends every issue of other to r, preserving order.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Issues = append(r.Issues, other.Issues...)
}

// IsValid reports whether the result carries no Error-severity issues.
// Warnings do not affect validity.
func (r ValidationResult) IsValid() bool {
	return !r.HasErrors()
}

// HasErrors reports whether any issue has Error severity.
func (r ValidationResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any issue has Warning severity.
func (r ValidationResult) HasWarnings() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns the Error-severity issues in order.
func (r ValidationResult) Errors() []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Warnings returns the Warning-severity issues in order.
func (r ValidationResult) Warnings() []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}
