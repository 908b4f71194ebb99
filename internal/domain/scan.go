package domain

import "time"

// ScanStatus is the terminal state of a scan whose detection and parse
// phases succeeded. Detection and parse failures surface as errors, not
// statuses: no report is produced for them.
type ScanStatus string

const (
	ScanValid        ScanStatus = "valid"
	ScanWithWarnings ScanStatus = "with_warnings"
	ScanWithErrors   ScanStatus = "with_errors"
)

// StatusFor derives the terminal status from a validation result.
func StatusFor(result ValidationResult) ScanStatus {
	switch {
	case result.HasErrors():
		return ScanWithErrors
	case result.HasWarnings():
		return ScanWithWarnings
	default:
		return ScanValid
	}
}

// Metadata is the normalized, format-independent view of a parsed module.
// Produced best-effort: a package that validates with errors still yields
// whatever metadata could be extracted.
type Metadata struct {
	Identifier  string
	Title       string
	Description string
	LaunchURL   string
	ModuleType  ModuleType
	Edition     ModuleEditionType
	// Prerequisites is non-nil only for AICC modules.
	Prerequisites DependencyGraph
}

// ScanReport is the persistent record of one scan invocation.
type ScanReport struct {
	ID          string
	PackagePath string
	ModuleType  ModuleType
	Edition     ModuleEditionType
	Metadata    Metadata
	Result      ValidationResult
	Status      ScanStatus
	ScannedAt   time.Time
}
