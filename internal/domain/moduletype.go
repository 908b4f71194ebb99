package domain

import (
	"fmt"
	"strings"
)

// ModuleType identifies the e-learning packaging specification a module
// conforms to. The set is closed: consumers switch over every variant.
type ModuleType string

const (
	ModuleScorm12   ModuleType = "scorm_1.2"
	ModuleScorm2004 ModuleType = "scorm_2004"
	ModuleAicc      ModuleType = "aicc"
	ModuleCmi5      ModuleType = "cmi5"
	ModuleXapi      ModuleType = "xapi"
)

// ParseModuleType maps a user-supplied type name to a ModuleType,
// tolerating case and surrounding whitespace. The set is closed: unknown
// names are an error, never a fallback variant.
func ParseModuleType(name string) (ModuleType, error) {
	t := ModuleType(strings.ToLower(strings.TrimSpace(name)))
	switch t {
	case ModuleScorm12, ModuleScorm2004, ModuleAicc, ModuleCmi5, ModuleXapi:
		return t, nil
	default:
		return "", fmt.Errorf("unknown module type %q (valid: %s, %s, %s, %s, %s)",
			name, ModuleScorm12, ModuleScorm2004, ModuleAicc, ModuleCmi5, ModuleXapi)
	}
}

// ModuleEditionType refines ModuleScorm2004 by edition. Non-SCORM-2004
// types carry their own single edition value so that every detected module
// has exactly one edition.
type ModuleEditionType string

const (
	EditionScorm12          ModuleEditionType = "scorm_1.2"
	EditionScorm2004Generic ModuleEditionType = "scorm_2004"
	EditionScorm2004Second  ModuleEditionType = "scorm_2004_2nd"
	EditionScorm2004Third   ModuleEditionType = "scorm_2004_3rd"
	EditionScorm2004Fourth  ModuleEditionType = "scorm_2004_4th"
	EditionAicc             ModuleEditionType = "aicc"
	EditionCmi5             ModuleEditionType = "cmi5"
	EditionXapi             ModuleEditionType = "xapi"
)

// ParseScorm2004Edition maps a free-text schema version or edition string
// (e.g. "2004 3rd Edition", "CAM 1.3") to an edition. Matching is
// case-insensitive substring matching; unknown text falls back to the
// generic 2004 edition.
func ParseScorm2004Edition(edition string) ModuleEditionType {
	lower := strings.ToLower(edition)
	switch {
	case strings.Contains(lower, "2nd"), strings.Contains(lower, "second"):
		return EditionScorm2004Second
	case strings.Contains(lower, "3rd"), strings.Contains(lower, "third"):
		return EditionScorm2004Third
	case strings.Contains(lower, "4th"), strings.Contains(lower, "fourth"):
		return EditionScorm2004Fourth
	default:
		return EditionScorm2004Generic
	}
}

// ModuleType is the lossy projection from an edition back to its module
// type: all SCORM 2004 editions collapse to ModuleScorm2004.
func (e ModuleEditionType) ModuleType() ModuleType {
	switch e {
	case EditionScorm12:
		return ModuleScorm12
	case EditionScorm2004Generic, EditionScorm2004Second, EditionScorm2004Third, EditionScorm2004Fourth:
		return ModuleScorm2004
	case EditionAicc:
		return ModuleAicc
	case EditionCmi5:
		return ModuleCmi5
	case EditionXapi:
		return ModuleXapi
	default:
		return ModuleType(e)
	}
}
