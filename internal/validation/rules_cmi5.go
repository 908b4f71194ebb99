package validation

import (
	"fmt"

	"github.com/lmsforge/packlint/internal/domain"
)

// Cmi5Engine returns the rule engine for cmi5 course structures.
func Cmi5Engine() *Engine[domain.Cmi5Manifest] {
	return NewEngine(
		Rule[domain.Cmi5Manifest]{Name: "course-present", Check: checkCmi5Course},
		Rule[domain.Cmi5Manifest]{Name: "course-title-present", Check: checkCmi5Title},
		Rule[domain.Cmi5Manifest]{Name: "au-launch-urls", Check: checkCmi5LaunchURLs},
		Rule[domain.Cmi5Manifest]{Name: "unique-au-ids", Check: checkCmi5UniqueAUIDs},
		Rule[domain.Cmi5Manifest]{Name: "path-security", Check: checkCmi5PathSecurity},
	)
}

func checkCmi5Course(m *domain.Cmi5Manifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.CourseID == "" {
		result.AddError(CodeCmi5MissingCourse,
			"course structure declares no <course> element with an id",
			"coursestructure",
			"add a <course> element with an id attribute to cmi5.xml")
	}
	return result
}

func checkCmi5Title(m *domain.Cmi5Manifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.Title == "" {
		result.AddError(CodeCmi5MissingTitle,
			"course declares no title",
			"coursestructure/course",
			"add a <title> with at least one <langstring> to the course element")
	}
	return result
}

func checkCmi5LaunchURLs(m *domain.Cmi5Manifest) domain.ValidationResult {
	var result domain.ValidationResult
	if len(m.AUs) == 0 {
		result.AddError(CodeCmi5MissingLaunchURL,
			"course structure declares no assignable units",
			"coursestructure",
			"add at least one <au> element with a <url>")
		return result
	}
	for i := range m.AUs {
		au := &m.AUs[i]
		if au.URL == "" {
			result.AddError(CodeCmi5MissingLaunchURL,
				fmt.Sprintf("assignable unit %q declares no launch url", au.ID),
				cmi5AULocation(au),
				"add a <url> element to the assignable unit")
		}
	}
	return result
}

func checkCmi5UniqueAUIDs(m *domain.Cmi5Manifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.AUs {
		au := &m.AUs[i]
		registry.Record(au.ID, cmi5AULocation(au))
	}
	return duplicateIssues(registry, CodeDuplicateIdentifier, "assignable unit")
}

func checkCmi5PathSecurity(m *domain.Cmi5Manifest) domain.ValidationResult {
	var result domain.ValidationResult
	var paths []locatedPath
	for i := range m.AUs {
		au := &m.AUs[i]
		if au.URL != "" {
			paths = append(paths, locatedPath{path: au.URL, location: cmi5AULocation(au)})
		}
	}
	checkPaths(&result, paths)
	return result
}

func cmi5AULocation(au *domain.Cmi5AU) string {
	return fmt.Sprintf("coursestructure/au[@id='%s']", au.ID)
}
