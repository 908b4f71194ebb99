package validation

import (
	"fmt"

	"github.com/lmsforge/packlint/internal/aicc"
	"github.com/lmsforge/packlint/internal/domain"
)

// AiccEngine returns the rule engine for AICC course description tables.
func AiccEngine() *Engine[domain.AiccManifest] {
	return NewEngine(
		Rule[domain.AiccManifest]{Name: "course-info-present", Check: checkAiccCourse},
		Rule[domain.AiccManifest]{Name: "course-title-present", Check: checkAiccTitle},
		Rule[domain.AiccManifest]{Name: "au-launch-files", Check: checkAiccLaunchFiles},
		Rule[domain.AiccManifest]{Name: "unique-au-ids", Check: checkAiccUniqueAUIDs},
		Rule[domain.AiccManifest]{Name: "prerequisite-references", Check: checkAiccPrerequisiteRefs},
		Rule[domain.AiccManifest]{Name: "path-security", Check: checkAiccPathSecurity},
	)
}

func checkAiccCourse(m *domain.AiccManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.Course.ID == "" {
		result.AddError(CodeAiccMissingCourse,
			"course file declares no Course_ID",
			"course",
			"add a Course_ID entry to the [Course] block of the .crs file")
	}
	return result
}

func checkAiccTitle(m *domain.AiccManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.Course.Title == "" {
		result.AddError(CodeAiccMissingTitle,
			"course file declares no Course_Title",
			"course",
			"add a Course_Title entry to the [Course] block of the .crs file")
	}
	return result
}

func checkAiccLaunchFiles(m *domain.AiccManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if len(m.AssignableUnits) == 0 {
		result.AddError(CodeAiccMissingLaunchURL,
			"course declares no assignable units",
			"assignableunits",
			"add at least one assignable unit row to the .au file")
		return result
	}
	for i := range m.AssignableUnits {
		au := &m.AssignableUnits[i]
		if au.FileName == "" {
			result.AddError(CodeAiccMissingLaunchURL,
				fmt.Sprintf("assignable unit %q declares no launch file", au.SystemID),
				auLocation(au),
				"set the File_Name column to the unit's launch file")
		}
	}
	return result
}

func checkAiccUniqueAUIDs(m *domain.AiccManifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.AssignableUnits {
		au := &m.AssignableUnits[i]
		registry.Record(au.SystemID, auLocation(au))
	}
	return duplicateIssues(registry, CodeDuplicateIdentifier, "assignable unit")
}

// checkAiccPrerequisiteRefs verifies the dependency graph: every unit a
// prerequisite expression references must be a declared assignable unit.
// Identifier comparison is exact.
func checkAiccPrerequisiteRefs(m *domain.AiccManifest) domain.ValidationResult {
	var result domain.ValidationResult
	declared := make(map[string]bool, len(m.AssignableUnits))
	for i := range m.AssignableUnits {
		declared[m.AssignableUnits[i].SystemID] = true
	}
	graph := aicc.BuildGraph(m.Prerequisites)
	for _, p := range m.Prerequisites {
		for _, dep := range graph[p.AssignableUnitID] {
			if !declared[dep] {
				result.AddError(CodeAiccUnknownPrerequisiteUnit,
					fmt.Sprintf("prerequisite of %q references undeclared assignable unit %q", p.AssignableUnitID, dep),
					fmt.Sprintf("prerequisites[@structure_element='%s']", p.AssignableUnitID),
					"reference only System_IDs declared in the .au file")
			}
		}
	}
	return result
}

func checkAiccPathSecurity(m *domain.AiccManifest) domain.ValidationResult {
	var result domain.ValidationResult
	var paths []locatedPath
	for i := range m.AssignableUnits {
		au := &m.AssignableUnits[i]
		if au.FileName != "" {
			paths = append(paths, locatedPath{path: au.FileName, location: auLocation(au)})
		}
	}
	checkPaths(&result, paths)
	return result
}

func auLocation(au *domain.AssignableUnit) string {
	return fmt.Sprintf("assignableunits/au[@system_id='%s']", au.SystemID)
}
