package validation

import (
	"fmt"
	"strings"

	"github.com/lmsforge/packlint/internal/domain"
)

// ScormEngine returns the rule engine shared by SCORM 1.2 and SCORM 2004
// manifests. Issue codes keep their historical SCORM12_ prefix for both
// versions; the codes are a compatibility contract.
func ScormEngine() *Engine[domain.ScormManifest] {
	return NewEngine(
		Rule[domain.ScormManifest]{Name: "manifest-identifier", Check: checkManifestIdentifier},
		Rule[domain.ScormManifest]{Name: "organizations-present", Check: checkOrganizationsPresent},
		Rule[domain.ScormManifest]{Name: "at-least-one-organization", Check: checkAtLeastOneOrganization},
		Rule[domain.ScormManifest]{Name: "default-organization-resolves", Check: checkDefaultOrganization},
		Rule[domain.ScormManifest]{Name: "unique-organization-ids", Check: checkUniqueOrganizationIDs},
		Rule[domain.ScormManifest]{Name: "unique-item-ids", Check: checkUniqueItemIDs},
		Rule[domain.ScormManifest]{Name: "item-references-resolve", Check: checkItemReferences},
		Rule[domain.ScormManifest]{Name: "resources-present", Check: checkResourcesPresent},
		Rule[domain.ScormManifest]{Name: "unique-resource-ids", Check: checkUniqueResourceIDs},
		Rule[domain.ScormManifest]{Name: "launch-urls-declared", Check: checkLaunchURLs},
		Rule[domain.ScormManifest]{Name: "launchable-resource-exists", Check: checkLaunchableResourceExists},
		Rule[domain.ScormManifest]{Name: "package-wide-unique-ids", Check: checkPackageWideIdentifiers},
		Rule[domain.ScormManifest]{Name: "path-security", Check: checkScormPathSecurity},
		Rule[domain.ScormManifest]{Name: "orphaned-resources", Check: checkOrphanedResources},
	)
}

func checkManifestIdentifier(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.Identifier == "" {
		result.AddError(CodeScorm12MissingManifestID,
			"manifest identifier is missing or empty",
			"manifest",
			"add an identifier attribute to the <manifest> element")
	}
	return result
}

func checkOrganizationsPresent(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if !m.Organizations.Present {
		result.AddError(CodeScorm12MissingOrganizations,
			"manifest has no <organizations> element",
			"manifest",
			"add an <organizations> element with at least one <organization>")
	}
	return result
}

func checkAtLeastOneOrganization(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if m.Organizations.Present && len(m.Organizations.Organizations) == 0 {
		result.AddError(CodeScorm12NoOrganizations,
			"<organizations> element declares no organizations",
			"organizations",
			"declare at least one <organization> element")
	}
	return result
}

func checkDefaultOrganization(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	def := m.Organizations.Default
	if def == nil {
		return result
	}
	if *def == "" {
		result.AddError(CodeScorm12InvalidDefaultOrg,
			"organizations default attribute is declared but empty",
			"organizations",
			"set the default attribute to the identifier of a declared organization")
		return result
	}
	resolver := NewReferenceResolver(m)
	if !resolver.ResolvesOrganization(*def) {
		result.AddError(CodeScorm12InvalidDefaultOrg,
			fmt.Sprintf("default organization %q does not match any declared organization", *def),
			"organizations",
			"set the default attribute to the identifier of a declared organization")
	}
	return result
}

func checkUniqueOrganizationIDs(m *domain.ScormManifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		registry.Record(org.Identifier, orgLocation(org))
	}
	return duplicateIssues(registry, CodeScorm12DuplicateOrgID, "organization")
}

func checkUniqueItemIDs(m *domain.ScormManifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		walkItems(org, func(item *domain.Item, location string) {
			registry.Record(item.Identifier, location)
		})
	}
	return duplicateIssues(registry, CodeScorm12DuplicateItemID, "item")
}

func checkItemReferences(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	resolver := NewReferenceResolver(m)
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		walkItems(org, func(item *domain.Item, location string) {
			ref := item.IdentifierRef
			if ref == nil {
				return // container item
			}
			if *ref == "" {
				result.AddError(CodeScorm12MissingResourceRef,
					fmt.Sprintf("item %q declares an empty identifierref", item.Identifier),
					location,
					"set identifierref to the identifier of a declared resource, or remove the attribute for container items")
				return
			}
			if !resolver.ResolvesResource(*ref) {
				result.AddError(CodeScorm12MissingResourceRef,
					fmt.Sprintf("item %q references undeclared resource %q", item.Identifier, *ref),
					location,
					"declare a <resource> with the referenced identifier or fix the identifierref")
			}
		})
	}
	return result
}

func checkResourcesPresent(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if !m.Resources.Present {
		result.AddError(CodeScorm12MissingResources,
			"manifest has no <resources> element",
			"manifest",
			"add a <resources> element declaring the package's content files")
	}
	return result
}

func checkUniqueResourceIDs(m *domain.ScormManifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		registry.Record(res.Identifier, resourceLocation(res))
	}
	return duplicateIssues(registry, CodeScorm12DuplicateResourceID, "resource")
}

func checkLaunchURLs(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if res.Href != nil && *res.Href == "" {
			result.AddError(CodeScorm12MissingLaunchURL,
				fmt.Sprintf("resource %q declares an empty href", res.Identifier),
				resourceLocation(res),
				"set href to the resource's launch file, or remove the attribute for non-launchable resources")
		}
	}
	return result
}

func checkLaunchableResourceExists(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	if !m.Resources.Present {
		return result
	}
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if res.Href != nil && *res.Href != "" {
			return result
		}
	}
	result.AddError(CodeScorm12NoLaunchableResources,
		"package declares no launchable resource (no resource carries a non-empty href)",
		"resources",
		"declare at least one resource with an href pointing at its launch file")
	return result
}

// checkPackageWideIdentifiers flags identifiers reused across categories
// (manifest, organizations, items, resources). Same-category duplicates
// are already reported by the category-specific rules and are not
// repeated here.
func checkPackageWideIdentifiers(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	registry := NewIdentifierRegistry()
	registry.RecordManifest(m)
	for _, dup := range registry.Duplicates() {
		if !spansCategories(dup.Locations) {
			continue
		}
		result.AddError(CodeDuplicateIdentifier,
			fmt.Sprintf("identifier %q is declared %d times: %s",
				dup.Identifier, len(dup.Locations), strings.Join(dup.Locations, ", ")),
			dup.Locations[0],
			"identifiers share one package-wide namespace, rename the duplicates")
	}
	return result
}

func checkScormPathSecurity(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	var paths []locatedPath
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		location := resourceLocation(res)
		if res.Href != nil && *res.Href != "" {
			paths = append(paths, locatedPath{path: *res.Href, location: location})
		}
		for _, file := range res.Files {
			if file != "" {
				paths = append(paths, locatedPath{path: file, location: location})
			}
		}
	}
	checkPaths(&result, paths)
	return result
}

func checkOrphanedResources(m *domain.ScormManifest) domain.ValidationResult {
	var result domain.ValidationResult
	referenced := make(map[string]bool)
	for i := range m.Organizations.Organizations {
		org := &m.Organizations.Organizations[i]
		walkItems(org, func(item *domain.Item, _ string) {
			if item.IdentifierRef != nil && *item.IdentifierRef != "" {
				referenced[*item.IdentifierRef] = true
			}
		})
	}
	for i := range m.Resources.Resources {
		res := &m.Resources.Resources[i]
		if !referenced[res.Identifier] {
			result.AddWarning(CodeOrphanedResource,
				fmt.Sprintf("resource %q is not referenced by any item", res.Identifier),
				resourceLocation(res),
				"reference the resource from an item or remove it from the manifest")
		}
	}
	return result
}

// duplicateIssues converts a registry's duplicates into one Error issue
// per repeated identifier, reporting the occurrence count and every
// location.
func duplicateIssues(registry *IdentifierRegistry, code, kind string) domain.ValidationResult {
	var result domain.ValidationResult
	for _, dup := range registry.Duplicates() {
		result.AddError(code,
			fmt.Sprintf("%s identifier %q is declared %d times: %s",
				kind, dup.Identifier, len(dup.Locations), strings.Join(dup.Locations, ", ")),
			dup.Locations[0],
			fmt.Sprintf("rename the duplicate %s identifiers so each is unique", kind))
	}
	return result
}

// spansCategories reports whether locations cover more than one manifest
// category (manifest / organizations / items / resources).
func spansCategories(locations []string) bool {
	categories := make(map[string]bool, 2)
	for _, loc := range locations {
		categories[locationCategory(loc)] = true
	}
	return len(categories) > 1
}

func locationCategory(location string) string {
	switch {
	case location == "manifest":
		return "manifest"
	case strings.Contains(location, "/item["):
		return "item"
	case strings.HasPrefix(location, "resources/"):
		return "resource"
	default:
		return "organization"
	}
}
