package validation

import (
	"fmt"

	"github.com/lmsforge/packlint/internal/domain"
)

// XapiEngine returns the rule engine for xAPI/TinCan activity manifests.
func XapiEngine() *Engine[domain.XapiManifest] {
	return NewEngine(
		Rule[domain.XapiManifest]{Name: "launch-url-present", Check: checkXapiLaunchURL},
		Rule[domain.XapiManifest]{Name: "unique-activity-ids", Check: checkXapiUniqueActivityIDs},
		Rule[domain.XapiManifest]{Name: "path-security", Check: checkXapiPathSecurity},
	)
}

func checkXapiLaunchURL(m *domain.XapiManifest) domain.ValidationResult {
	var result domain.ValidationResult
	for i := range m.Activities {
		if m.Activities[i].Launch != "" {
			return result
		}
	}
	result.AddError(CodeXapiMissingLaunchURL,
		"no activity declares a launch href",
		"tincan/activities",
		"add a <launch> element to the launchable activity")
	return result
}

func checkXapiUniqueActivityIDs(m *domain.XapiManifest) domain.ValidationResult {
	registry := NewIdentifierRegistry()
	for i := range m.Activities {
		act := &m.Activities[i]
		registry.Record(act.ID, xapiActivityLocation(act))
	}
	return duplicateIssues(registry, CodeDuplicateIdentifier, "activity")
}

// checkXapiPathSecurity checks launch hrefs only: activity ids are IRIs by
// definition and legitimately carry schemes.
func checkXapiPathSecurity(m *domain.XapiManifest) domain.ValidationResult {
	var result domain.ValidationResult
	var paths []locatedPath
	for i := range m.Activities {
		act := &m.Activities[i]
		if act.Launch != "" {
			paths = append(paths, locatedPath{path: act.Launch, location: xapiActivityLocation(act)})
		}
	}
	checkPaths(&result, paths)
	return result
}

func xapiActivityLocation(act *domain.XapiActivity) string {
	return fmt.Sprintf("tincan/activities/activity[@id='%s']", act.ID)
}
