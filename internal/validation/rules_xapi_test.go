package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/packlint/internal/domain"
)

func validXapiManifest() *domain.XapiManifest {
	return &domain.XapiManifest{
		Activities: []domain.XapiActivity{
			{ID: "http://example.com/activities/course", Type: "http://adlnet.gov/expapi/activities/course", Name: "Course", Launch: "index.html"},
		},
	}
}

func TestXapiEngine_ValidManifest(t *testing.T) {
	result := XapiEngine().Validate(validXapiManifest())
	assert.Empty(t, result.Issues)
}

func TestXapiEngine_NoLaunchURL(t *testing.T) {
	m := validXapiManifest()
	m.Activities[0].Launch = ""

	result := XapiEngine().Validate(m)
	assert.Len(t, issuesWithCode(result, CodeXapiMissingLaunchURL), 1)
}

func TestXapiEngine_NoActivities(t *testing.T) {
	result := XapiEngine().Validate(&domain.XapiManifest{})
	assert.Len(t, issuesWithCode(result, CodeXapiMissingLaunchURL), 1)
}

func TestXapiEngine_DuplicateActivityIDs(t *testing.T) {
	m := validXapiManifest()
	m.Activities = append(m.Activities, m.Activities[0])

	result := XapiEngine().Validate(m)
	issues := issuesWithCode(result, CodeDuplicateIdentifier)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "http://example.com/activities/course")
}

func TestXapiEngine_ActivityIDsAreNotPathChecked(t *testing.T) {
	// Activity ids are IRIs; only the launch href is subject to path rules.
	m := validXapiManifest()
	result := XapiEngine().Validate(m)
	assert.Empty(t, issuesWithCode(result, CodeUnsafeExternalURL))
}

func TestXapiEngine_LaunchPathSecurity(t *testing.T) {
	m := validXapiManifest()
	m.Activities[0].Launch = "//cdn.example.com/index.html"

	result := XapiEngine().Validate(m)
	assert.Len(t, issuesWithCode(result, CodeUnsafeExternalURL), 1)
}
