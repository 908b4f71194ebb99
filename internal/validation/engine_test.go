package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/packlint/internal/domain"
)

type fakeManifest struct{ fail bool }

func failingRule(name, code string) Rule[fakeManifest] {
	return Rule[fakeManifest]{
		Name: name,
		Check: func(m *fakeManifest) domain.ValidationResult {
			var result domain.ValidationResult
			if m.fail {
				result.AddError(code, "check failed", name, "")
			}
			return result
		},
	}
}

func TestEngine_RunsRulesInDeclarationOrder(t *testing.T) {
	engine := NewEngine(
		failingRule("first", "CODE_A"),
		failingRule("second", "CODE_B"),
		failingRule("third", "CODE_C"),
	)

	result := engine.Validate(&fakeManifest{fail: true})
	require.Len(t, result.Issues, 3)
	assert.Equal(t, "CODE_A", result.Issues[0].Code)
	assert.Equal(t, "CODE_B", result.Issues[1].Code)
	assert.Equal(t, "CODE_C", result.Issues[2].Code)
}

func TestEngine_PassingRulesProduceNoIssues(t *testing.T) {
	engine := NewEngine(failingRule("only", "CODE_A"))

	result := engine.Validate(&fakeManifest{})
	assert.Empty(t, result.Issues)
	assert.True(t, result.IsValid())
}

func TestEngine_NilManifestPanics(t *testing.T) {
	engine := NewEngine(failingRule("only", "CODE_A"))
	assert.PanicsWithValue(t, "validation: nil manifest passed to engine", func() {
		engine.Validate(nil)
	})
}
