package domain

// AiccPrerequisite is the parsed prerequisite declaration of one assignable
// unit. Tokens preserve scan order; PostfixTokens hold the same expression
// in reverse-polish form. A unit with no prerequisite expression has a nil
// RawExpression and empty token slices.
type AiccPrerequisite struct {
	AssignableUnitID string
	RawExpression    *string
	Mandatory        bool
	Tokens           []string
	PostfixTokens    []string
}

// DependencyGraph maps an assignable-unit id to the ordered list of unit ids
// it depends on, derived from prerequisite tokens with operators and
// parentheses filtered out. Order is first-seen, deduplicated.
type DependencyGraph map[string][]string
