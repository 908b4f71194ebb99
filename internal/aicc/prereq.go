// Package aicc parses AICC prerequisite expressions: infix boolean
// expressions over assignable-unit identifiers with AND/OR operators and
// parentheses. Expressions are tokenized, converted to postfix form, and
// reduced to a dependency graph between assignable units.
package aicc

import (
	"errors"
	"strings"

	"github.com/lmsforge/packlint/internal/domain"
)

// ErrUnbalancedParens indicates mismatched parentheses in a prerequisite
// expression. Unbalanced input is a parse failure, never silently
// truncated output.
var ErrUnbalancedParens = errors.New("unbalanced parentheses in prerequisite expression")

// Tokenize splits expr on whitespace and parenthesis boundaries, keeping
// parentheses and operator keywords as distinct tokens. An empty or
// blank expression yields no tokens.
func Tokenize(expr string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range expr {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// ToPostfix converts an infix token sequence to postfix (reverse-polish)
// form with the shunting-yard algorithm. AND and OR share one precedence
// level and associate left, so scan order is preserved among them.
func ToPostfix(tokens []string) ([]string, error) {
	var output []string
	var stack []string

	for _, tok := range tokens {
		switch {
		case tok == "(":
			stack = append(stack, tok)
		case tok == ")":
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == "(" {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, ErrUnbalancedParens
			}
		case isOperator(tok):
			// Equal precedence, left-associative: pending operators
			// drain before the new one is pushed.
			for len(stack) > 0 && isOperator(stack[len(stack)-1]) {
				output = append(output, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		default:
			output = append(output, tok)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == "(" {
			return nil, ErrUnbalancedParens
		}
		output = append(output, top)
	}
	return output, nil
}

// ParseExpression tokenizes and postfix-converts a raw prerequisite
// expression. Empty input yields empty token slices and no error.
func ParseExpression(expr string) (tokens, postfix []string, err error) {
	tokens = Tokenize(expr)
	postfix, err = ToPostfix(tokens)
	if err != nil {
		return nil, nil, err
	}
	return tokens, postfix, nil
}

// Dependencies extracts the assignable-unit ids referenced by a token
// sequence: operators and parentheses are filtered out, remaining operands
// are kept in first-seen order and deduplicated.
func Dependencies(tokens []string) []string {
	var deps []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if tok == "(" || tok == ")" || isOperator(tok) {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		deps = append(deps, tok)
	}
	return deps
}

// BuildGraph derives the dependency graph of a set of parsed prerequisites:
// each assignable unit maps to the units its expression references.
func BuildGraph(prereqs []domain.AiccPrerequisite) domain.DependencyGraph {
	graph := make(domain.DependencyGraph, len(prereqs))
	for _, p := range prereqs {
		if deps := Dependencies(p.Tokens); len(deps) > 0 {
			graph[p.AssignableUnitID] = deps
		}
	}
	return graph
}

func isOperator(tok string) bool {
	return strings.EqualFold(tok, "AND") || strings.EqualFold(tok, "OR")
}
