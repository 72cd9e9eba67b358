package paraphrase

import (
	"fmt"
	"strings"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// NestedPolicy controls how a transformation treats a qualifying node that
// lies inside another qualifying node.
type NestedPolicy int

const (
	// NestedReject fails with STRUCTURAL_AMBIGUITY when nested matches exist.
	NestedReject NestedPolicy = iota
	// NestedOutermost ignores matches inside another match. Inner nodes are
	// carried along verbatim when the outer node is reordered.
	NestedOutermost
	// NestedCompose reorders inner matches too. Each outer node's permutation
	// set is built from every variant of its inner matches, so the output
	// contains every combination of inner and outer orderings.
	NestedCompose
)

var nestedPolicyNames = [...]string{
	NestedReject:    "reject",
	NestedOutermost: "outermost",
	NestedCompose:   "compose",
}

// String returns the policy name used in configuration files and flags.
func (p NestedPolicy) String() string {
	if p < 0 || int(p) >= len(nestedPolicyNames) {
		return fmt.Sprintf("NestedPolicy(%d)", int(p))
	}
	return nestedPolicyNames[p]
}

// ParseNestedPolicy parses a policy name. The empty string selects
// NestedReject.
func ParseNestedPolicy(s string) (NestedPolicy, error) {
	if s == "" {
		return NestedReject, nil
	}
	for p, name := range nestedPolicyNames {
		if name == s {
			return NestedPolicy(p), nil
		}
	}
	return 0, perrors.New(perrors.ErrCodeInvalidInput,
		"unknown nested policy %q (want one of %s)", s, strings.Join(nestedPolicyNames[:], ", "))
}

// FindNested returns the first pair of positions in which outer is a proper
// ancestor of inner. positions must be in pre-order, as returned by
// FindQualifying.
func FindNested(positions []syntax.Position) (outer, inner syntax.Position, ok bool) {
	for i, p := range positions {
		for _, q := range positions[i+1:] {
			if p.IsAncestorOf(q) {
				return p, q, true
			}
		}
	}
	return nil, nil, false
}

// Outermost drops every position that has an ancestor in positions.
// positions must be in pre-order.
func Outermost(positions []syntax.Position) []syntax.Position {
	var kept []syntax.Position
	for _, p := range positions {
		nested := false
		for _, k := range kept {
			if k.IsAncestorOf(p) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, p)
		}
	}
	return kept
}

func ambiguityError(outer, inner syntax.Position) error {
	return perrors.New(perrors.ErrCodeStructuralAmbiguity,
		"qualifying node at %v is nested inside qualifying node at %v", inner, outer)
}
