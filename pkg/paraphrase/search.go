package paraphrase

import (
	"slices"

	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// Predicate decides whether a node qualifies for reordering.
type Predicate func(n *syntax.Tree) bool

// FindQualifying returns the positions, relative to root, of every node that
// satisfies pred, in pre-order.
//
// Nodes of height 2 or less (preterminals and tokens) are neither tested nor
// descended into. The walk does continue below a qualifying node, so the
// result can contain a position and one of its descendants.
func FindQualifying(root *syntax.Tree, pred Predicate) []syntax.Position {
	var found []syntax.Position
	root.Walk(func(n *syntax.Tree, pos syntax.Position) bool {
		if n.Height() <= 2 {
			return false
		}
		if pred(n) {
			found = append(found, pos.Clone())
		}
		return true
	})
	return found
}

// ChildLabelsIn returns a predicate accepting nodes labelled label whose
// children all carry one of the allowed labels. Tokens have no label and never
// match, so a node with a token child is rejected.
func ChildLabelsIn(label string, allowed ...string) Predicate {
	return func(n *syntax.Tree) bool {
		if n.IsToken() || n.Label != label {
			return false
		}
		for _, l := range n.ChildLabels() {
			if l == "" || !slices.Contains(allowed, l) {
				return false
			}
		}
		return true
	}
}

// NounPhraseCoordination accepts noun phrases made only of noun phrases,
// coordinators and commas, e.g. "the cat, a dog and the hen".
var NounPhraseCoordination = ChildLabelsIn("NP", "NP", "CC", ",")
