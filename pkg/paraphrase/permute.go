package paraphrase

import (
	"github.com/matzehuels/paraphraser/pkg/perm"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// MovableCount returns the number of children of node labelled label.
func MovableCount(node *syntax.Tree, label string) int {
	n := 0
	for i := 0; i < node.Len(); i++ {
		if c := node.Child(i); !c.IsToken() && c.Label == label {
			n++
		}
	}
	return n
}

// PermuteChildren returns every reordering of node's children labelled label.
//
// Children with another label stay in their slot; the slots held by movable
// children are refilled left to right with each permutation of them. Results
// follow the lexicographic order of the permutations, so the first result
// always equals node. With k movable children there are exactly k! results;
// k of 0 or 1 yields a single copy.
//
// Every result is a detached deep copy. node is not modified.
func PermuteChildren(node *syntax.Tree, label string) []*syntax.Tree {
	children := node.Children()
	var movable []int
	for i, c := range children {
		if !c.IsToken() && c.Label == label {
			movable = append(movable, i)
		}
	}

	perms := perm.Lexicographic(len(movable), 0)
	result := make([]*syntax.Tree, 0, len(perms))
	for _, p := range perms {
		order := make([]*syntax.Tree, len(children))
		copy(order, children)
		for slot, from := range p {
			order[movable[slot]] = children[movable[from]]
		}
		for i, c := range order {
			order[i] = c.Copy()
		}
		result = append(result, syntax.New(node.Label, order...))
	}
	return result
}
