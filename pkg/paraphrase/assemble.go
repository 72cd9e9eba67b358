package paraphrase

import (
	"context"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/perm"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// CountCombinations returns the product of sizes, saturating at math.MaxInt.
// The empty product is 1.
func CountCombinations(sizes []int) int {
	total := 1
	for _, s := range sizes {
		total = perm.MulSaturating(total, s)
	}
	return total
}

// Assemble builds one tree per combination of replacement subtrees.
//
// sets[i] lists the alternatives for the node at positions[i]. Each
// combination picks one alternative per position; the result for a
// combination is a deep copy of base in which every position has been replaced
// by a deep copy of its pick, in the order positions are given. The empty
// position replaces the root.
//
// Combinations are enumerated like a mixed-radix counter in which the first
// position varies fastest and the last varies slowest:
//
//	sets = [[a0 a1] [b0 b1]]  ->  (a0 b0) (a1 b0) (a0 b1) (a1 b1)
//
// Positions are resolved against the copy at the moment they are applied.
// Callers that pass a position together with one of its descendants must make
// sure the descendant is still valid after the ancestor was replaced.
//
// With no positions Assemble returns a single copy of base.
func Assemble(base *syntax.Tree, positions []syntax.Position, sets [][]*syntax.Tree) ([]*syntax.Tree, error) {
	return assemble(context.Background(), base, positions, sets)
}

func assemble(ctx context.Context, base *syntax.Tree, positions []syntax.Position, sets [][]*syntax.Tree) ([]*syntax.Tree, error) {
	if len(positions) != len(sets) {
		return nil, perrors.New(perrors.ErrCodeInternal, "assemble: %d positions but %d permutation sets", len(positions), len(sets))
	}
	sizes := make([]int, len(sets))
	for i, s := range sets {
		if len(s) == 0 {
			return nil, perrors.New(perrors.ErrCodeInternal, "assemble: empty permutation set for position %v", positions[i])
		}
		sizes[i] = len(s)
	}

	total := CountCombinations(sizes)
	result := make([]*syntax.Tree, 0, min(total, 1<<16))
	pick := make([]int, len(sets))
	for n := 0; n < total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tree, err := apply(base, positions, sets, pick)
		if err != nil {
			return nil, err
		}
		result = append(result, tree)
		advance(pick, sizes)
	}
	return result, nil
}

// advance increments the mixed-radix counter pick, first digit fastest.
func advance(pick, sizes []int) {
	for i := range pick {
		pick[i]++
		if pick[i] < sizes[i] {
			return
		}
		pick[i] = 0
	}
}

func apply(base *syntax.Tree, positions []syntax.Position, sets [][]*syntax.Tree, pick []int) (*syntax.Tree, error) {
	tree := base.Copy()
	for i, pos := range positions {
		replacement := sets[i][pick[i]].Copy()
		if len(pos) == 0 {
			tree = replacement
			continue
		}
		if _, err := tree.ReplaceAt(pos, replacement); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "assemble: replace %v", pos)
		}
	}
	return tree, nil
}
