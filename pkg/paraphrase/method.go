package paraphrase

import (
	"context"
	"fmt"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/perm"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// Method is a supported transformation. The set of methods is closed; new
// methods are added here, not registered at runtime.
type Method int

const (
	// MethodNounPhrases reorders the conjuncts of coordinated noun phrases.
	MethodNounPhrases Method = iota + 1
)

// methodNames maps every accepted name to its method. The first entry per
// method is its canonical name. Matching is exact.
var methodNames = []struct {
	name   string
	method Method
}{
	{"noun phrases", MethodNounPhrases},
	{"Noun phrases", MethodNounPhrases},
}

// Methods returns all supported methods.
func Methods() []Method {
	return []Method{MethodNounPhrases}
}

// ParseMethod resolves a method name. Unknown names yield an
// *errors.UnknownMethodError carrying the name.
func ParseMethod(name string) (Method, error) {
	for _, m := range methodNames {
		if m.name == name {
			return m.method, nil
		}
	}
	return 0, &perrors.UnknownMethodError{Method: name}
}

// String returns the canonical method name.
func (m Method) String() string {
	for _, n := range methodNames {
		if n.method == m {
			return n.name
		}
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Aliases returns the names other than the canonical one that resolve to m.
func (m Method) Aliases() []string {
	var out []string
	canonical := m.String()
	for _, n := range methodNames {
		if n.method == m && n.name != canonical {
			out = append(out, n.name)
		}
	}
	return out
}

// Description is a one-line summary of what m rewrites.
func (m Method) Description() string {
	switch m {
	case MethodNounPhrases:
		return "reorder the conjuncts of coordinated noun phrases"
	}
	return ""
}

// rule describes which nodes a method reorders and which of their children
// move.
type rule struct {
	qualifies Predicate
	movable   string
}

func (m Method) rule() rule {
	switch m {
	case MethodNounPhrases:
		return rule{qualifies: NounPhraseCoordination, movable: "NP"}
	}
	panic(fmt.Sprintf("paraphrase: no rule for %v", m))
}

// Count returns how many trees Apply would produce for tree under policy,
// without building them. The count saturates at math.MaxInt.
func (m Method) Count(tree *syntax.Tree, policy NestedPolicy) (int, error) {
	r := m.rule()
	positions, err := r.targets(tree, policy)
	if err != nil {
		return 0, err
	}
	total := 1
	for _, pos := range positions {
		n, _ := tree.At(pos)
		total = perm.MulSaturating(total, r.count(n, policy))
	}
	return total, nil
}

// Apply returns every paraphrase of tree produced by m. A tree without
// qualifying nodes yields a single copy of itself.
func (m Method) Apply(tree *syntax.Tree, policy NestedPolicy) ([]*syntax.Tree, error) {
	return m.apply(context.Background(), tree, policy)
}

func (m Method) apply(ctx context.Context, tree *syntax.Tree, policy NestedPolicy) ([]*syntax.Tree, error) {
	r := m.rule()
	positions, err := r.targets(tree, policy)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return []*syntax.Tree{tree.Copy()}, nil
	}

	sets := make([][]*syntax.Tree, len(positions))
	for i, pos := range positions {
		n, err := tree.At(pos)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "resolve %v", pos)
		}
		if sets[i], err = r.variants(ctx, n, policy); err != nil {
			return nil, err
		}
	}
	return assemble(ctx, tree, positions, sets)
}

// targets returns the positions to splice for tree under policy.
func (r rule) targets(tree *syntax.Tree, policy NestedPolicy) ([]syntax.Position, error) {
	positions := FindQualifying(tree, r.qualifies)
	switch policy {
	case NestedReject:
		if outer, inner, ok := FindNested(positions); ok {
			return nil, ambiguityError(outer, inner)
		}
		return positions, nil
	case NestedOutermost, NestedCompose:
		return Outermost(positions), nil
	}
	return nil, perrors.New(perrors.ErrCodeInvalidInput, "unsupported nested policy %v", policy)
}

// inner returns the outermost qualifying descendants of n, relative to n.
func (r rule) inner(n *syntax.Tree) []syntax.Position {
	var below []syntax.Position
	for _, p := range FindQualifying(n, r.qualifies) {
		if len(p) > 0 {
			below = append(below, p)
		}
	}
	return Outermost(below)
}

// variants returns the permutation set of the qualifying node n.
func (r rule) variants(ctx context.Context, n *syntax.Tree, policy NestedPolicy) ([]*syntax.Tree, error) {
	if policy != NestedCompose {
		return PermuteChildren(n, r.movable), nil
	}

	positions := r.inner(n)
	sets := make([][]*syntax.Tree, len(positions))
	for i, pos := range positions {
		c, _ := n.At(pos)
		var err error
		if sets[i], err = r.variants(ctx, c, policy); err != nil {
			return nil, err
		}
	}
	bases, err := assemble(ctx, n, positions, sets)
	if err != nil {
		return nil, err
	}

	var out []*syntax.Tree
	for _, b := range bases {
		out = append(out, PermuteChildren(b, r.movable)...)
	}
	return out, nil
}

// count returns len(r.variants(n, policy)) without building the variants.
func (r rule) count(n *syntax.Tree, policy NestedPolicy) int {
	total := perm.CheckedFactorial(MovableCount(n, r.movable))
	if policy != NestedCompose {
		return total
	}
	for _, pos := range r.inner(n) {
		c, _ := n.At(pos)
		total = perm.MulSaturating(total, r.count(c, policy))
	}
	return total
}
