package paraphrase

import (
	"context"
	"math/rand/v2"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/perm"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// Options configures Transform and Expand.
// The zero value expands without a size cap, rejects nested matches and
// returns every result.
type Options struct {
	// Limit is the number of trees to sample from the result.
	// 0 returns all trees.
	Limit int

	// MaxCombinations caps the number of trees a transformation may produce.
	// The projected count is checked before any tree is built.
	// 0 disables the cap.
	MaxCombinations int

	// Nested selects how nested qualifying nodes are handled.
	Nested NestedPolicy

	// Rand is the source used for sampling. If nil, a generator seeded from
	// Seed is used, or a randomly seeded one if Seed is 0.
	Rand *rand.Rand

	// Seed seeds the sampling generator when Rand is nil.
	Seed uint64
}

// Transform applies the named methods in order to root and returns the
// resulting trees, sampled down to opts.Limit if it is positive.
//
// All names are resolved before any work is done; an unknown name fails with
// UNKNOWN_METHOD and no trees are returned. Each method is applied to every
// tree of the current working set and the outputs, in order, form the next
// working set. The working set starts as root alone.
//
// root is never modified.
func Transform(root *syntax.Tree, names []string, opts Options) ([]*syntax.Tree, error) {
	if err := perrors.ValidateLimit(opts.Limit); err != nil {
		return nil, err
	}
	trees, err := Expand(root, names, opts)
	if err != nil {
		return nil, err
	}
	if opts.Limit == 0 {
		return trees, nil
	}
	return Sample(trees, opts.Limit, opts.rng())
}

// Expand is Transform without sampling. opts.Limit is ignored.
func Expand(root *syntax.Tree, names []string, opts Options) ([]*syntax.Tree, error) {
	return ExpandContext(context.Background(), root, names, opts)
}

// ExpandContext is Expand with cancellation. ctx is checked between
// combinations; once it is done the context's error is returned and no trees.
func ExpandContext(ctx context.Context, root *syntax.Tree, names []string, opts Options) ([]*syntax.Tree, error) {
	methods := make([]Method, len(names))
	for i, name := range names {
		m, err := ParseMethod(name)
		if err != nil {
			return nil, err
		}
		methods[i] = m
	}
	if len(methods) == 0 {
		return []*syntax.Tree{root.Copy()}, nil
	}

	working := []*syntax.Tree{root}
	for _, m := range methods {
		if err := checkBudget(working, m, opts); err != nil {
			return nil, err
		}
		next := make([]*syntax.Tree, 0, len(working))
		for _, t := range working {
			out, err := m.apply(ctx, t, opts.Nested)
			if err != nil {
				return nil, err
			}
			next = append(next, out...)
		}
		working = next
	}
	return working, nil
}

// checkBudget fails if applying m to every tree in working would exceed
// opts.MaxCombinations.
func checkBudget(working []*syntax.Tree, m Method, opts Options) error {
	if opts.MaxCombinations <= 0 {
		return nil
	}
	total := 0
	for _, t := range working {
		n, err := m.Count(t, opts.Nested)
		if err != nil {
			return err
		}
		total = perm.AddSaturating(total, n)
		if total > opts.MaxCombinations {
			return perrors.New(perrors.ErrCodeTooManyCombinations,
				"%v would produce more than %d trees", m, opts.MaxCombinations)
		}
	}
	return nil
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return NewRand(o.Seed)
}

// NewRand returns a generator seeded with seed, or a randomly seeded one if
// seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Sample draws n distinct elements of items uniformly at random, without
// replacement, in draw order. n larger than len(items) fails with
// SAMPLE_SIZE_EXCEEDED; nothing is truncated. items is not modified.
func Sample[T any](items []T, n int, rng *rand.Rand) ([]T, error) {
	if err := perrors.ValidateLimit(n); err != nil {
		return nil, err
	}
	if n > len(items) {
		return nil, &perrors.SampleSizeError{Requested: n, Available: len(items)}
	}
	idx := perm.Seq(len(items))
	out := make([]T, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = items[idx[i]]
	}
	return out, nil
}
