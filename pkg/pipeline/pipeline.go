// Package pipeline runs paraphrase requests end to end for the CLI and the
// HTTP API.
//
// A request goes through three stages:
//
//  1. Parse: validate and parse the bracketed tree string
//  2. Transform: expand the tree with the requested methods, or load the
//     expansion from the cache
//  3. Sample: draw the requested number of trees from the expansion
//
// The full expansion is cached once per tree and option set; sampling always
// happens per request so different limits and seeds share one cache entry.
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Tree:  "(S (NP (NP (DT the) (NN cat)) (CC and) (NP (DT the) (NN dog))) (VP (VBD slept)))",
//	    Limit: 1,
//	})
package pipeline

import (
	"time"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
)

// DefaultMaxCombinations is the combination cap applied when Options leaves
// MaxCombinations at zero.
const DefaultMaxCombinations = 100_000

// DefaultMethods is used when Options names no method.
var DefaultMethods = []string{paraphrase.MethodNounPhrases.String()}

// Options describes one paraphrase request.
type Options struct {
	// Tree is the bracketed syntax tree to paraphrase.
	Tree string `json:"tree"`

	// Methods are applied in order. Empty selects DefaultMethods.
	Methods []string `json:"methods,omitempty"`

	// Limit is the number of trees to return. 0 returns all of them.
	Limit int `json:"limit,omitempty"`

	// Seed makes sampling reproducible. 0 picks a random seed.
	Seed uint64 `json:"seed,omitempty"`

	// MaxCombinations caps the expansion size. 0 selects
	// DefaultMaxCombinations; a negative value removes the cap.
	MaxCombinations int `json:"max_combinations,omitempty"`

	// Nested selects how nested matches are handled.
	Nested paraphrase.NestedPolicy `json:"-"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	validated bool
}

// Result is the outcome of a pipeline run.
type Result struct {
	// Trees are the sampled paraphrases in bracketed form.
	Trees []string

	// Total is the size of the full expansion before sampling.
	Total int

	// TreeHash identifies the canonical form of the input tree.
	TreeHash string

	// CacheHit reports whether the expansion came from the cache.
	CacheHit bool

	Stats Stats
}

// Stats contains timing information for a run.
type Stats struct {
	ParseTime     time.Duration
	TransformTime time.Duration
}

// ValidateAndSetDefaults checks the request and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := perrors.ValidateTreeString(o.Tree); err != nil {
		return err
	}
	if err := perrors.ValidateLimit(o.Limit); err != nil {
		return err
	}
	if len(o.Methods) == 0 {
		o.Methods = append([]string(nil), DefaultMethods...)
	}
	if err := perrors.ValidateMethodNames(o.Methods); err != nil {
		return err
	}
	if o.MaxCombinations == 0 {
		o.MaxCombinations = DefaultMaxCombinations
	}
	o.validated = true
	return nil
}

// combinationCap converts MaxCombinations to the transformer's convention,
// where 0 means unbounded.
func (o *Options) combinationCap() int {
	if o.MaxCombinations < 0 {
		return 0
	}
	return o.MaxCombinations
}

// canonicalMethods resolves every method name and returns the canonical
// names, so aliases share cache entries.
func (o *Options) canonicalMethods() ([]string, error) {
	out := make([]string, len(o.Methods))
	for i, name := range o.Methods {
		m, err := paraphrase.ParseMethod(name)
		if err != nil {
			return nil, err
		}
		out[i] = m.String()
	}
	return out, nil
}
