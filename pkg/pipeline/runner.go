package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paraphraser/pkg/cache"
	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/observability"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// Runner executes paraphrase requests with caching.
//
// A Runner holds no per-request state; one Runner may serve concurrent
// requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of stored expansions.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLResult,
	}
}

// Execute parses opts.Tree, expands it and samples opts.Limit trees.
//
// Errors carry the codes of pkg/errors: INVALID_INPUT and INVALID_TREE for
// bad requests, UNKNOWN_METHOD, STRUCTURAL_AMBIGUITY,
// TOO_MANY_COMBINATIONS and SAMPLE_SIZE_EXCEEDED from the transformation.
// Cache failures are logged and otherwise ignored.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	methods, err := opts.canonicalMethods()
	if err != nil {
		return nil, err
	}

	result := &Result{}

	parseStart := time.Now()
	tree, err := syntax.Parse(opts.Tree)
	if err != nil {
		observability.Pipeline().OnParse(ctx, "", time.Since(parseStart), err)
		return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "invalid syntax tree: %v", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.TreeHash = cache.Hash([]byte(tree.String()))
	observability.Pipeline().OnParse(ctx, result.TreeHash, result.Stats.ParseTime, nil)

	key := r.Keyer.ResultKey(result.TreeHash, cache.ResultKeyOpts{
		Methods:         methods,
		Nested:          opts.Nested.String(),
		MaxCombinations: opts.combinationCap(),
	})

	transformStart := time.Now()
	all, hit := r.lookup(ctx, key, opts.Refresh)
	if !hit {
		trees, err := paraphrase.ExpandContext(ctx, tree, methods, paraphrase.Options{
			MaxCombinations: opts.combinationCap(),
			Nested:          opts.Nested,
		})
		if err != nil {
			observability.Pipeline().OnTransform(ctx, methods, 0, time.Since(transformStart), err)
			return nil, err
		}
		all = make([]string, len(trees))
		for i, t := range trees {
			all[i] = t.String()
		}
		r.store(ctx, key, all)
	}
	result.Stats.TransformTime = time.Since(transformStart)
	result.CacheHit = hit
	result.Total = len(all)
	observability.Pipeline().OnTransform(ctx, methods, result.Total, result.Stats.TransformTime, nil)

	r.Logger.Info("expanded tree",
		"hash", result.TreeHash[:12],
		"methods", methods,
		"total", result.Total,
		"cached", hit,
		"duration", result.Stats.TransformTime)

	if opts.Limit == 0 {
		result.Trees = all
		return result, nil
	}
	result.Trees, err = paraphrase.Sample(all, opts.Limit, paraphrase.NewRand(opts.Seed))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// keyTypeResult labels cache events for expansion results.
const keyTypeResult = "result"

func (r *Runner) lookup(ctx context.Context, key string, refresh bool) ([]string, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	var trees []string
	if err := json.Unmarshal(data, &trees); err != nil {
		r.Logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		observability.Cache().OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeResult)
	return trees, true
}

func (r *Runner) store(ctx context.Context, key string, trees []string) {
	data, err := json.Marshal(trees)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache store failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
}
