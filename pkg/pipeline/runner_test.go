package pipeline

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paraphraser/pkg/cache"
	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/observability"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
)

const (
	catAndDog = "(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))"
	dogAndCat = "(NP (NP (DT a) (NN dog)) (CC and) (NP (DT the) (NN cat)))"

	twoCoordinations = "(S (NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog))) " +
		"(VP (VBD met) (NP (NP (DT a) (NN fox)) (CC and) (NP (DT the) (NN hen)))))"

	nestedCoordination = "(NP (NP (NP (NNS cats)) (CC and) (NP (NNS dogs))) (CC or) (NP (NNS hens)))"
)

// memCache is an in-memory cache.Cache that counts calls.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   int
	sets   int
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func newTestRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestExecuteAll(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{Tree: catAndDog})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := []string{catAndDog, dogAndCat}
	if !reflect.DeepEqual(res.Trees, want) {
		t.Errorf("Execute() trees = %v, want %v", res.Trees, want)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	if res.CacheHit {
		t.Error("CacheHit = true with caching disabled")
	}
}

func TestExecuteNormalizesWhitespace(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Tree: "(NP\n  (NP (DT the) (NN cat))\n  (CC and)\n  (NP (DT a) (NN dog)))",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Trees[0] != catAndDog {
		t.Errorf("Trees[0] = %q, want %q", res.Trees[0], catAndDog)
	}
}

func TestExecuteLimit(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{Tree: twoCoordinations, Limit: 3, Seed: 7})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(res.Trees) != 3 {
		t.Fatalf("len(Trees) = %d, want 3", len(res.Trees))
	}
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
	seen := make(map[string]bool)
	for _, tr := range res.Trees {
		if seen[tr] {
			t.Errorf("duplicate tree %s", tr)
		}
		seen[tr] = true
	}

	again, err := r.Execute(context.Background(), Options{Tree: twoCoordinations, Limit: 3, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Trees, again.Trees) {
		t.Errorf("same seed gave %v and %v", res.Trees, again.Trees)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code perrors.Code
	}{
		{"empty tree", Options{Tree: "  "}, perrors.ErrCodeInvalidInput},
		{"bad tree", Options{Tree: "(NP (DT the)"}, perrors.ErrCodeInvalidTree},
		{"negative limit", Options{Tree: catAndDog, Limit: -1}, perrors.ErrCodeInvalidInput},
		{"unknown method", Options{Tree: catAndDog, Methods: []string{"verb phrases"}}, perrors.ErrCodeUnknownMethod},
		{"limit too large", Options{Tree: catAndDog, Limit: 3}, perrors.ErrCodeSampleSizeExceeded},
		{"nested", Options{Tree: nestedCoordination}, perrors.ErrCodeStructuralAmbiguity},
		{"cap", Options{Tree: twoCoordinations, MaxCombinations: 3}, perrors.ErrCodeTooManyCombinations},
	}
	r := newTestRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if !perrors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestExecuteCancelled(t *testing.T) {
	c := newMemCache()
	r := newTestRunner(c)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, Options{Tree: twoCoordinations})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if c.sets != 0 {
		t.Errorf("cancelled expansion stored %d entries", c.sets)
	}
}

func TestExecuteNegativeCapIsUnbounded(t *testing.T) {
	r := newTestRunner(nil)
	res, err := r.Execute(context.Background(), Options{Tree: twoCoordinations, MaxCombinations: -1})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Total != 4 {
		t.Errorf("Total = %d, want 4", res.Total)
	}
}

func TestExecuteNestedPolicy(t *testing.T) {
	r := newTestRunner(nil)
	tests := []struct {
		policy paraphrase.NestedPolicy
		total  int
	}{
		{paraphrase.NestedOutermost, 2},
		{paraphrase.NestedCompose, 4},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{Tree: nestedCoordination, Nested: tt.policy})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Total != tt.total {
				t.Errorf("Total = %d, want %d", res.Total, tt.total)
			}
		})
	}
}

func TestExecuteUsesCache(t *testing.T) {
	mc := newMemCache()
	r := newTestRunner(mc)
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{Tree: catAndDog})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || mc.sets != 1 {
		t.Fatalf("first run: CacheHit = %v, sets = %d", first.CacheHit, mc.sets)
	}

	// Alias, different limit and different seed share the entry.
	second, err := r.Execute(ctx, Options{Tree: catAndDog, Methods: []string{"Noun phrases"}, Limit: 1, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if second.Total != 2 || len(second.Trees) != 1 {
		t.Errorf("second run: Total = %d, len(Trees) = %d", second.Total, len(second.Trees))
	}

	// Changing the nested policy changes the key.
	third, err := r.Execute(ctx, Options{Tree: catAndDog, Nested: paraphrase.NestedCompose})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("different nested policy should miss")
	}

	refreshed, err := r.Execute(ctx, Options{Tree: catAndDog, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheHit {
		t.Error("Refresh should skip the lookup")
	}
}

func TestExecuteIgnoresCacheFailures(t *testing.T) {
	mc := newMemCache()
	mc.getErr = errors.New("connection refused")
	r := newTestRunner(mc)
	res, err := r.Execute(context.Background(), Options{Tree: catAndDog})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
}

func TestExecuteDiscardsCorruptEntries(t *testing.T) {
	mc := newMemCache()
	r := newTestRunner(mc)
	ctx := context.Background()
	if _, err := r.Execute(ctx, Options{Tree: catAndDog}); err != nil {
		t.Fatal(err)
	}
	for k := range mc.data {
		mc.data[k] = []byte("{not json")
	}
	res, err := r.Execute(ctx, Options{Tree: catAndDog})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.CacheHit || res.Total != 2 {
		t.Errorf("CacheHit = %v, Total = %d", res.CacheHit, res.Total)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	o := Options{Tree: catAndDog}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(o.Methods, DefaultMethods) {
		t.Errorf("Methods = %v, want %v", o.Methods, DefaultMethods)
	}
	if o.MaxCombinations != DefaultMaxCombinations {
		t.Errorf("MaxCombinations = %d, want %d", o.MaxCombinations, DefaultMaxCombinations)
	}

	blank := Options{Tree: catAndDog, Methods: []string{" "}}
	if err := blank.ValidateAndSetDefaults(); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("blank method error = %v", err)
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestExecuteEmitsCacheEvents(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(newMemCache())
	for range 2 {
		if _, err := r.Execute(context.Background(), Options{Tree: catAndDog}); err != nil {
			t.Fatal(err)
		}
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hits = %d, misses = %d, sets = %d, want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}
}
