package paraphrase

import (
	"slices"
	"testing"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

func TestParseNestedPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    NestedPolicy
		wantErr bool
	}{
		{"", NestedReject, false},
		{"reject", NestedReject, false},
		{"outermost", NestedOutermost, false},
		{"compose", NestedCompose, false},
		{"Compose", 0, true},
		{"all", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseNestedPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNestedPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseNestedPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if err == nil && tt.in != "" && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
	if got := NestedPolicy(9).String(); got != "NestedPolicy(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestFindNested(t *testing.T) {
	positions := []syntax.Position{{0}, {1}, {1, 2}, {1, 2, 0}}
	outer, inner, ok := FindNested(positions)
	if !ok || !outer.Equal(syntax.Position{1}) || !inner.Equal(syntax.Position{1, 2}) {
		t.Errorf("FindNested() = %v, %v, %v", outer, inner, ok)
	}
	if _, _, ok := FindNested([]syntax.Position{{0}, {1, 0}, {2}}); ok {
		t.Error("FindNested() reported siblings as nested")
	}
}

func TestOutermost(t *testing.T) {
	got := positionsString(Outermost([]syntax.Position{{}, {0}, {0, 1}}))
	if !slices.Equal(got, []string{"()"}) {
		t.Errorf("Outermost() = %v", got)
	}
	got = positionsString(Outermost([]syntax.Position{{0}, {0, 1}, {1}, {1, 0, 2}, {2}}))
	if !slices.Equal(got, []string{"(0)", "(1)", "(2)"}) {
		t.Errorf("Outermost() = %v", got)
	}
}

func TestApplyNestedReject(t *testing.T) {
	_, err := MethodNounPhrases.Apply(syntax.MustParse(nestedCoordination), NestedReject)
	if !perrors.Is(err, perrors.ErrCodeStructuralAmbiguity) {
		t.Fatalf("Apply() error = %v, want STRUCTURAL_AMBIGUITY", err)
	}
}

func TestApplyNestedOutermost(t *testing.T) {
	got, err := MethodNounPhrases.Apply(syntax.MustParse(nestedCoordination), NestedOutermost)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{
		"cats and dogs or hens",
		"hens or cats and dogs",
	}
	if s := sentences(got); !slices.Equal(s, want) {
		t.Errorf("Apply() = %q, want %q", s, want)
	}
}

func TestApplyNestedCompose(t *testing.T) {
	tree := syntax.MustParse(nestedCoordination)
	got, err := MethodNounPhrases.Apply(tree, NestedCompose)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{
		"cats and dogs or hens",
		"hens or cats and dogs",
		"dogs and cats or hens",
		"hens or dogs and cats",
	}
	if s := sentences(got); !slices.Equal(s, want) {
		t.Errorf("Apply() = %q, want %q", s, want)
	}

	n, err := MethodNounPhrases.Count(tree, NestedCompose)
	if err != nil || n != len(want) {
		t.Errorf("Count() = %d, %v, want %d", n, err, len(want))
	}
	for _, out := range got {
		if out.Size() != tree.Size() {
			t.Errorf("Size() = %d, want %d", out.Size(), tree.Size())
		}
	}
}

func TestApplyNestedComposeDeep(t *testing.T) {
	// Three levels: ((a and b) or c) and d
	tree := syntax.MustParse("(NP (NP (NP (NP (NN a)) (CC and) (NP (NN b))) (CC or) (NP (NN c))) (CC and) (NP (NN d)))")
	got, err := MethodNounPhrases.Apply(tree, NestedCompose)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("Apply() returned %d trees, want 8", len(got))
	}
	seen := make(map[string]bool)
	for _, out := range got {
		if seen[out.String()] {
			t.Errorf("duplicate tree %s", out)
		}
		seen[out.String()] = true
	}
	if n, _ := MethodNounPhrases.Count(tree, NestedCompose); n != 8 {
		t.Errorf("Count() = %d, want 8", n)
	}
	if n, _ := MethodNounPhrases.Count(tree, NestedOutermost); n != 2 {
		t.Errorf("Count(outermost) = %d, want 2", n)
	}
}
