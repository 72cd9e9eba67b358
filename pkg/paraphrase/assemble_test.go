package paraphrase

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

func sentence(t *syntax.Tree) string {
	return strings.Join(t.Leaves(), " ")
}

func sentences(trees []*syntax.Tree) []string {
	out := make([]string, len(trees))
	for i, t := range trees {
		out[i] = sentence(t)
	}
	return out
}

func TestCountCombinations(t *testing.T) {
	tests := []struct {
		sizes []int
		want  int
	}{
		{nil, 1},
		{[]int{2}, 2},
		{[]int{2, 2}, 4},
		{[]int{6, 2, 24}, 288},
		{[]int{math.MaxInt, 2}, math.MaxInt},
	}
	for _, tt := range tests {
		if got := CountCombinations(tt.sizes); got != tt.want {
			t.Errorf("CountCombinations(%v) = %d, want %d", tt.sizes, got, tt.want)
		}
	}
}

func TestAssembleOrder(t *testing.T) {
	base := syntax.MustParse(twoCoordinations)
	positions := FindQualifying(base, NounPhraseCoordination)
	sets := make([][]*syntax.Tree, len(positions))
	for i, pos := range positions {
		n, _ := base.At(pos)
		sets[i] = PermuteChildren(n, "NP")
	}

	got, err := Assemble(base, positions, sets)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := []string{
		"the cat and a dog met a fox and the hen",
		"a dog and the cat met a fox and the hen",
		"the cat and a dog met the hen and a fox",
		"a dog and the cat met the hen and a fox",
	}
	if s := sentences(got); !slices.Equal(s, want) {
		t.Errorf("Assemble() = %q, want %q", s, want)
	}
	if base.String() != twoCoordinations {
		t.Error("Assemble() modified base")
	}
}

func TestAssembleRootPosition(t *testing.T) {
	base := syntax.MustParse(catAndDog)
	sets := [][]*syntax.Tree{PermuteChildren(base, "NP")}

	got, err := Assemble(base, []syntax.Position{{}}, sets)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(got) != 2 || got[0].String() != catAndDog || got[1].String() != dogAndCat {
		t.Errorf("Assemble() = %v", got)
	}
	if got[1] == sets[0][1] {
		t.Error("Assemble() should copy the chosen subtree")
	}
}

func TestAssembleNoPositions(t *testing.T) {
	base := syntax.MustParse(noCoordination)
	got, err := Assemble(base, nil, nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(got) != 1 || !got[0].Equal(base) || got[0] == base {
		t.Errorf("Assemble() with no positions should return one copy, got %v", got)
	}
}

func TestAssembleOutputsAreIndependent(t *testing.T) {
	base := syntax.MustParse(twoCoordinations)
	positions := FindQualifying(base, NounPhraseCoordination)
	sets := make([][]*syntax.Tree, len(positions))
	for i, pos := range positions {
		n, _ := base.At(pos)
		sets[i] = PermuteChildren(n, "NP")
	}
	got, err := Assemble(base, positions, sets)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	leaf, _ := got[0].At(syntax.Position{0, 0, 0, 0})
	leaf.Text = "changed"
	for i, tree := range got[1:] {
		if strings.Contains(sentence(tree), "changed") {
			t.Errorf("output %d shares nodes with output 0", i+1)
		}
	}
	if strings.Contains(sentence(sets[0][0]), "changed") {
		t.Error("output shares nodes with the permutation set")
	}
}

func TestAssembleErrors(t *testing.T) {
	base := syntax.MustParse(catAndDog)
	set := PermuteChildren(base, "NP")

	tests := []struct {
		name      string
		positions []syntax.Position
		sets      [][]*syntax.Tree
	}{
		{"length mismatch", []syntax.Position{{}}, nil},
		{"empty set", []syntax.Position{{}}, [][]*syntax.Tree{{}}},
		{"bad position", []syntax.Position{{7}}, [][]*syntax.Tree{set}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(base, tt.positions, tt.sets)
			if !perrors.Is(err, perrors.ErrCodeInternal) {
				t.Errorf("Assemble() error = %v, want INTERNAL_ERROR", err)
			}
		})
	}
}

func TestAssembleStopsWhenContextDone(t *testing.T) {
	base := syntax.MustParse(catAndDog)
	n, _ := base.At(syntax.Position{})
	sets := [][]*syntax.Tree{PermuteChildren(n, "NP")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := assemble(ctx, base, []syntax.Position{{}}, sets); !errors.Is(err, context.Canceled) {
		t.Errorf("assemble() error = %v, want context.Canceled", err)
	}
}
