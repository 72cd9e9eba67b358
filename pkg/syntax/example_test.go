package syntax_test

import (
	"fmt"

	"github.com/matzehuels/paraphraser/pkg/syntax"
)

func ExampleParse() {
	t, err := syntax.Parse("(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))")
	if err != nil {
		panic(err)
	}
	fmt.Println(t.ChildLabels())
	fmt.Println(t.Leaves())
	// Output:
	// [NP CC NP]
	// [the cat and a dog]
}

func ExampleTree_At() {
	t := syntax.MustParse("(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))")
	n, _ := t.At(syntax.Position{2})
	fmt.Println(n)
	fmt.Println(n.Position())
	// Output:
	// (NP (DT a) (NN dog))
	// (2)
}
