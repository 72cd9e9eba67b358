// Package syntax provides an ordered, labelled n-ary tree for constituency
// parses, along with the bracketed notation used to read and write it.
//
// # Overview
//
// A [Tree] is either a constituent (a label with ordered children) or a
// terminal token. Constituents own their children; every child keeps a
// back-link to its parent so that a node can report its own [Position] and be
// removed from or inserted into its parent in place. The back-link is only a
// navigation aid: copying a subtree with [Tree.Copy] yields a detached tree
// whose root has no parent.
//
// # Bracketed Notation
//
// Trees are exchanged as bracketed strings:
//
//	(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))
//
// [Parse] reads this notation and [Tree.String] writes it back on a single
// line, so Parse(t.String()) reproduces t.
//
// # Positions
//
// A [Position] is the sequence of child indices leading from a root to one of
// its descendants; the empty position addresses the root. Positions are only
// meaningful for the tree shape they were computed on. Reordering or resizing
// the children of any ancestor on the path invalidates them.
//
//	t, _ := syntax.Parse("(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))")
//	n, _ := t.At(syntax.Position{2})
//	fmt.Println(n) // (NP (DT a) (NN dog))
//
// # Visualization
//
// [ToDOT] and [RenderSVG] export a tree as a Graphviz graph for debugging.
package syntax
