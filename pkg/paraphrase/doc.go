// Package paraphrase generates structural paraphrases of constituency trees by
// reordering sibling constituents.
//
// # Overview
//
// A transformation runs in four steps:
//
//  1. [FindQualifying] walks the tree in pre-order and records the
//     [syntax.Position] of every node accepted by a [Predicate].
//  2. [PermuteChildren] produces every ordering of a qualifying node's movable
//     children (those carrying the target label). Other children keep their
//     slot.
//  3. [Assemble] takes one permutation list per position and builds one full
//     tree per element of their cartesian product.
//  4. [Transform] chains named [Method]s over a working set of trees and
//     optionally draws a random sample from the result.
//
// For the noun-phrase method a node qualifies when it is labelled NP and all
// of its children are NP, CC or ",". The NP children are movable:
//
//	(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))
//
// yields the input itself and
//
//	(NP (NP (DT a) (NN dog)) (CC and) (NP (DT the) (NN cat)))
//
// # Result Size
//
// The number of results is the product of k! over all qualifying nodes, where
// k is the node's movable child count. This grows very quickly, so
// [Options.MaxCombinations] caps the projected count before any tree is built.
//
// # Nested Qualifying Nodes
//
// A qualifying node may itself contain a qualifying node. Reordering the outer
// node moves the inner one, so the inner node's position is no longer valid for
// the reordered copy. [NestedPolicy] decides what happens: reject the tree
// (the default), keep only the outermost matches, or compose the inner
// variants into the outer node's permutation set.
//
// # Concurrency
//
// All functions are pure: inputs are never mutated, every output is a fresh
// deep copy, and no state is shared between calls.
package paraphrase
