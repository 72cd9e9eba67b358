// Package perm generates permutations of small index sets and computes the
// factorial-sized counts that come with them.
//
// # Ordering
//
// [Lexicographic] enumerates permutations of [0, 1, ..., n-1] in ascending
// lexicographic order, starting with the identity. The order is stable across
// runs and releases, which matters to callers that later sample from the
// generated set with a fixed seed.
//
// # Overflow
//
// Factorials grow quickly: 21! no longer fits in an int64. [Factorial] does not
// guard against this; use [CheckedFactorial] or [MulSaturating] when the input
// comes from untrusted data (for example, the number of siblings in a parsed
// tree).
//
//	n := perm.CheckedFactorial(k)
//	total := perm.MulSaturating(total, n)
//	if total > limit {
//	    return errTooMany
//	}
package perm
