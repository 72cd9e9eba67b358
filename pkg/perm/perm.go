package perm

import (
	"math"
	"slices"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorial silently overflows for n > 20. See [CheckedFactorial].
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// CheckedFactorial returns n!, or math.MaxInt if the result does not fit in an int.
func CheckedFactorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result = MulSaturating(result, i)
	}
	return result
}

// MulSaturating returns a*b for non-negative a and b, clamped to math.MaxInt.
func MulSaturating(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// Next rearranges p into the lexicographically next permutation and reports
// whether one existed. When p is already the last permutation (descending),
// Next leaves it unchanged and returns false.
func Next(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}

// Lexicographic returns permutations of [0, 1, ..., n-1] in lexicographic order.
//
// If limit > 0, Lexicographic returns at most limit permutations.
// If limit <= 0, it returns all n! permutations.
//
// The first permutation is always the identity. For n <= 0 the result is
// [[]], a single empty permutation, so callers can treat "nothing to permute"
// the same as any other case.
//
// Each returned slice is a separate allocation.
func Lexicographic(n, limit int) [][]int {
	p := Seq(n)
	capacity := CheckedFactorial(min(max(n, 0), 10))
	if limit > 0 && limit < capacity {
		capacity = limit
	}
	result := make([][]int, 0, capacity)
	for {
		result = append(result, slices.Clone(p))
		if limit > 0 && len(result) >= limit {
			return result
		}
		if !Next(p) {
			return result
		}
	}
}

// AddSaturating returns a+b for non-negative a and b, clamped to math.MaxInt.
func AddSaturating(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
