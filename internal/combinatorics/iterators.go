// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package combinatorics enumerates combinations and permutations of a base
// sequence lazily, in lexicographic order of element positions.
package combinatorics

import "iter"

// Combinations yields every k-element subsequence of pool. Each yielded
// slice is freshly allocated.
func Combinations[T any](pool []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(pool)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		if !yield(pick(pool, idx)) {
			return
		}
		for {
			i := k - 1
			for i >= 0 && idx[i] == i+n-k {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
			if !yield(pick(pool, idx)) {
				return
			}
		}
	}
}

// CombinationsWithReplacement yields every k-element multiset of pool as a
// non-decreasing position sequence.
func CombinationsWithReplacement[T any](pool []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(pool)
		if k < 0 || (n == 0 && k > 0) {
			return
		}
		idx := make([]int, k)
		if !yield(pick(pool, idx)) {
			return
		}
		for {
			i := k - 1
			for i >= 0 && idx[i] == n-1 {
				i--
			}
			if i < 0 {
				return
			}
			next := idx[i] + 1
			for j := i; j < k; j++ {
				idx[j] = next
			}
			if !yield(pick(pool, idx)) {
				return
			}
		}
	}
}

// Permutations yields every ordered k-element arrangement of distinct
// positions of pool.
func Permutations[T any](pool []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(pool)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		cycles := make([]int, k)
		for i := range cycles {
			cycles[i] = n - i
		}
		if !yield(pick(pool, idx[:k])) {
			return
		}
		for n > 0 {
			advanced := false
			for i := k - 1; i >= 0; i-- {
				cycles[i]--
				if cycles[i] == 0 {
					first := idx[i]
					copy(idx[i:], idx[i+1:])
					idx[n-1] = first
					cycles[i] = n - i
					continue
				}
				j := cycles[i]
				idx[i], idx[n-j] = idx[n-j], idx[i]
				if !yield(pick(pool, idx[:k])) {
					return
				}
				advanced = true
				break
			}
			if !advanced {
				return
			}
		}
	}
}

func pick[T any](pool []T, idx []int) []T {
	out := make([]T, len(idx))
	for i, p := range idx {
		out[i] = pool[p]
	}
	return out
}

// Binomial returns n choose k.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

// PermutationCount returns n!/(n-k)!.
func PermutationCount(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 0; i < k; i++ {
		r *= n - i
	}
	return r
}
