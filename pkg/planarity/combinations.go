package planarity

import "math"

// ForEachCombination calls fn with every k-subset of the positions 0..n-1 in
// lexicographic order. The idx slice is reused between calls; copy it to keep
// it. Enumeration stops when fn returns false.
func ForEachCombination(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Advance the rightmost position that still has room
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// FirstCombination returns the first k-subset of items, in lexicographic
// order over positions, accepted by pred. It returns nil when no subset matches.
func FirstCombination(items []int, k int, pred func(subset []int) bool) []int {
	var found []int
	subset := make([]int, k)

	ForEachCombination(len(items), k, func(idx []int) bool {
		for i, p := range idx {
			subset[i] = items[p]
		}
		if pred(subset) {
			found = append([]int(nil), subset...)
			return false
		}
		return true
	})

	return found
}

// Binomial returns C(n, k), 0 when k is out of range and math.MaxInt when
// the value does not fit in an int.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		if result > math.MaxInt/(n-k+i) {
			return math.MaxInt
		}
		result = result * (n - k + i) / i
	}
	return result
}
