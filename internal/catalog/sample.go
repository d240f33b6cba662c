package catalog

import "math/rand"

const (
	// TopRatedCount is the size of the "Top Rated" sidebar
	TopRatedCount = 5
	// RecommendedCount is the size of the "Recommended" sidebar
	RecommendedCount = 2
	// PicksCount is the size of the "Picks for you" panel
	PicksCount = 5
)

// TopN returns the first n items in their original order.
// Items are not ranked; "Top Rated" is whatever came first in the last fetch.
func TopN[T any](items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out
}

// RandomSample returns k items drawn uniformly without replacement, in random
// order. Every call reshuffles, so results are not stable across renders.
// The input slice is not modified.
func RandomSample[T any](items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	if k <= 0 {
		return []T{}
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:k]
}
