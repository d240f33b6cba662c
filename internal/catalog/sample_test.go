package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	items := []int{9, 3, 7, 1, 5, 8, 2}

	top := TopN(items, 5)
	assert.Equal(t, []int{9, 3, 7, 1, 5}, top)

	top[0] = 100
	assert.Equal(t, 9, items[0], "TopN must copy")

	assert.Equal(t, []int{1, 2}, TopN([]int{1, 2}, 5))
	assert.Empty(t, TopN([]int{}, 5))
}

func TestRandomSample_SubsetWithoutDuplicates(t *testing.T) {
	items := seq(50)

	for i := 0; i < 20; i++ {
		s := RandomSample(items, 5)
		assert.Len(t, s, 5)

		seen := map[int]bool{}
		for _, v := range s {
			assert.False(t, seen[v], "duplicate %d", v)
			seen[v] = true
			assert.True(t, v >= 0 && v < 50)
		}
	}
	assert.Equal(t, seq(50), items, "input must not be reordered")
}

func TestRandomSample_KLargerThanList(t *testing.T) {
	s := RandomSample([]int{3, 1, 2}, 10)
	sort.Ints(s)
	assert.Equal(t, []int{1, 2, 3}, s)

	assert.Empty(t, RandomSample([]int{}, 2))
	assert.Empty(t, RandomSample([]int{1}, 0))
}

func TestRandomSample_IsNotFixed(t *testing.T) {
	items := seq(100)
	first := RandomSample(items, 10)

	differs := false
	for i := 0; i < 10 && !differs; i++ {
		next := RandomSample(items, 10)
		for j := range next {
			if next[j] != first[j] {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "sample should vary across calls")
}
