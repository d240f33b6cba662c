package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_ConcatenationReproducesList(t *testing.T) {
	for _, pageSize := range []int{1, 2, 7, 30, 100} {
		for _, n := range []int{0, 1, 29, 30, 31, 65, 200} {
			items := seq(n)
			_, total := Paginate(items, 1, pageSize)

			want := (n + pageSize - 1) / pageSize
			if want < 1 {
				want = 1
			}
			assert.Equal(t, want, total, "n=%d pageSize=%d", n, pageSize)

			var joined []int
			for p := 1; p <= total; p++ {
				slice, _ := Paginate(items, p, pageSize)
				joined = append(joined, slice...)
			}
			if n == 0 {
				assert.Empty(t, joined)
			} else {
				assert.Equal(t, items, joined, "n=%d pageSize=%d", n, pageSize)
			}
		}
	}
}

func TestPaginate_SixtyFiveMovies(t *testing.T) {
	items := seq(65)

	slice, total := Paginate(items, 3, PageSize)
	assert.Equal(t, 3, total)
	assert.Len(t, slice, 5)
	assert.Equal(t, 60, slice[0])

	assert.Equal(t, 3, NextPage(3, total))
}

func TestPaginate_EmptyList(t *testing.T) {
	slice, total := Paginate([]int{}, 1, PageSize)
	assert.Equal(t, 1, total)
	assert.NotNil(t, slice)
	assert.Empty(t, slice)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	items := seq(45)

	slice, _ := Paginate(items, 0, PageSize)
	assert.Equal(t, 0, slice[0])

	slice, _ = Paginate(items, 99, PageSize)
	assert.Equal(t, 30, slice[0])
	assert.Len(t, slice, 15)
}

func TestNavigationGuards(t *testing.T) {
	assert.Equal(t, 1, PrevPage(1, 4))
	assert.Equal(t, 2, PrevPage(3, 4))
	assert.Equal(t, 4, NextPage(4, 4))
	assert.Equal(t, 3, NextPage(2, 4))
	assert.Equal(t, 1, NextPage(1, 1))
}
