package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"movieflix/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies(n, offset int) []model.MovieSummary {
	out := make([]model.MovieSummary, n)
	for i := range out {
		out[i] = model.MovieSummary{ID: offset + i + 1, Title: "Movie"}
	}
	return out
}

// fakeFetcher answers queries from a table and records what it was asked
type fakeFetcher struct {
	mu      sync.Mutex
	results map[Query][]model.MovieSummary
	err     error
	calls   []Query
}

func (f *fakeFetcher) Fetch(_ context.Context, q Query) ([]model.MovieSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[q], nil
}

func newFake() *fakeFetcher {
	return &fakeFetcher{results: map[Query][]model.MovieSummary{
		{Mode: ModeAll}:                          movies(200, 0),
		{Mode: ModePopular}:                      movies(20, 0),
		{Mode: ModeSearch, SearchTerm: "matrix"}: movies(3, 600),
	}}
}

func TestNewView_StartsLoadingAndEmpty(t *testing.T) {
	v := NewView(newFake(), ModeAll)
	s := v.Snapshot()

	assert.True(t, s.IsLoading)
	assert.Empty(t, s.Movies)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, PageSize, s.PageSize)
	assert.False(t, v.Loaded())
}

func TestView_LoadCommitsMoviesAndTopRated(t *testing.T) {
	v := NewView(newFake(), ModeAll)
	v.Load(context.Background())

	s := v.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Len(t, s.Movies, 200)
	require.Len(t, s.Recommended, TopRatedCount)
	assert.Equal(t, s.Movies[:TopRatedCount], s.Recommended)
	assert.True(t, v.Loaded())

	p := v.Page()
	assert.Equal(t, 7, p.TotalPages)
	assert.Len(t, p.Movies, PageSize)
	assert.False(t, p.HasPrev)
	assert.True(t, p.HasNext)
}

func TestView_CategorySwitchResetsPage(t *testing.T) {
	v := NewView(newFake(), ModeAll)
	ctx := context.Background()
	v.Load(ctx)
	v.GoToPage(4)
	require.Equal(t, 4, v.Snapshot().CurrentPage)

	v.SelectCategory(ctx, ModePopular)
	s := v.Snapshot()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, ModePopular, s.Category)
	assert.Len(t, s.Movies, 20)

	v.SelectCategory(ctx, ModeAll)
	v.NextPage()
	v.SelectCategory(ctx, ModeAll)
	s = v.Snapshot()
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, ModeAll, s.Category)
}

func TestView_BlankSearchReloadsActiveCategory(t *testing.T) {
	f := newFake()
	v := NewView(f, ModePopular)
	ctx := context.Background()

	v.Search(ctx, "   ")

	require.Len(t, f.calls, 1)
	assert.Equal(t, Query{Mode: ModePopular}, f.calls[0])
	assert.Equal(t, Query{Mode: ModePopular}, v.Snapshot().Query)
}

func TestView_SearchKeepsCategoryForLaterFallback(t *testing.T) {
	f := newFake()
	v := NewView(f, ModeAll)
	ctx := context.Background()

	v.Search(ctx, "matrix")
	s := v.Snapshot()
	assert.Equal(t, ModeSearch, s.Query.Mode)
	assert.Equal(t, ModeAll, s.Category)
	assert.Len(t, s.Movies, 3)

	v.Search(ctx, "")
	assert.Equal(t, Query{Mode: ModeAll}, f.calls[len(f.calls)-1])
	assert.Len(t, v.Snapshot().Movies, 200)
}

func TestView_FetchFailureKeepsPreviousList(t *testing.T) {
	f := newFake()
	v := NewView(f, ModeAll)
	ctx := context.Background()
	v.Load(ctx)
	v.GoToPage(2)

	f.err = errors.New("network down")
	v.SelectCategory(ctx, ModePopular)

	s := v.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Len(t, s.Movies, 200)
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, ModeAll, s.Category)
}

func TestView_FailureOnFirstLoadLeavesEmptyList(t *testing.T) {
	f := newFake()
	f.err = errors.New("boom")
	v := NewView(f, ModeAll)

	assert.NotPanics(t, func() { v.Load(context.Background()) })
	s := v.Snapshot()
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Movies)
}

func TestView_PageNavigationGuards(t *testing.T) {
	f := newFake()
	f.results[Query{Mode: ModePopular}] = movies(65, 0)
	v := NewView(f, ModePopular)
	v.Load(context.Background())

	v.PrevPage()
	assert.Equal(t, 1, v.Snapshot().CurrentPage)

	v.NextPage()
	v.NextPage()
	p := v.Page()
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Movies, 5)

	v.NextPage()
	assert.Equal(t, 3, v.Snapshot().CurrentPage)
}

// blockingFetcher holds each fetch until released, so tests can finish them out of order
type blockingFetcher struct {
	gates map[Query]chan []model.MovieSummary
}

func (b *blockingFetcher) Fetch(_ context.Context, q Query) ([]model.MovieSummary, error) {
	return <-b.gates[q], nil
}

func TestView_StaleResultIsDiscarded(t *testing.T) {
	popular := Query{Mode: ModePopular}
	search := Query{Mode: ModeSearch, SearchTerm: "dune"}
	b := &blockingFetcher{gates: map[Query]chan []model.MovieSummary{
		popular: make(chan []model.MovieSummary),
		search:  make(chan []model.MovieSummary),
	}}
	v := NewView(b, ModeAll)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.SelectCategory(ctx, ModePopular)
	}()
	// wait until the first fetch holds the older generation
	require.Eventually(t, func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		return v.generation == 1
	}, timeout, tick)

	wg.Add(1)
	go func() {
		defer wg.Done()
		v.Search(ctx, "dune")
	}()
	require.Eventually(t, func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		return v.generation == 2
	}, timeout, tick)

	b.gates[search] <- movies(2, 900)
	b.gates[popular] <- movies(20, 0)
	wg.Wait()

	s := v.Snapshot()
	assert.Equal(t, search, s.Query)
	assert.Len(t, s.Movies, 2)
	assert.Equal(t, ModeAll, s.Category, "stale category switch must not apply")
	assert.False(t, s.IsLoading)
}
