package catalog

import (
	"context"
	"sync"

	"movieflix/internal/model"

	"github.com/rs/zerolog/log"
)

// QueryFetcher fetches the movies for a Query
type QueryFetcher interface {
	Fetch(ctx context.Context, q Query) ([]model.MovieSummary, error)
}

// ViewState is one visitor's listing state
type ViewState struct {
	Movies      []model.MovieSummary `json:"movies"`
	Recommended []model.MovieSummary `json:"recommended"`
	Category    Mode                 `json:"category"`
	Query       Query                `json:"query"`
	CurrentPage int                  `json:"current_page"`
	PageSize    int                  `json:"page_size"`
	IsLoading   bool                 `json:"is_loading"`
}

// PageView is the visible slice of a ViewState
type PageView struct {
	Movies      []model.MovieSummary `json:"movies"`
	Page        int                  `json:"page"`
	TotalPages  int                  `json:"total_pages"`
	TotalMovies int                  `json:"total_movies"`
	HasPrev     bool                 `json:"has_prev"`
	HasNext     bool                 `json:"has_next"`
}

// View is the listing view-model of a single visitor. Mutations are
// serialized by a mutex; fetches run outside it, and a fetch result is only
// committed if no newer query was issued while it was in flight.
type View struct {
	mu         sync.Mutex
	fetcher    QueryFetcher
	state      ViewState
	generation uint64
	loaded     bool
}

// NewView creates an empty view that is loading its initial category
func NewView(fetcher QueryFetcher, initial Mode) *View {
	return &View{
		fetcher: fetcher,
		state: ViewState{
			Movies:      []model.MovieSummary{},
			Recommended: []model.MovieSummary{},
			Category:    initial,
			Query:       CategoryQuery(initial),
			CurrentPage: 1,
			PageSize:    PageSize,
			IsLoading:   true,
		},
	}
}

// Loaded reports whether Load, SelectCategory or Search has run at least once
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Load fetches the active category's default list
func (v *View) Load(ctx context.Context) {
	v.mu.Lock()
	q := CategoryQuery(v.state.Category)
	v.mu.Unlock()
	v.run(ctx, q, nil)
}

// SelectCategory switches to category m and reloads its list
func (v *View) SelectCategory(ctx context.Context, m Mode) {
	if !m.IsCategory() {
		return
	}
	v.run(ctx, CategoryQuery(m), func(s *ViewState) { s.Category = m })
}

// Search looks up term. A blank term reloads the active category instead and
// issues no search request.
func (v *View) Search(ctx context.Context, term string) {
	v.mu.Lock()
	q := SearchQuery(term, v.state.Category)
	v.mu.Unlock()
	v.run(ctx, q, nil)
}

// NextPage advances one page, staying put on the last page
func (v *View) NextPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.CurrentPage = NextPage(v.state.CurrentPage, v.totalPages())
}

// PrevPage goes back one page, staying put on the first page
func (v *View) PrevPage() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.CurrentPage = PrevPage(v.state.CurrentPage, v.totalPages())
}

// GoToPage jumps to page n, clamped to the available pages
func (v *View) GoToPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.CurrentPage = ClampPage(n, v.totalPages())
}

// Snapshot returns a copy of the current state
func (v *View) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Movies = append([]model.MovieSummary(nil), v.state.Movies...)
	s.Recommended = append([]model.MovieSummary(nil), v.state.Recommended...)
	return s
}

// Page derives the visible slice of the current state
func (v *View) Page() PageView {
	v.mu.Lock()
	defer v.mu.Unlock()
	slice, total := Paginate(v.state.Movies, v.state.CurrentPage, v.state.PageSize)
	page := ClampPage(v.state.CurrentPage, total)
	return PageView{
		Movies:      append([]model.MovieSummary(nil), slice...),
		Page:        page,
		TotalPages:  total,
		TotalMovies: len(v.state.Movies),
		HasPrev:     page > 1,
		HasNext:     page < total,
	}
}

func (v *View) totalPages() int {
	return TotalPages(len(v.state.Movies), v.state.PageSize)
}

// run issues q and commits its result if q is still the latest query.
// onCommit applies extra state changes together with a successful commit.
// Fetch errors are logged and absorbed: the previous movies stay in place.
func (v *View) run(ctx context.Context, q Query, onCommit func(*ViewState)) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.loaded = true
	v.state.IsLoading = true
	v.mu.Unlock()

	movies, err := v.fetcher.Fetch(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		log.Debug().
			Str("mode", q.Mode.String()).
			Uint64("generation", gen).
			Uint64("latest", v.generation).
			Msg("Discarding stale catalog result")
		return
	}
	v.state.IsLoading = false

	if err != nil {
		log.Warn().Err(err).
			Str("mode", q.Mode.String()).
			Str("query", q.SearchTerm).
			Msg("Catalog fetch failed, keeping previous list")
		return
	}

	if movies == nil {
		movies = []model.MovieSummary{}
	}
	v.state.Movies = movies
	v.state.Recommended = TopN(movies, TopRatedCount)
	v.state.Query = q
	v.state.CurrentPage = 1
	if onCommit != nil {
		onCommit(&v.state)
	}
}
