package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movieflix/internal/model"

	"github.com/rs/zerolog/log"
)

// BulkPages is the number of popular pages the All category concatenates
const BulkPages = 10

// ErrBlankSearch is returned when a search query carries no term
var ErrBlankSearch = errors.New("blank search term")

// Source is the catalog API the fetcher reads from
type Source interface {
	Popular(ctx context.Context, page int) ([]model.MovieSummary, error)
	Search(ctx context.Context, term string, page int) ([]model.MovieSummary, error)
}

// Fetcher turns a Query into a flat, ordered list of movies
type Fetcher struct {
	source    Source
	bulkPages int
}

// NewFetcher creates a Fetcher reading from source
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source, bulkPages: BulkPages}
}

// Fetch performs the requests q calls for. The All mode requests pages
// 1..BulkPages one after another and fails as a whole if any page fails.
func (f *Fetcher) Fetch(ctx context.Context, q Query) ([]model.MovieSummary, error) {
	switch q.Mode {
	case ModeAll:
		var all []model.MovieSummary
		for page := 1; page <= f.bulkPages; page++ {
			movies, err := f.source.Popular(ctx, page)
			if err != nil {
				return nil, fmt.Errorf("bulk fetch: %w", err)
			}
			all = append(all, movies...)
		}
		log.Debug().Int("pages", f.bulkPages).Int("count", len(all)).Msg("✓ Bulk fetch complete")
		return all, nil

	case ModePopular:
		return f.source.Popular(ctx, 1)

	case ModeSearch:
		term := strings.TrimSpace(q.SearchTerm)
		if term == "" {
			return nil, ErrBlankSearch
		}
		return f.source.Search(ctx, term, 1)
	}
	return nil, fmt.Errorf("unsupported query mode %s", q.Mode)
}
