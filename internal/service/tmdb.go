package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"movieflix/internal/model"
	"movieflix/pkg/httpclient"

	"github.com/rs/zerolog/log"
)

var (
	// ErrCatalogUnavailable is returned when the catalog API cannot be reached
	// or answers with a non-success status.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrMalformedResponse is returned when the catalog API answers with a body
	// that is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed catalog response")
	// ErrMovieNotFound is returned by MovieDetail for unknown ids.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrNotConfigured is returned when no TMDB API key is set.
	ErrNotConfigured = errors.New("TMDB API key not configured")
)

// TMDBService handles TMDB API interactions with key rotation
type TMDBService struct {
	apiKeys  []string
	baseURL  string
	language string
	client   *httpclient.Client
	keyIndex uint64 // 原子计数器，用于轮询
}

// NewTMDBService creates a new TMDBService with multiple API keys
func NewTMDBService(client *httpclient.Client, apiKeys []string, baseURL, language string) *TMDBService {
	if len(apiKeys) > 0 {
		log.Info().Int("count", len(apiKeys)).Msg("🔑 TMDB API keys configured, rotating round-robin")
	}
	return &TMDBService{
		apiKeys:  apiKeys,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		client:   client,
	}
}

// getNextKey returns the next API key using round-robin
func (s *TMDBService) getNextKey() string {
	if len(s.apiKeys) == 0 {
		return ""
	}
	idx := atomic.AddUint64(&s.keyIndex, 1) - 1
	return s.apiKeys[idx%uint64(len(s.apiKeys))]
}

// Popular returns one page of the popular movies listing
func (s *TMDBService) Popular(ctx context.Context, page int) ([]model.MovieSummary, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))

	var result model.TMDBPageResponse
	if err := s.get(ctx, "/movie/popular", q, &result); err != nil {
		return nil, fmt.Errorf("popular page %d: %w", page, err)
	}

	log.Debug().Int("page", page).Int("count", len(result.Results)).Msg("Fetched popular movies")
	return result.Results, nil
}

// Search returns one page of movies whose title matches term
func (s *TMDBService) Search(ctx context.Context, term string, page int) ([]model.MovieSummary, error) {
	q := url.Values{}
	q.Set("query", term)
	q.Set("page", strconv.Itoa(page))

	var result model.TMDBPageResponse
	if err := s.get(ctx, "/search/movie", q, &result); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}

	log.Debug().Str("query", term).Int("count", len(result.Results)).Msg("Searched movies")
	return result.Results, nil
}

// MovieDetail returns a movie expanded with credits, videos and similar movies
func (s *TMDBService) MovieDetail(ctx context.Context, id int) (*model.MovieDetail, error) {
	q := url.Values{}
	q.Set("append_to_response", "credits,videos,similar")

	var detail model.MovieDetail
	if err := s.get(ctx, fmt.Sprintf("/movie/%d", id), q, &detail); err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrMovieNotFound)
		}
		return nil, fmt.Errorf("movie %d: %w", id, err)
	}
	return &detail, nil
}

// get issues a GET against the TMDB API with key and language parameters.
// Errors are wrapped with ErrCatalogUnavailable or ErrMalformedResponse.
func (s *TMDBService) get(ctx context.Context, path string, q url.Values, dest interface{}) error {
	apiKey := s.getNextKey()
	if apiKey == "" {
		return ErrNotConfigured
	}
	q.Set("api_key", apiKey)
	q.Set("language", s.language)

	target := s.baseURL + path + "?" + q.Encode()
	err := s.client.FetchJSON(ctx, target, nil, dest)
	if err == nil {
		return nil
	}

	var de *httpclient.DecodeError
	if errors.As(err, &de) {
		return &catalogError{kind: ErrMalformedResponse, cause: err}
	}
	return &catalogError{kind: ErrCatalogUnavailable, cause: err}
}

// IsConfigured returns true if TMDB is configured
func (s *TMDBService) IsConfigured() bool {
	return len(s.apiKeys) > 0
}

// KeyCount returns the number of configured API keys
func (s *TMDBService) KeyCount() int {
	return len(s.apiKeys)
}

// catalogError pairs a sentinel kind with the transport cause so that both
// errors.Is(err, ErrCatalogUnavailable) and status inspection work.
type catalogError struct {
	kind  error
	cause error
}

func (e *catalogError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

func (e *catalogError) Is(target error) bool { return target == e.kind }

func (e *catalogError) Unwrap() error { return e.cause }
