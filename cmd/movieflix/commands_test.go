package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"movieflix/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTMDB serves 20 movies per popular page and records requested paths
type fakeTMDB struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path+"?page="+r.URL.Query().Get("page"))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/movie/popular":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		var resp model.TMDBPageResponse
		for i := 0; i < 20; i++ {
			id := (page-1)*20 + i + 1
			resp.Results = append(resp.Results, model.MovieSummary{
				ID: id, Title: fmt.Sprintf("Movie %d", id), ReleaseDate: "2020-01-01", VoteAverage: 7, GenreIDs: []int{28},
			})
		}
		json.NewEncoder(w).Encode(resp)
	case r.URL.Path == "/search/movie":
		json.NewEncoder(w).Encode(model.TMDBPageResponse{Results: []model.MovieSummary{
			{ID: 603, Title: "The Matrix: " + r.URL.Query().Get("query"), ReleaseDate: "1999-03-30"},
		}})
	case r.URL.Path == "/movie/27205":
		body := `{"id":27205,"title":"Inception","release_date":"2010-07-15","runtime":148,
			"vote_average":8.4,"budget":160000000,"original_language":"en","status":"Released",
			"credits":{"cast":[{"name":"Leonardo DiCaprio","character":"Cobb"}]},
			"videos":{"results":[{"key":"YoHD9XEInc0","site":"YouTube","type":"Trailer"}]}}`
		w.Write([]byte(body))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code":34,"status_message":"not found"}`))
	}
}

func (f *fakeTMDB) requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func run(t *testing.T, args ...string) (string, *fakeTMDB, error) {
	t.Helper()
	tmdb := &fakeTMDB{}
	srv := httptest.NewServer(tmdb)
	t.Cleanup(srv.Close)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--api-key", "test-key", "--base-url", srv.URL))
	err := cmd.Execute()
	return out.String(), tmdb, err
}

func TestPopular(t *testing.T) {
	out, tmdb, err := run(t, "popular")
	require.NoError(t, err)

	assert.Equal(t, []string{"/movie/popular?page=1"}, tmdb.requests())
	assert.Contains(t, out, "Movie 1 ")
	assert.Contains(t, out, "Action")
	assert.Contains(t, out, "Page 1 of 1 (20 movies)")
}

func TestPopularAll(t *testing.T) {
	out, tmdb, err := run(t, "popular", "--all", "--page", "3")
	require.NoError(t, err)

	assert.Len(t, tmdb.requests(), 10)
	assert.Contains(t, out, "Movie 61 ")
	assert.NotContains(t, out, "Movie 60 ")
	assert.Contains(t, out, "Page 3 of 7 (200 movies)")
}

func TestSearch(t *testing.T) {
	out, tmdb, err := run(t, "search", "the", "matrix")
	require.NoError(t, err)

	assert.Equal(t, []string{"/search/movie?page=1"}, tmdb.requests())
	assert.Contains(t, out, "The Matrix: the matrix")
	assert.Contains(t, out, "1999")
}

func TestDetail(t *testing.T) {
	out, _, err := run(t, "detail", "27205")
	require.NoError(t, err)

	assert.Contains(t, out, "Inception (2010)")
	assert.Contains(t, out, "2h 28m")
	assert.Contains(t, out, "$160,000,000")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "Leonardo DiCaprio as Cobb")
	assert.Contains(t, out, "https://www.youtube.com/watch?v=YoHD9XEInc0")
}

func TestDetail_Errors(t *testing.T) {
	_, _, err := run(t, "detail", "abc")
	assert.Error(t, err)

	_, _, err = run(t, "detail", "1")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
