package view

import "movieflix/internal/model"

const (
	castLimit    = 6
	similarLimit = 4
)

// Trailer returns the first YouTube trailer of a movie, or nil
func Trailer(m *model.MovieDetail) *model.Video {
	for i := range m.Videos.Results {
		v := &m.Videos.Results[i]
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return v
		}
	}
	return nil
}

// TopCast returns the first billed cast members
func TopCast(m *model.MovieDetail) []model.CastMember {
	return head(m.Credits.Cast, castLimit)
}

// Similar returns the first similar movies
func Similar(m *model.MovieDetail) []model.MovieSummary {
	return head(m.Similar.Results, similarLimit)
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
