package view

import (
	"movieflix/internal/catalog"
	"movieflix/internal/model"
	"movieflix/internal/service"
)

// Layout carries what every page header needs
type Layout struct {
	Title    string
	Username string
	Query    string
	Category string
}

// HomePage is the listing page
type HomePage struct {
	Layout
	Heading     string
	IsLoading   bool
	Page        catalog.PageView
	TopRated    []model.MovieSummary
	Recommended []model.MovieSummary
	Picks       []model.MovieSummary
}

// DetailPage is the single movie page
type DetailPage struct {
	Layout
	Movie   *model.MovieDetail
	Trailer *model.Video
	Cast    []model.CastMember
	Similar []model.MovieSummary
}

// NewDetailPage derives the detail sections from a movie
func NewDetailPage(layout Layout, m *model.MovieDetail) DetailPage {
	layout.Title = m.Title
	return DetailPage{
		Layout:  layout,
		Movie:   m,
		Trailer: Trailer(m),
		Cast:    TopCast(m),
		Similar: Similar(m),
	}
}

// LoginPage is the login form with its field errors and backend message
type LoginPage struct {
	Layout
	Email   string
	Errors  service.ValidationErrors
	Message string
}

// LikedMovie is one entry of the management page
type LikedMovie struct {
	Title string
	Year  int
	Genre string
}

// ManagementPage lists the liked movies
type ManagementPage struct {
	Layout
	Liked []LikedMovie
}

// ErrorPage renders not-found and failure messages
type ErrorPage struct {
	Layout
	Heading string
	Message string
}
