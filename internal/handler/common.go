package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"movieflix/internal/catalog"
	"movieflix/internal/model"
	"movieflix/internal/service"
	"movieflix/internal/session"
	"movieflix/internal/view"

	"github.com/gin-gonic/gin"
)

// ViewSource returns the listing view of a visitor
type ViewSource interface {
	Get(visitorID string) *catalog.View
}

// MovieSource loads a single movie
type MovieSource interface {
	MovieDetail(ctx context.Context, id int) (*model.MovieDetail, error)
}

// Authenticator checks credentials against the login backend
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// UserStore persists the logged-in user of a visitor
type UserStore interface {
	Save(ctx context.Context, visitorID string, user *model.User) error
	Clear(ctx context.Context, visitorID string) error
}

// layoutFor builds the page header data for the current visitor
func layoutFor(c *gin.Context, title string) view.Layout {
	return view.Layout{
		Title:    title,
		Username: session.From(c).Username(),
	}
}

// renderError renders the error page with status
func renderError(c *gin.Context, status int, heading, message string) {
	c.HTML(status, view.PageError, view.ErrorPage{
		Layout:  layoutFor(c, heading),
		Heading: heading,
		Message: message,
	})
}

func visitorID(c *gin.Context) string {
	return session.From(c).VisitorID
}

// loadedView returns the visitor's view, running its initial load on first use
func loadedView(c *gin.Context, views ViewSource) *catalog.View {
	v := views.Get(visitorID(c))
	if !v.Loaded() {
		v.Load(c.Request.Context())
	}
	return v
}

// applyPage moves a view to the page named by to: "next", "prev" or a page number
func applyPage(v *catalog.View, to string) error {
	switch strings.ToLower(strings.TrimSpace(to)) {
	case "next":
		v.NextPage()
	case "prev", "previous":
		v.PrevPage()
	default:
		n, err := strconv.Atoi(to)
		if err != nil {
			return fmt.Errorf("invalid page %q", to)
		}
		v.GoToPage(n)
	}
	return nil
}

// parseMovieID parses a positive TMDB movie id
func parseMovieID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// heading names the list a view currently shows
func heading(s catalog.ViewState) string {
	switch s.Query.Mode {
	case catalog.ModeSearch:
		return fmt.Sprintf("Results for %q", s.Query.SearchTerm)
	case catalog.ModePopular:
		return "Popular Movies"
	default:
		return "All Movies"
	}
}

// redirectHome sends the browser back to the listing after a state change
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
