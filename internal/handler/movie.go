package handler

import (
	"errors"
	"net/http"

	"movieflix/internal/model"
	"movieflix/internal/service"
	"movieflix/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MovieHandler serves movie detail pages
type MovieHandler struct {
	movies MovieSource
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(movies MovieSource) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// lookup loads the movie named by the :id param, mapping failures to a status
func (h *MovieHandler) lookup(c *gin.Context) (*model.MovieDetail, int, string) {
	id, ok := parseMovieID(c.Param("id"))
	if !ok {
		return nil, http.StatusNotFound, "Movie not found"
	}

	movie, err := h.movies.MovieDetail(c.Request.Context(), id)
	switch {
	case err == nil:
		return movie, http.StatusOK, ""
	case errors.Is(err, service.ErrMovieNotFound):
		return nil, http.StatusNotFound, "Movie not found"
	default:
		log.Warn().Err(err).Int("id", id).Msg("Failed to load movie detail")
		return nil, http.StatusBadGateway, "Failed to load movie details"
	}
}

// Detail renders a movie page
// GET /movies/:id
func (h *MovieHandler) Detail(c *gin.Context) {
	movie, status, msg := h.lookup(c)
	if movie == nil {
		renderError(c, status, msg, "")
		return
	}
	c.HTML(http.StatusOK, view.PageDetail, view.NewDetailPage(layoutFor(c, ""), movie))
}

// GetDetail returns a movie as JSON
// GET /api/v1/movies/:id
func (h *MovieHandler) GetDetail(c *gin.Context) {
	movie, status, msg := h.lookup(c)
	if movie == nil {
		c.JSON(status, model.APIResponse{
			Code:  status,
			Error: msg,
		})
		return
	}
	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: movie,
	})
}
