package handler

import (
	"net/http"

	"movieflix/internal/view"

	"github.com/gin-gonic/gin"
)

// likedMovies is the fixed list shown on the management page
var likedMovies = []view.LikedMovie{
	{Title: "Inception", Year: 2010, Genre: "Sci-Fi"},
	{Title: "The Matrix", Year: 1999, Genre: "Action"},
	{Title: "Interstellar", Year: 2014, Genre: "Sci-Fi"},
	{Title: "The Dark Knight", Year: 2008, Genre: "Action"},
}

// Management renders the liked movies page
// GET /management
func Management(c *gin.Context) {
	c.HTML(http.StatusOK, view.PageManagement, view.ManagementPage{
		Layout: layoutFor(c, "Movie Management"),
		Liked:  likedMovies,
	})
}
