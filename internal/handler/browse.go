package handler

import (
	"net/http"

	"movieflix/internal/catalog"
	"movieflix/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BrowseHandler serves the HTML listing pages
type BrowseHandler struct {
	views ViewSource
}

// NewBrowseHandler creates a new BrowseHandler
func NewBrowseHandler(views ViewSource) *BrowseHandler {
	return &BrowseHandler{views: views}
}

// Home renders the current listing of the visitor
// GET /
func (h *BrowseHandler) Home(c *gin.Context) {
	v := loadedView(c, h.views)
	state := v.Snapshot()

	layout := layoutFor(c, "")
	layout.Category = state.Category.String()
	layout.Query = state.Query.SearchTerm

	c.HTML(http.StatusOK, view.PageHome, view.HomePage{
		Layout:      layout,
		Heading:     heading(state),
		IsLoading:   state.IsLoading,
		Page:        v.Page(),
		TopRated:    state.Recommended,
		Recommended: catalog.RandomSample(state.Movies, catalog.RecommendedCount),
		Picks:       catalog.RandomSample(state.Movies, catalog.PicksCount),
	})
}

// Category switches the visitor to a category
// GET /browse/category/:mode
func (h *BrowseHandler) Category(c *gin.Context) {
	mode, err := catalog.ParseCategory(c.Param("mode"))
	if err != nil {
		renderError(c, http.StatusNotFound, "Category not found", err.Error())
		return
	}

	v := h.views.Get(visitorID(c))
	v.SelectCategory(c.Request.Context(), mode)
	log.Debug().Str("category", mode.String()).Msg("📂 Category selected")
	redirectHome(c)
}

// Search runs a title search; a blank query reloads the active category
// GET /browse/search?q=
func (h *BrowseHandler) Search(c *gin.Context) {
	v := h.views.Get(visitorID(c))
	v.Search(c.Request.Context(), c.Query("q"))
	redirectHome(c)
}

// Page moves through the current list
// GET /browse/page/:to
func (h *BrowseHandler) Page(c *gin.Context) {
	v := loadedView(c, h.views)
	if err := applyPage(v, c.Param("to")); err != nil {
		renderError(c, http.StatusBadRequest, "Invalid page", err.Error())
		return
	}
	redirectHome(c)
}
