package handler

import (
	"net/http"

	"movieflix/internal/catalog"
	"movieflix/internal/model"

	"github.com/gin-gonic/gin"
)

// CatalogAPIHandler exposes the visitor's listing view as JSON
type CatalogAPIHandler struct {
	views ViewSource
}

// NewCatalogAPIHandler creates a new CatalogAPIHandler
func NewCatalogAPIHandler(views ViewSource) *CatalogAPIHandler {
	return &CatalogAPIHandler{views: views}
}

// CatalogResponse is the JSON form of a listing view
type CatalogResponse struct {
	Category    catalog.Mode         `json:"category"`
	Query       catalog.Query        `json:"query"`
	Heading     string               `json:"heading"`
	IsLoading   bool                 `json:"is_loading"`
	Page        catalog.PageView     `json:"page"`
	PageSize    int                  `json:"page_size"`
	TopRated    []model.MovieSummary `json:"top_rated"`
	Recommended []model.MovieSummary `json:"recommended"`
}

type categoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type pageRequest struct {
	To string `json:"to" binding:"required"`
}

func (h *CatalogAPIHandler) respond(c *gin.Context, v *catalog.View) {
	state := v.Snapshot()
	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Data: CatalogResponse{
			Category:    state.Category,
			Query:       state.Query,
			Heading:     heading(state),
			IsLoading:   state.IsLoading,
			Page:        v.Page(),
			PageSize:    state.PageSize,
			TopRated:    state.Recommended,
			Recommended: catalog.RandomSample(state.Movies, catalog.RecommendedCount),
		},
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.APIResponse{
		Code:  400,
		Error: msg,
	})
}

// GetCatalog returns the current listing
// GET /api/v1/catalog
func (h *CatalogAPIHandler) GetCatalog(c *gin.Context) {
	h.respond(c, loadedView(c, h.views))
}

// SelectCategory switches category
// POST /api/v1/catalog/category {"category":"popular"}
func (h *CatalogAPIHandler) SelectCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "category is required")
		return
	}
	mode, err := catalog.ParseCategory(req.Category)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	v := h.views.Get(visitorID(c))
	v.SelectCategory(c.Request.Context(), mode)
	h.respond(c, v)
}

// Search runs a title search
// POST /api/v1/catalog/search {"query":"matrix"}
func (h *CatalogAPIHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	v := h.views.Get(visitorID(c))
	v.Search(c.Request.Context(), req.Query)
	h.respond(c, v)
}

// ChangePage moves through the current list
// POST /api/v1/catalog/page {"to":"next"}
func (h *CatalogAPIHandler) ChangePage(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "to is required")
		return
	}

	v := loadedView(c, h.views)
	if err := applyPage(v, req.To); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.respond(c, v)
}
