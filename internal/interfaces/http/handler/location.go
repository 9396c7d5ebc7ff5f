package handler

import (
	"context"
	"errors"

	"github.com/towntreasure/backend/internal/domain/ordering"
	"github.com/gin-gonic/gin"
)

// LocationHandler handles address lookup endpoints
type LocationHandler struct {
	BaseHandler
	searcher ordering.LocationSearcher
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(searcher ordering.LocationSearcher) *LocationHandler {
	return &LocationHandler{searcher: searcher}
}

// RegisterRoutes registers location routes
func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/locations")
	{
		locations.GET("/search", h.Search)
		locations.GET("/presets", h.Presets)
	}
}

// Search returns candidate delivery locations for a free-text query.
// Short queries return an empty list; a request superseded by a newer
// one returns 204 so the client simply drops the stale result.
func (h *LocationHandler) Search(c *gin.Context) {
	query := c.Query("q")

	results, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			h.NoContent(c)
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Presets returns the fixed delivery locations
func (h *LocationHandler) Presets(c *gin.Context) {
	h.Success(c, ordering.PresetLocations())
}
