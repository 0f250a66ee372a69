package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

type placesService interface {
	Search(ctx context.Context, input string) ([]dto.PlaceSuggestion, error)
}

// PlacesHandler proxies the school autocomplete search.
type PlacesHandler struct {
	service placesService
}

// NewPlacesHandler builds a new handler.
func NewPlacesHandler(service placesService) *PlacesHandler {
	return &PlacesHandler{service: service}
}

// Autocomplete godoc
// @Summary Autocomplete school names
// @Tags Places
// @Produce json
// @Param input query string true "Partial school name"
// @Success 200 {object} map[string]interface{}
// @Router /places/autocomplete [get]
func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	suggestions, err := h.service.Search(c.Request.Context(), c.Query("input"))
	if err != nil {
		response.Error(c, err)
		return
	}
	// The autocomplete widget expects a bare suggestions object, not the
	// success envelope.
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
