package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

type episodeService interface {
	Episodes(ctx context.Context) []models.Episode
	RawFeed(ctx context.Context) ([]byte, error)
}

// FeedHandler serves the parsed episode list and the raw RSS proxy.
type FeedHandler struct {
	service episodeService
}

// NewFeedHandler builds a new handler.
func NewFeedHandler(service episodeService) *FeedHandler {
	return &FeedHandler{service: service}
}

// Episodes godoc
// @Summary List podcast episodes
// @Tags Episodes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /episodes [get]
func (h *FeedHandler) Episodes(c *gin.Context) {
	episodes := h.service.Episodes(c.Request.Context())
	response.OK(c, gin.H{"episodes": episodes})
}

// Feed proxies the upstream RSS document so podcast apps can subscribe via
// this domain. Served outside the API prefix as /feed.xml.
func (h *FeedHandler) Feed(c *gin.Context) {
	raw, err := h.service.RawFeed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=900")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", raw)
}
