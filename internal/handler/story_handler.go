package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

type storyService interface {
	Submit(ctx context.Context, req dto.SubmitStoryRequest) (*models.Story, error)
	SubmitLegacy(ctx context.Context, req dto.LegacySubmitStoryRequest) (*models.Story, error)
	List(ctx context.Context) ([]models.Story, error)
	GetByID(ctx context.Context, id int64) (*models.Story, error)
}

// StoryHandler exposes story submission and reads, including the basic-auth
// gated admin listing.
type StoryHandler struct {
	service storyService
}

// NewStoryHandler builds a new handler.
func NewStoryHandler(service storyService) *StoryHandler {
	return &StoryHandler{service: service}
}

// Submit godoc
// @Summary Submit a teacher story from the multi-step form
// @Tags Stories
// @Accept json
// @Produce json
// @Param payload body dto.SubmitStoryRequest true "Story payload"
// @Success 200 {object} map[string]interface{}
// @Router /stories/submit [post]
func (h *StoryHandler) Submit(c *gin.Context) {
	var req dto.SubmitStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid story payload"))
		return
	}
	story, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": story.ID, "message": "thank you for sharing your story"})
}

// SubmitLegacy godoc
// @Summary Submit a teacher story from the single-page form
// @Tags Stories
// @Accept json
// @Produce json
// @Param payload body dto.LegacySubmitStoryRequest true "Story payload"
// @Success 201 {object} map[string]interface{}
// @Router /submit-story [post]
func (h *StoryHandler) SubmitLegacy(c *gin.Context) {
	var req dto.LegacySubmitStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid story payload"))
		return
	}
	story, err := h.service.SubmitLegacy(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"id": story.ID})
}

// Get godoc
// @Summary Fetch a single story
// @Tags Stories
// @Produce json
// @Param id path int true "Story ID"
// @Success 200 {object} map[string]interface{}
// @Router /stories/{id} [get]
func (h *StoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "story id must be numeric"))
		return
	}
	story, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"story": story})
}

// AdminList godoc
// @Summary List all stories (admin)
// @Tags Admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/stories [get]
func (h *StoryHandler) AdminList(c *gin.Context) {
	stories, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stories": stories})
}
