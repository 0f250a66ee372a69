package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/internal/service"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

type availabilityService interface {
	List(ctx context.Context) (*service.Availability, error)
}

// AvailabilityHandler exposes the open-slot listing.
type AvailabilityHandler struct {
	service availabilityService
}

// NewAvailabilityHandler builds a new handler.
func NewAvailabilityHandler(service availabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// List godoc
// @Summary List open interview slots
// @Tags Scheduling
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	availability, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	fields := gin.H{"slots": availability.Slots}
	if availability.Mock {
		fields["mock"] = true
	}
	response.OK(c, fields)
}
