package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
	"github.com/lshepard/theaiwhotaughtme/pkg/response"
)

type bookingService interface {
	Book(ctx context.Context, req dto.BookingRequest) (*models.Booking, error)
}

// BookingHandler exposes appointment creation.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler builds a new handler.
func NewBookingHandler(service bookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create godoc
// @Summary Book an interview slot
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.BookingRequest true "Booking payload"
// @Success 200 {object} map[string]interface{}
// @Router /booking [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	booking, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"booking": booking})
}
