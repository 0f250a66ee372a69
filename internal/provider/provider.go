// Package provider abstracts the external scheduling service behind a single
// normalized interface. Two wire formats have been observed in production
// (Calendly and Cal.com); each gets its own adapter so the rest of the system
// never sees provider-specific payload shapes.
package provider

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

// Window bounds an availability query.
type Window struct {
	Start time.Time
	End   time.Time
}

// BookingRequest carries the validated form fields forwarded to the provider.
// Times are ISO-8601 strings exactly as received from the availability call.
type BookingRequest struct {
	StartTime string
	EndTime   string
	Name      string
	Email     string
	Phone     string
	School    string
	Grades    string
	Role      string
	AIUsage   string
}

// Provider is the normalized scheduling capability. Both operations are
// single-attempt: CreateBooking is not idempotent and is never retried.
type Provider interface {
	Name() string
	Configured() bool
	ListSlots(ctx context.Context, window Window) ([]models.TimeSlot, error)
	CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error)
}

// classifyTransportErr maps transport failures onto the boundary taxonomy,
// keeping timeouts distinguishable from other upstream failures.
func classifyTransportErr(err error, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, appErrors.ErrUpstreamTimeout.Message)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return appErrors.Wrap(err, appErrors.ErrUpstreamTimeout.Code, appErrors.ErrUpstreamTimeout.Status, appErrors.ErrUpstreamTimeout.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, message)
}
