package provider

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
)

// Mock serves deterministic synthetic slots so the booking UI stays
// exercisable without provider credentials. It is only reachable when the
// mock fallback flag is set; responses built from it are flagged as mock at
// the boundary.
type Mock struct {
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewMock builds the synthetic provider.
func NewMock() *Mock {
	return &Mock{Now: time.Now}
}

func (p *Mock) Name() string { return "mock" }

func (p *Mock) Configured() bool { return true }

// ListSlots returns one 30-minute slot at 14:00 UTC for each of the next six
// days.
func (p *Mock) ListSlots(ctx context.Context, window Window) ([]models.TimeSlot, error) {
	now := p.Now().UTC()
	slots := make([]models.TimeSlot, 0, 6)
	for i := 1; i <= 6; i++ {
		day := now.AddDate(0, 0, i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 14, 0, 0, 0, time.UTC)
		slots = append(slots, models.TimeSlot{
			StartTime:         start.Format(time.RFC3339),
			EndTime:           start.Add(30 * time.Minute).Format(time.RFC3339),
			InviteesRemaining: 1,
		})
	}
	return slots, nil
}

// CreateBooking fabricates a confirmed booking for the requested slot.
func (p *Mock) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	return &models.Booking{
		URI:          "mock://bookings/" + uuid.NewString(),
		Status:       "active",
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		InviteeName:  req.Name,
		InviteeEmail: req.Email,
	}, nil
}
