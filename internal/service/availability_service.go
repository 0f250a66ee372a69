package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/internal/provider"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type availabilityProvider interface {
	Name() string
	Configured() bool
	ListSlots(ctx context.Context, window provider.Window) ([]models.TimeSlot, error)
}

type mockSlotLister interface {
	ListSlots(ctx context.Context, window provider.Window) ([]models.TimeSlot, error)
}

// Availability is the slot listing plus a flag marking synthetic data. The
// flag is only ever true when the mock fallback is explicitly enabled.
type Availability struct {
	Slots []models.TimeSlot
	Mock  bool
}

// AvailabilityService fetches open slots over a bounded forward window.
//
// Fallback policy: synthetic slots are served only when AllowMockFallback is
// set; otherwise a missing or failing provider surfaces a structured error.
// Production is expected to run with the flag off.
type AvailabilityService struct {
	provider availabilityProvider
	mock     mockSlotLister
	cfg      config.SchedulingConfig
	metrics  *MetricsService
	logger   *zap.Logger

	now func() time.Time
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(p availabilityProvider, mock mockSlotLister, cfg config.SchedulingConfig, metrics *MetricsService, logger *zap.Logger) *AvailabilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		provider: p,
		mock:     mock,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Window returns the query bounds: offset into the future by the configured
// lead time so immediately-expiring slots are excluded, ending WindowDays out.
func (s *AvailabilityService) Window() provider.Window {
	now := s.now().UTC()
	return provider.Window{
		Start: now.Add(s.cfg.LeadTime),
		End:   now.AddDate(0, 0, s.cfg.WindowDays),
	}
}

// List fetches slots from the configured provider, ordered by start time.
func (s *AvailabilityService) List(ctx context.Context) (*Availability, error) {
	window := s.Window()

	if !s.provider.Configured() {
		if s.cfg.AllowMockFallback {
			s.logger.Warn("scheduling provider not configured, serving mock slots",
				zap.String("provider", s.provider.Name()))
			return s.mockSlots(ctx, window)
		}
		s.logger.Error("scheduling provider not configured", zap.String("provider", s.provider.Name()))
		return nil, appErrors.ErrUpstreamConfig
	}

	start := time.Now()
	slots, err := s.provider.ListSlots(ctx, window)
	s.metrics.ObserveUpstreamCall(s.provider.Name(), time.Since(start), err != nil)
	if err != nil {
		s.logger.Error("availability fetch failed",
			zap.String("provider", s.provider.Name()), zap.Error(err))
		if s.cfg.AllowMockFallback {
			return s.mockSlots(ctx, window)
		}
		return nil, err
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return &Availability{Slots: slots}, nil
}

func (s *AvailabilityService) mockSlots(ctx context.Context, window provider.Window) (*Availability, error) {
	slots, err := s.mock.ListSlots(ctx, window)
	if err != nil {
		return nil, err
	}
	return &Availability{Slots: slots, Mock: true}, nil
}
