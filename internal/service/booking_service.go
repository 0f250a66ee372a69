package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/internal/provider"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type bookingProvider interface {
	Name() string
	Configured() bool
	CreateBooking(ctx context.Context, req provider.BookingRequest) (*models.Booking, error)
}

type storyWriter interface {
	Insert(ctx context.Context, story *models.Story) (int64, error)
}

var (
	nonDigits        = regexp.MustCompile(`\D`)
	contactValidator = validator.New()
)

// BookingService validates a submission and forwards it to the scheduling
// provider. The remote booking is the source of truth: on success a local
// story copy is written best-effort, and a failure there is logged but never
// surfaced. The provider call itself is single-attempt and not idempotent,
// so nothing here retries.
type BookingService struct {
	provider  bookingProvider
	stories   storyWriter
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewBookingService constructs the service.
func NewBookingService(p bookingProvider, stories storyWriter, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		provider:  p,
		stories:   stories,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
	}
}

// Book validates the request and creates the booking upstream. Validation
// failures are reported before any external call is made.
func (s *BookingService) Book(ctx context.Context, req dto.BookingRequest) (*models.Booking, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if !s.provider.Configured() {
		s.logger.Error("booking rejected: scheduling provider not configured")
		return nil, appErrors.Clone(appErrors.ErrUpstreamConfig, "scheduling is not configured, please contact support")
	}

	start := time.Now()
	booking, err := s.provider.CreateBooking(ctx, provider.BookingRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		School:    strings.TrimSpace(req.School),
		Grades:    strings.TrimSpace(req.Grades),
		Role:      strings.TrimSpace(req.Role),
		AIUsage:   strings.TrimSpace(req.AIUsage),
	})
	s.metrics.ObserveUpstreamCall(s.provider.Name(), time.Since(start), err != nil)
	if err != nil {
		s.logger.Error("booking failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, err
	}

	s.persistCopy(ctx, req)

	return booking, nil
}

// persistCopy writes the local story record after a successful booking.
// Best-effort only: the booking already exists upstream.
func (s *BookingService) persistCopy(ctx context.Context, req dto.BookingRequest) {
	if s.stories == nil || strings.TrimSpace(req.AIUsage) == "" {
		return
	}
	story := &models.Story{
		Story:  strings.TrimSpace(req.AIUsage),
		Name:   strings.TrimSpace(req.Name),
		Email:  optional(req.Email),
		Phone:  optional(req.Phone),
		School: optional(req.School),
		Grades: optional(req.Grades),
		Role:   optional(req.Role),
	}
	if _, err := s.stories.Insert(ctx, story); err != nil {
		s.logger.Warn("failed to persist local story copy after booking", zap.Error(err))
	}
}

func (s *BookingService) validate(req dto.BookingRequest) error {
	// Trim before checking required fields so whitespace-only values fail.
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "missing required booking information")
	}

	startAt, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must be an ISO-8601 timestamp")
	}
	endAt, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be an ISO-8601 timestamp")
	}
	if !startAt.Before(endAt) {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}

	return validateContact(req.Email, req.Phone)
}

// validateContact enforces the canonical policy: at least one of email or
// phone, with format checks on whichever is present. No placeholder emails
// are ever synthesized for phone-only submissions.
func validateContact(email, phone string) error {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if email == "" && phone == "" {
		return appErrors.Clone(appErrors.ErrValidation, "either email or phone must be provided")
	}
	if email != "" {
		if err := contactValidator.Var(email, "email"); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "please enter a valid email address")
		}
	}
	if phone != "" {
		digits := nonDigits.ReplaceAllString(phone, "")
		if len(digits) < 10 || len(digits) > 15 {
			return appErrors.Clone(appErrors.ErrValidation, "please enter a valid phone number (10-15 digits)")
		}
	}
	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
