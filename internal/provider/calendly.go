package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

const calendlyBaseURL = "https://api.calendly.com"

// eventTypeURIPrefix guards against a copy-pasted scheduling link being used
// where the API expects an event type resource URI.
const eventTypeURIPrefix = "https://api.calendly.com/event_types/"

// Calendly adapts the Calendly v2 API to the Provider interface.
type Calendly struct {
	token        string
	eventTypeURI string
	baseURL      string
	hc           *http.Client
	logger       *zap.Logger
}

// NewCalendly builds the adapter from scheduling config.
func NewCalendly(cfg config.SchedulingConfig, logger *zap.Logger) *Calendly {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calendly{
		token:        cfg.CalendlyAPIToken,
		eventTypeURI: cfg.CalendlyEventTypeURI,
		baseURL:      calendlyBaseURL,
		hc:           &http.Client{Timeout: cfg.UpstreamTimeout},
		logger:       logger,
	}
}

func (p *Calendly) Name() string { return "calendly" }

// Configured reports whether credentials are present and shaped correctly.
func (p *Calendly) Configured() bool {
	return p.token != "" && strings.HasPrefix(p.eventTypeURI, eventTypeURIPrefix)
}

type calendlySlot struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	InviteesRemaining int    `json:"invitees_remaining"`
}

type calendlyAvailability struct {
	Collection []calendlySlot `json:"collection"`
}

// ListSlots queries event_type_available_times for the window.
func (p *Calendly) ListSlots(ctx context.Context, window Window) ([]models.TimeSlot, error) {
	if !p.Configured() {
		return nil, appErrors.ErrUpstreamConfig
	}

	q := url.Values{}
	q.Set("event_type", p.eventTypeURI)
	q.Set("start_time", window.Start.UTC().Format(time.RFC3339))
	q.Set("end_time", window.End.UTC().Format(time.RFC3339))

	body, err := p.do(ctx, http.MethodGet, "/event_type_available_times?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var avail calendlyAvailability
	if err := json.Unmarshal(body, &avail); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected availability payload")
	}

	slots := make([]models.TimeSlot, 0, len(avail.Collection))
	for _, s := range avail.Collection {
		remaining := s.InviteesRemaining
		if remaining <= 0 {
			remaining = 1
		}
		slots = append(slots, models.TimeSlot{
			StartTime:         s.StartTime,
			EndTime:           s.EndTime,
			InviteesRemaining: remaining,
		})
	}
	return slots, nil
}

type calendlyInvitee struct {
	Name                string                   `json:"name"`
	Email               string                   `json:"email"`
	FirstName           string                   `json:"first_name"`
	LastName            string                   `json:"last_name"`
	PhoneNumber         string                   `json:"phone_number,omitempty"`
	QuestionsAndAnswers []calendlyQuestionAnswer `json:"questions_and_answers,omitempty"`
}

type calendlyQuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type calendlyBookingPayload struct {
	EventType string          `json:"event_type"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Invitee   calendlyInvitee `json:"invitee"`
}

type calendlyBookingResponse struct {
	Resource struct {
		URI       string `json:"uri"`
		Status    string `json:"status"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	} `json:"resource"`
}

// CreateBooking posts a scheduled event. Single attempt; a partial upstream
// success cannot be detected, so callers must not resubmit automatically.
func (p *Calendly) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if !p.Configured() {
		return nil, appErrors.ErrUpstreamConfig
	}

	first, last := splitName(req.Name)
	payload := calendlyBookingPayload{
		EventType: p.eventTypeURI,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Invitee: calendlyInvitee{
			Name:        req.Name,
			Email:       req.Email,
			FirstName:   first,
			LastName:    last,
			PhoneNumber: req.Phone,
			QuestionsAndAnswers: questionAnswers(map[string]string{
				"School":        req.School,
				"Grades Taught": req.Grades,
				"Role":          req.Role,
			}),
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	body, err := p.do(ctx, http.MethodPost, "/scheduled_events", raw)
	if err != nil {
		return nil, err
	}

	var resp calendlyBookingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected booking payload")
	}

	return &models.Booking{
		URI:          resp.Resource.URI,
		Status:       resp.Resource.Status,
		StartTime:    resp.Resource.StartTime,
		EndTime:      resp.Resource.EndTime,
		InviteeName:  req.Name,
		InviteeEmail: req.Email,
	}, nil
}

func (p *Calendly) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err, "calendly request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr(err, "calendly response read failed")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		p.logger.Warn("calendly error response",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.ByteString("body", raw),
		)
		return nil, appErrors.Wrap(fmt.Errorf("calendly status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	return raw, nil
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", "N/A"
	}
	if len(parts) == 1 {
		return parts[0], "N/A"
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func questionAnswers(answers map[string]string) []calendlyQuestionAnswer {
	ordered := []string{"School", "Grades Taught", "Role"}
	result := make([]calendlyQuestionAnswer, 0, len(ordered))
	for _, q := range ordered {
		answer := answers[q]
		if answer == "" {
			answer = "N/A"
		}
		result = append(result, calendlyQuestionAnswer{Question: q, Answer: answer})
	}
	return result
}
