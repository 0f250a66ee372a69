package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

const calcomBaseURL = "https://api.cal.com/v2"

// Calcom adapts the Cal.com v2 API. Its slot payload groups start times by
// day and carries no end time or capacity, so both are derived locally: end
// is start plus the configured event duration and invitees_remaining is
// backfilled to 1.
type Calcom struct {
	apiKey      string
	eventTypeID int
	duration    time.Duration
	baseURL     string
	hc          *http.Client
	logger      *zap.Logger
}

// NewCalcom builds the adapter from scheduling config.
func NewCalcom(cfg config.SchedulingConfig, logger *zap.Logger) *Calcom {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calcom{
		apiKey:      cfg.CalcomAPIKey,
		eventTypeID: cfg.CalcomEventTypeID,
		duration:    cfg.CalcomDuration,
		baseURL:     calcomBaseURL,
		hc:          &http.Client{Timeout: cfg.UpstreamTimeout},
		logger:      logger,
	}
}

func (p *Calcom) Name() string { return "calcom" }

// Configured reports whether credentials are present.
func (p *Calcom) Configured() bool {
	return p.apiKey != "" && p.eventTypeID > 0
}

type calcomSlotsResponse struct {
	Data struct {
		Slots map[string][]struct {
			Time string `json:"time"`
		} `json:"slots"`
	} `json:"data"`
}

// ListSlots queries /slots/available and flattens the per-day grouping into
// one ascending sequence.
func (p *Calcom) ListSlots(ctx context.Context, window Window) ([]models.TimeSlot, error) {
	if !p.Configured() {
		return nil, appErrors.ErrUpstreamConfig
	}

	q := url.Values{}
	q.Set("eventTypeId", strconv.Itoa(p.eventTypeID))
	q.Set("startTime", window.Start.UTC().Format(time.RFC3339))
	q.Set("endTime", window.End.UTC().Format(time.RFC3339))

	body, err := p.do(ctx, http.MethodGet, "/slots/available?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var resp calcomSlotsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected availability payload")
	}

	var slots []models.TimeSlot
	for _, daySlots := range resp.Data.Slots {
		for _, s := range daySlots {
			start, err := time.Parse(time.RFC3339, s.Time)
			if err != nil {
				p.logger.Warn("skipping unparseable slot time", zap.String("time", s.Time))
				continue
			}
			slots = append(slots, models.TimeSlot{
				StartTime:         start.UTC().Format(time.RFC3339),
				EndTime:           start.Add(p.duration).UTC().Format(time.RFC3339),
				InviteesRemaining: 1,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

type calcomBookingPayload struct {
	EventTypeID int               `json:"eventTypeId"`
	Start       string            `json:"start"`
	TimeZone    string            `json:"timeZone"`
	Language    string            `json:"language"`
	Responses   map[string]string `json:"responses"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type calcomBookingResponse struct {
	Data struct {
		UID    string `json:"uid"`
		Status string `json:"status"`
		Start  string `json:"start"`
		End    string `json:"end"`
	} `json:"data"`
}

// CreateBooking posts to /bookings. Single attempt, no retry.
func (p *Calcom) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if !p.Configured() {
		return nil, appErrors.ErrUpstreamConfig
	}

	responses := map[string]string{
		"name":  req.Name,
		"email": req.Email,
	}
	if req.Phone != "" {
		responses["phone"] = req.Phone
	}
	metadata := map[string]string{}
	if req.School != "" {
		metadata["school"] = req.School
	}
	if req.Grades != "" {
		metadata["grades"] = req.Grades
	}
	if req.Role != "" {
		metadata["role"] = req.Role
	}

	payload := calcomBookingPayload{
		EventTypeID: p.eventTypeID,
		Start:       req.StartTime,
		TimeZone:    "UTC",
		Language:    "en",
		Responses:   responses,
		Metadata:    metadata,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	body, err := p.do(ctx, http.MethodPost, "/bookings", raw)
	if err != nil {
		return nil, err
	}

	var resp calcomBookingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected booking payload")
	}

	endTime := resp.Data.End
	if endTime == "" {
		endTime = req.EndTime
	}

	return &models.Booking{
		URI:          p.baseURL + "/bookings/" + resp.Data.UID,
		Status:       resp.Data.Status,
		StartTime:    resp.Data.Start,
		EndTime:      endTime,
		InviteeName:  req.Name,
		InviteeEmail: req.Email,
	}, nil
}

func (p *Calcom) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, classifyTransportErr(err, "cal.com request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportErr(err, "cal.com response read failed")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		p.logger.Warn("cal.com error response",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
			zap.ByteString("body", raw),
		)
		return nil, appErrors.Wrap(fmt.Errorf("cal.com status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	return raw, nil
}
