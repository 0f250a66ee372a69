package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshepard/theaiwhotaughtme/pkg/config"
)

func testCalcom(t *testing.T, handler http.HandlerFunc) (*Calcom, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	p := NewCalcom(config.SchedulingConfig{
		CalcomAPIKey:      "cal_live_123",
		CalcomEventTypeID: 77,
		CalcomDuration:    30 * time.Minute,
		UpstreamTimeout:   5 * time.Second,
	}, nil)
	p.baseURL = srv.URL
	return p, srv.Close
}

func TestCalcomListSlotsFlattensAndSorts(t *testing.T) {
	p, done := testCalcom(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/slots/available", r.URL.Path)
		assert.Equal(t, "77", r.URL.Query().Get("eventTypeId"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"slots": map[string]interface{}{
					"2026-09-02": []map[string]string{{"time": "2026-09-02T15:00:00Z"}},
					"2026-09-01": []map[string]string{
						{"time": "2026-09-01T14:00:00Z"},
						{"time": "2026-09-01T16:00:00Z"},
					},
				},
			},
		})
	})
	defer done()

	slots, err := p.ListSlots(context.Background(), Window{Start: time.Now(), End: time.Now().Add(48 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "2026-09-01T14:00:00Z", slots[0].StartTime)
	assert.Equal(t, "2026-09-01T14:30:00Z", slots[0].EndTime)
	assert.Equal(t, "2026-09-02T15:00:00Z", slots[2].StartTime)
	for _, s := range slots {
		assert.Equal(t, 1, s.InviteesRemaining)
	}
}

func TestCalcomCreateBooking(t *testing.T) {
	var payload calcomBookingPayload
	p, done := testCalcom(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "Bearer cal_live_123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"uid":    "bk_123",
				"status": "accepted",
				"start":  payload.Start,
				"end":    "2026-09-01T14:30:00Z",
			},
		})
	})
	defer done()

	booking, err := p.CreateBooking(context.Background(), BookingRequest{
		StartTime: "2026-09-01T14:00:00Z",
		EndTime:   "2026-09-01T14:30:00Z",
		Name:      "Jane Doe",
		Email:     "jane@school.edu",
		School:    "Lincoln HS",
	})
	require.NoError(t, err)
	assert.Equal(t, "accepted", booking.Status)
	assert.Equal(t, "2026-09-01T14:00:00Z", booking.StartTime)
	assert.Contains(t, booking.URI, "/bookings/bk_123")

	assert.Equal(t, 77, payload.EventTypeID)
	assert.Equal(t, "Jane Doe", payload.Responses["name"])
	assert.Equal(t, "Lincoln HS", payload.Metadata["school"])
}

func TestMockListSlotsDeterministic(t *testing.T) {
	p := NewMock()
	p.Now = func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	}

	slots, err := p.ListSlots(context.Background(), Window{})
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, "2026-08-31T14:00:00Z", slots[0].StartTime)
	assert.Equal(t, "2026-08-31T14:30:00Z", slots[0].EndTime)
	assert.Equal(t, "2026-09-05T14:00:00Z", slots[5].StartTime)
	for _, s := range slots {
		assert.Equal(t, 1, s.InviteesRemaining)
	}

	again, err := p.ListSlots(context.Background(), Window{})
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}
