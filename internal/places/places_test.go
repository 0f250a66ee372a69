package places

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
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

func TestSearch(t *testing.T) {
	var payload searchTextPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-123", r.Header.Get("X-Goog-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"places": []map[string]interface{}{
				{
					"displayName":      map[string]string{"text": "Lincoln High School"},
					"formattedAddress": "100 Main St, Springfield",
				},
				{
					"formattedAddress": "no name here",
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(config.PlacesConfig{APIKey: "key-123"}, 5*time.Second, nil)
	c.baseURL = srv.URL

	suggestions, err := c.Search(context.Background(), "lincoln")
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Lincoln High School", suggestions[0].Name)
	assert.Equal(t, "100 Main St, Springfield", suggestions[0].FullAddress)
	assert.Equal(t, "Unknown School", suggestions[1].Name)

	assert.Equal(t, "lincoln", payload.TextQuery)
	assert.Equal(t, "school", payload.IncludedType)
	assert.Equal(t, 5, payload.MaxResultCount)
}

func TestSearchNotConfigured(t *testing.T) {
	c := NewClient(config.PlacesConfig{}, time.Second, nil)
	_, err := c.Search(context.Background(), "lincoln")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstreamConfig.Code, appErrors.FromError(err).Code)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(config.PlacesConfig{APIKey: "key"}, time.Second, nil)
	c.baseURL = srv.URL
	_, err := c.Search(context.Background(), "lincoln")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
