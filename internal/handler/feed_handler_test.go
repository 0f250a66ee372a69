package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type episodeServiceMock struct {
	episodes []models.Episode
	raw      []byte
	rawErr   error
}

func (m *episodeServiceMock) Episodes(ctx context.Context) []models.Episode {
	return m.episodes
}

func (m *episodeServiceMock) RawFeed(ctx context.Context) ([]byte, error) {
	return m.raw, m.rawErr
}

func TestFeedHandlerEpisodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFeedHandler(&episodeServiceMock{
		episodes: []models.Episode{{Title: "Pilot", AudioURL: "https://cdn.example.com/1.mp3"}},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/episodes", nil)
	c.Request = req

	handler.Episodes(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["episodes"], 1)
}

func TestFeedHandlerEpisodesEmptyStillOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFeedHandler(&episodeServiceMock{episodes: []models.Episode{}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/episodes", nil)
	c.Request = req

	handler.Episodes(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"episodes":[]`)
}

func TestFeedHandlerProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFeedHandler(&episodeServiceMock{raw: []byte(`<?xml version="1.0"?><rss/>`)})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/feed.xml", nil)
	c.Request = req

	handler.Feed(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Equal(t, "public, max-age=900", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "<rss/>")
}

func TestFeedHandlerProxyUpstreamError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewFeedHandler(&episodeServiceMock{
		rawErr: appErrors.Clone(appErrors.ErrUpstream, "error fetching RSS feed"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/feed.xml", nil)
	c.Request = req

	handler.Feed(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
