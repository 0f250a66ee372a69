// Package places proxies school-name autocomplete to the Google Places
// text-search API.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/lshepard/theaiwhotaughtme/internal/dto"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

const searchTextURL = "https://places.googleapis.com/v1/places:searchText"

// Client calls the Places searchText endpoint, constrained to schools.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// NewClient builds the places client.
func NewClient(cfg config.PlacesConfig, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: searchTextURL,
		hc:      &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type searchTextPayload struct {
	TextQuery      string `json:"textQuery"`
	IncludedType   string `json:"includedType"`
	MaxResultCount int    `json:"maxResultCount"`
}

type searchTextResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
	} `json:"places"`
}

// Search returns up to five school suggestions for the input text.
func (c *Client) Search(ctx context.Context, input string) ([]dto.PlaceSuggestion, error) {
	if !c.Configured() {
		return nil, appErrors.Clone(appErrors.ErrUpstreamConfig, "maps search is not configured")
	}

	payload, err := json.Marshal(searchTextPayload{
		TextQuery:      input,
		IncludedType:   "school",
		MaxResultCount: 5,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", "places.displayName,places.formattedAddress")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch suggestions")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch suggestions")
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("places error response", zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return nil, appErrors.Wrap(fmt.Errorf("places status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch suggestions")
	}

	var search searchTextResponse
	if err := json.Unmarshal(raw, &search); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch suggestions")
	}

	suggestions := make([]dto.PlaceSuggestion, 0, len(search.Places))
	for _, place := range search.Places {
		name := place.DisplayName.Text
		if name == "" {
			name = "Unknown School"
		}
		suggestions = append(suggestions, dto.PlaceSuggestion{
			Name:        name,
			FullAddress: place.FormattedAddress,
		})
	}
	return suggestions, nil
}
