// Package feed fetches and parses the upstream podcast RSS feed.
package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lshepard/theaiwhotaughtme/internal/models"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
)

// rssDocument mirrors the subset of the feed the site renders. The itunes
// namespace has to be spelled out in the tags; encoding/xml cannot take it
// from a constant.
type rssDocument struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string `xml:"title"`
		Image struct {
			URL string `xml:"url"`
		} `xml:"image"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Summary     string `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd summary"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Duration    string `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd duration"`
	Enclosure   struct {
		URL string `xml:"url,attr"`
	} `xml:"enclosure"`
	Image struct {
		Href string `xml:"href,attr"`
	} `xml:"http://www.itunes.com/dtds/podcast-1.0.dtd image"`
}

// Fetcher retrieves the upstream feed over HTTP with a bounded timeout.
type Fetcher struct {
	url string
	hc  *http.Client
}

// NewFetcher builds a fetcher for the configured feed URL.
func NewFetcher(cfg config.FeedConfig, timeout time.Duration) *Fetcher {
	return &Fetcher{
		url: cfg.URL,
		hc:  &http.Client{Timeout: timeout},
	}
}

// FetchRaw returns the feed body exactly as served upstream, for proxying.
func (f *Fetcher) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected feed status code: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return raw, nil
}

var stripPolicy = bluemonday.StrictPolicy()

// Parse converts raw RSS into the episode list, tolerating missing fields.
func Parse(raw []byte) ([]models.Episode, error) {
	var doc rssDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	episodes := make([]models.Episode, 0, len(doc.Channel.Items))
	for _, item := range doc.Channel.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = "Untitled Episode"
		}

		description := item.Description
		if description == "" {
			description = item.Summary
		}

		imageURL := item.Image.Href
		if imageURL == "" {
			imageURL = doc.Channel.Image.URL
		}

		episodes = append(episodes, models.Episode{
			Title:       title,
			Description: sanitize(description),
			AudioURL:    item.Enclosure.URL,
			PubDate:     item.PubDate,
			Duration:    item.Duration,
			ImageURL:    imageURL,
			Link:        item.Link,
			GUID:        item.GUID,
		})
	}

	return episodes, nil
}

// Removes all html tags from the string and caps its length so a runaway
// description does not dominate the listing payload.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = stripPolicy.Sanitize(s)
	if len(s) > 2048 {
		s = s[:2048]
		// Back off to a rune boundary so the cap never splits a
		// multi-byte character.
		for len(s) > 0 && !utf8.ValidString(s) {
			s = s[:len(s)-1]
		}
	}

	return s
}
