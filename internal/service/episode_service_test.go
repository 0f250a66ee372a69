package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/lshepard/theaiwhotaughtme/pkg/errors"
)

type feedFetcherStub struct {
	body  []byte
	err   error
	calls int
}

func (f *feedFetcherStub) FetchRaw(ctx context.Context) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

// feedCacheStub is an in-memory stand-in for the redis cache repository. It
// round-trips values through JSON the same way the real one does.
type feedCacheStub struct {
	entries map[string][]byte
	setErr  error
}

func newFeedCacheStub() *feedCacheStub {
	return &feedCacheStub{entries: map[string][]byte{}}
}

func (c *feedCacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *feedCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

const episodeFeedSample = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>The AI Who Taught Me</title>
    <item>
      <title>Grading with a copilot</title>
      <description><![CDATA[<p>A teacher on feedback loops.</p>]]></description>
      <pubDate>Mon, 04 Aug 2025 08:00:00 +0000</pubDate>
      <guid>ep-42</guid>
      <enclosure url="https://cdn.example.com/ep42.mp3" type="audio/mpeg"/>
      <itunes:duration>31:05</itunes:duration>
    </item>
  </channel>
</rss>`

func TestEpisodesParsesAndCaches(t *testing.T) {
	fetcher := &feedFetcherStub{body: []byte(episodeFeedSample)}
	cache := newFeedCacheStub()
	svc := NewEpisodeService(fetcher, cache, 15*time.Minute, nil, nil)

	episodes := svc.Episodes(context.Background())
	require.Len(t, episodes, 1)
	assert.Equal(t, "Grading with a copilot", episodes[0].Title)
	assert.Equal(t, "https://cdn.example.com/ep42.mp3", episodes[0].AudioURL)
	assert.Equal(t, 1, fetcher.calls)

	// Second read must come from cache.
	episodes = svc.Episodes(context.Background())
	require.Len(t, episodes, 1)
	assert.Equal(t, 1, fetcher.calls)
}

func TestEpisodesEmptyOnFetchFailure(t *testing.T) {
	fetcher := &feedFetcherStub{err: errors.New("connection refused")}
	svc := NewEpisodeService(fetcher, newFeedCacheStub(), 15*time.Minute, nil, nil)

	episodes := svc.Episodes(context.Background())
	assert.NotNil(t, episodes)
	assert.Empty(t, episodes)
}

func TestEpisodesEmptyOnMalformedFeed(t *testing.T) {
	fetcher := &feedFetcherStub{body: []byte("<rss><channel><item>")}
	svc := NewEpisodeService(fetcher, newFeedCacheStub(), 15*time.Minute, nil, nil)

	episodes := svc.Episodes(context.Background())
	assert.Empty(t, episodes)
}

func TestRawFeedCachesUpstreamBody(t *testing.T) {
	fetcher := &feedFetcherStub{body: []byte(episodeFeedSample)}
	cache := newFeedCacheStub()
	svc := NewEpisodeService(fetcher, cache, 15*time.Minute, nil, nil)

	raw, err := svc.RawFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, episodeFeedSample, string(raw))

	_, err = svc.RawFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)
}

func TestRawFeedUpstreamError(t *testing.T) {
	fetcher := &feedFetcherStub{err: errors.New("timeout")}
	svc := NewEpisodeService(fetcher, newFeedCacheStub(), 15*time.Minute, nil, nil)

	_, err := svc.RawFeed(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestEpisodesWithoutCacheStillServes(t *testing.T) {
	fetcher := &feedFetcherStub{body: []byte(episodeFeedSample)}
	svc := NewEpisodeService(fetcher, nil, 15*time.Minute, nil, nil)

	episodes := svc.Episodes(context.Background())
	require.Len(t, episodes, 1)

	// No cache means every read hits upstream.
	svc.Episodes(context.Background())
	assert.Equal(t, 2, fetcher.calls)
}
