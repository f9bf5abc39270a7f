package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"rssdigest/app/cache"
	"rssdigest/app/config"
)

// DefaultFetchTimeout bounds every outbound feed request.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves and normalizes a single source, using HTTP conditional
// requests so unchanged sources cost one round-trip and no parsing.
type Fetcher struct {
	client       *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
}

func NewFetcher(userAgent string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 5,
			},
		},
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
	}
}

// Run fetches one source. A 304 Not Modified response yields no items and no
// error. Updated validator tokens are written back into store; persisting
// them is the caller's job at end of run.
func (f *Fetcher) Run(ctx context.Context, source config.Source, store *cache.Store) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	if validator, ok := store.Get(source.URL); ok {
		if validator.ETag != "" {
			req.Header.Set("If-None-Match", validator.ETag)
		}
		if validator.LastModified != "" {
			req.Header.Set("If-Modified-Since", validator.LastModified)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		slog.Debug("Source unchanged, skipping", "feed", source.Name)
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	store.Set(source.URL, cache.Validator{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	})

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	parsed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry == nil || entry.Link == "" {
			continue
		}
		items = append(items, normalizeEntry(entry, source))
	}

	return items, nil
}

// normalizeEntry converts one gofeed entry into an Item. Missing optional
// fields fall back to defaults rather than failing.
func normalizeEntry(entry *gofeed.Item, source config.Source) Item {
	// Content priority: full content body, else summary/description.
	body := cmp.Or(entry.Content, entry.Description)
	body = Truncate(CleanHTML(body), MaxBodyLength)

	var published *time.Time
	if entry.PublishedParsed != nil {
		published = entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		published = entry.UpdatedParsed
	}

	return Item{
		Title:       cmp.Or(entry.Title, "untitled"),
		URL:         entry.Link,
		Body:        body,
		Published:   published,
		FeedName:    source.Name,
		Category:    source.Category,
		Fingerprint: Fingerprint(entry.Link),
	}
}
