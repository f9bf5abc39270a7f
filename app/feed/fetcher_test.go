package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"rssdigest/app/cache"
	"rssdigest/app/config"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>First Post</title>
      <link>https://example.com/1</link>
      <description>&lt;p&gt;Short description&lt;/p&gt;</description>
      <content:encoded>&lt;p&gt;Full body text&lt;/p&gt;</content:encoded>
      <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/2</link>
      <description>Only a description</description>
    </item>
    <item>
      <title>No Link Post</title>
    </item>
  </channel>
</rss>`

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	return cache.NewStore(filepath.Join(t.TempDir(), "cache.json"))
}

func TestFetcher_Run_ParsesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher("Test Agent/1.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL, Category: "tech"}

	items, err := fetcher.Run(context.Background(), source, newTestStore(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// The entry without a link is skipped
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}

	if items[0].Title != "First Post" {
		t.Errorf("Expected title 'First Post', got '%s'", items[0].Title)
	}
	if items[0].URL != "https://example.com/1" {
		t.Errorf("Expected URL 'https://example.com/1', got '%s'", items[0].URL)
	}
	if items[0].FeedName != "Test Feed" {
		t.Errorf("Expected feed name 'Test Feed', got '%s'", items[0].FeedName)
	}
	if items[0].Category != "tech" {
		t.Errorf("Expected category 'tech', got '%s'", items[0].Category)
	}
	if items[0].Fingerprint != Fingerprint("https://example.com/1") {
		t.Errorf("Expected fingerprint derived from item URL, got '%s'", items[0].Fingerprint)
	}
	if items[0].Published == nil {
		t.Error("Expected published timestamp to be set")
	}
}

func TestFetcher_Run_ContentTakesPriorityOverDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher("Test Agent/1.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL}

	items, err := fetcher.Run(context.Background(), source, newTestStore(t))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if items[0].Body != "Full body text" {
		t.Errorf("Expected full content body, got '%s'", items[0].Body)
	}
	if items[1].Body != "Only a description" {
		t.Errorf("Expected description fallback, got '%s'", items[1].Body)
	}
}

func TestFetcher_Run_StoresValidators(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("Last-Modified", "Mon, 02 Jun 2025 10:00:00 GMT")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	store := newTestStore(t)
	fetcher := NewFetcher("Test Agent/1.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL}

	if _, err := fetcher.Run(context.Background(), source, store); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	validator, ok := store.Get(server.URL)
	if !ok {
		t.Fatal("Expected validator to be stored after a 200 response")
	}
	if validator.ETag != `"abc123"` {
		t.Errorf("Expected ETag '\"abc123\"', got '%s'", validator.ETag)
	}
	if validator.LastModified != "Mon, 02 Jun 2025 10:00:00 GMT" {
		t.Errorf("Expected Last-Modified to be stored, got '%s'", validator.LastModified)
	}
}

func TestFetcher_Run_NotModified(t *testing.T) {
	var gotETag string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotETag = r.Header.Get("If-None-Match")
		if gotETag != "" {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	store := newTestStore(t)
	store.Set(server.URL, cache.Validator{ETag: `"abc123"`})

	fetcher := NewFetcher("Test Agent/1.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL}

	items, err := fetcher.Run(context.Background(), source, store)
	if err != nil {
		t.Fatalf("Expected no error on 304, got %v", err)
	}
	if items != nil {
		t.Errorf("Expected no items on 304, got %d", len(items))
	}
	if gotETag != `"abc123"` {
		t.Errorf("Expected If-None-Match '\"abc123\"', got '%s'", gotETag)
	}
}

func TestFetcher_Run_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher("Test Agent/1.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL}

	if _, err := fetcher.Run(context.Background(), source, newTestStore(t)); err == nil {
		t.Error("Expected error on HTTP 500, got nil")
	}
}

func TestFetcher_Run_SetsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher("Custom Agent/2.0", 0)
	source := config.Source{Name: "Test Feed", URL: server.URL}

	if _, err := fetcher.Run(context.Background(), source, newTestStore(t)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotAgent != "Custom Agent/2.0" {
		t.Errorf("Expected User-Agent 'Custom Agent/2.0', got '%s'", gotAgent)
	}
}
