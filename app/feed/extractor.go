package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const maxExtractBytes = 2 << 20 // 2MB page cap

// Extractor fetches an article page and pulls its readable text. Used when a
// feed entry carries no usable body of its own.
type Extractor struct {
	client    *http.Client
	userAgent string
}

func NewExtractor(userAgent string, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Extractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

func (e *Extractor) Run(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExtractBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(data)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := Truncate(CleanHTML(article.TextContent), MaxBodyLength)
	if text == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	slog.Debug("Content extracted", "url", pageURL, "title", article.Title, "length", len(text))

	return text, nil
}
