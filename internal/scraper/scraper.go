package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"imdb-top250/internal/model"
)

// DefaultUserAgent is sent with every request so the chart page is served as
// it would be to a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

var (
	// ErrDataNotFound is returned when the page has no JSON-LD script tag.
	ErrDataNotFound = errors.New("could not find the JSON data in the script tag")

	// ErrNoItems is returned when the JSON-LD payload has no itemListElement entries.
	ErrNoItems = errors.New("no movies found in the JSON data")
)

// HTTPStatusError is returned when the server answers with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Scraper defines the interface that all chart scrapers must implement.
type Scraper interface {
	// Name returns the human-readable name of this scraper's source.
	Name() string

	// URL returns the page this scraper reads.
	URL() string

	// Fetch retrieves the ranked movies from this source.
	Fetch(ctx context.Context) ([]model.Movie, error)
}

// Fetcher retrieves the raw body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches pages with a plain HTTP GET.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates a fetcher that sends userAgent with every request.
// An empty userAgent falls back to DefaultUserAgent.
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := resty.New().SetHeader("User-Agent", userAgent)
	return &HTTPFetcher{client: client}
}

// Fetch fetches the content of a URL and returns the response body as bytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}
