package scraper

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"

	"imdb-top250/internal/model"
)

const imdbSourceName = "IMDb Top 250"

// DefaultURL is the public IMDb Top 250 chart page.
const DefaultURL = "https://www.imdb.com/chart/top"

// IMDbScraper scrapes the IMDb Top 250 chart from its JSON-LD payload.
type IMDbScraper struct {
	url     string
	fetcher Fetcher
	logger  *slog.Logger
}

// NewIMDbScraper creates a new scraper for the IMDb Top 250 chart. An empty url
// uses the public chart page; a nil fetcher uses a plain HTTP fetcher.
func NewIMDbScraper(url string, fetcher Fetcher, logger *slog.Logger) *IMDbScraper {
	if url == "" {
		url = DefaultURL
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &IMDbScraper{url: url, fetcher: fetcher, logger: logger}
}

// Name returns the source name used for cache entries and Firestore documents.
func (s *IMDbScraper) Name() string {
	return imdbSourceName
}

// URL returns the chart page this scraper reads.
func (s *IMDbScraper) URL() string {
	return s.url
}

// Fetch downloads the chart page and extracts its movies in chart order.
func (s *IMDbScraper) Fetch(ctx context.Context) ([]model.Movie, error) {
	body, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "fetched chart page", "url", s.url, "size", humanize.Bytes(uint64(len(body))))

	payload, err := LocateJSONLD(body)
	if err != nil {
		return nil, err
	}

	entries, err := DecodeItemList(payload)
	if err != nil {
		return nil, err
	}

	movies := ExtractMovies(entries)
	s.logger.InfoContext(ctx, "extracted movies", "source", imdbSourceName, "count", len(movies))
	return movies, nil
}
