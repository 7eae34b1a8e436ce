package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"imdb-top250/internal/cache"
	"imdb-top250/internal/model"
	"imdb-top250/internal/output"
	"imdb-top250/internal/scraper"
)

// Publisher receives the movies of a completed run.
type Publisher interface {
	ReplaceMoviesForSource(ctx context.Context, source string, movies []model.Movie, batchID string) error
}

// Runner executes one scrape: fetch (or reuse a cached result), print, write
// files and optionally publish. Nothing is printed or written unless the
// whole chart was extracted.
type Runner struct {
	Scraper scraper.Scraper
	Writer  *output.Writer

	// Cache and Publisher are optional.
	Cache     *cache.Cache
	Publisher Publisher

	// Refresh drops the cached entry and scrapes again.
	Refresh bool

	Stdout io.Writer
	Format string
	Logger *slog.Logger

	now func() time.Time
}

// Run performs one scrape. Errors from the scraper are wrapped with its name.
func (r *Runner) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	name := r.Scraper.Name()

	movies, err := r.movies(ctx, logger)
	if err != nil {
		return fmt.Errorf("scraping %s: %w", name, err)
	}

	if err := output.Print(r.Stdout, movies, r.Format); err != nil {
		return fmt.Errorf("printing movies: %w", err)
	}

	if err := r.Writer.Write(ctx, movies); err != nil {
		return err
	}

	if r.Publisher != nil {
		batchID := r.clock().UTC().Format("20060102-150405")
		if err := r.Publisher.ReplaceMoviesForSource(ctx, name, movies, batchID); err != nil {
			return fmt.Errorf("publishing movies: %w", err)
		}
		logger.InfoContext(ctx, "published movies", "source", name, "count", len(movies), "batch_id", batchID)
	}

	return nil
}

func (r *Runner) movies(ctx context.Context, logger *slog.Logger) ([]model.Movie, error) {
	name := r.Scraper.Name()
	url := r.Scraper.URL()

	switch {
	case r.Cache == nil:
	case r.Refresh:
		if err := r.Cache.Invalidate(name); err != nil {
			logger.WarnContext(ctx, "failed to invalidate cache", "source", name, "error", err)
		}
	default:
		if movies, ok := r.Cache.Get(name, url); ok {
			logger.InfoContext(ctx, "using cached movies", "source", name, "count", len(movies))
			return movies, nil
		}
	}

	movies, err := r.Scraper.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if r.Cache != nil {
		if err := r.Cache.Set(name, url, movies); err != nil {
			logger.WarnContext(ctx, "failed to cache movies", "source", name, "error", err)
		}
	}
	return movies, nil
}

func (r *Runner) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
