package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"imdb-top250/internal/app"
	"imdb-top250/internal/cache"
	"imdb-top250/internal/config"
	"imdb-top250/internal/firestore"
	"imdb-top250/internal/logging"
	"imdb-top250/internal/output"
	"imdb-top250/internal/scraper"
	"imdb-top250/internal/store"
)

// flags holds command-line overrides; empty values leave the config alone.
type flags struct {
	configPath string
	url        string
	outDir     string
	format     string
	logLevel   string
	logFormat  string
	browser    bool
	noCache    bool
}

func newRootCommand() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "imdbtop",
		Short:         "Scrape the IMDb Top 250 chart into CSV and JSON files",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Configuration file path (TOML)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: auto, text or json")

	rf := rootCmd.Flags()
	rf.StringVar(&f.url, "url", "", "Chart page to scrape")
	rf.StringVarP(&f.outDir, "out-dir", "o", "", "Directory to write the CSV and JSON files to")
	rf.StringVar(&f.format, "format", "", "Console output: lines or table")
	rf.BoolVar(&f.browser, "browser", false, "Render the page in headless Chrome")
	rf.BoolVar(&f.noCache, "no-cache", false, "Scrape again and replace the cached result")

	rootCmd.AddCommand(newConfigCommand(&f))
	rootCmd.AddCommand(newCacheCommand(&f))
	rootCmd.AddCommand(newFirestoreCommand(&f))

	return rootCmd
}

// loadConfig reads the configuration and applies flags given on cmd.
func loadConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath, f.configPath != "")
	if err != nil {
		return config.Config{}, err
	}

	overrideString(&cfg.Scrape.URL, f.url)
	overrideString(&cfg.Output.Dir, f.outDir)
	overrideString(&cfg.Scrape.Format, f.format)
	overrideString(&cfg.Log.Level, f.logLevel)
	overrideString(&cfg.Log.Format, f.logFormat)
	if fl := cmd.Flags().Lookup("browser"); fl != nil && fl.Changed {
		cfg.Browser.Enabled = f.browser
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func run(ctx context.Context, cfg config.Config, f flags, stdout, stderr io.Writer) error {
	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	var fetcher scraper.Fetcher
	if cfg.Browser.Enabled {
		fetcher = scraper.NewBrowserFetcher(cfg.Browser.ChromePath, cfg.Scrape.UserAgent, cfg.BrowserTimeout())
		logger.Info("fetching with headless chrome", "chrome_path", cfg.Browser.ChromePath)
	} else {
		fetcher = scraper.NewHTTPFetcher(cfg.Scrape.UserAgent)
	}

	s, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	runner := &app.Runner{
		Scraper: scraper.NewIMDbScraper(cfg.Scrape.URL, fetcher, logger),
		Writer:  output.NewWriter(s, stdout),
		Stdout:  stdout,
		Format:  cfg.Scrape.Format,
		Logger:  logger,
		Refresh: f.noCache,
	}

	if ttl := cfg.CacheTTL(); ttl > 0 {
		c, err := cache.New(cfg.Cache.Dir, ttl)
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		runner.Cache = c
		logger.Debug("cache enabled", "dir", cfg.Cache.Dir, "ttl", ttl)
	}

	if cfg.Firestore.ProjectID != "" {
		fsClient, err := firestore.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection, cfg.GCP.CredentialsFile)
		if err != nil {
			return err
		}
		defer fsClient.Close()
		runner.Publisher = fsClient
		logger.Info("publishing to firestore", "project", cfg.Firestore.ProjectID, "collection", cfg.Firestore.Collection)
	}

	return runner.Run(ctx)
}

// openStore returns the GCS store when a bucket is configured and the local
// output directory otherwise.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, func(), error) {
	if cfg.Storage.Bucket != "" {
		gcsStore, err := store.NewGCS(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.GCP.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("initializing GCS store: %w", err)
		}
		logger.Info("store: GCS bucket", "bucket", cfg.Storage.Bucket, "prefix", cfg.Storage.Prefix)
		return gcsStore, func() { gcsStore.Close() }, nil
	}

	localStore, err := store.NewLocal(cfg.Output.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing local store: %w", err)
	}
	logger.Debug("store: local directory", "dir", cfg.Output.Dir)
	return localStore, func() {}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
