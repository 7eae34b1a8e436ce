package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"

	"imdb-top250/internal/scraper"
)

//go:embed sample_config.toml
var sampleConfig string

// Scrape contains the chart location and how it is fetched.
type Scrape struct {
	URL       string `toml:"url"`
	UserAgent string `toml:"user_agent"`
	// Format is the console format: "lines" or "table".
	Format string `toml:"format"`
}

// Browser contains settings for rendering the page in headless Chrome.
// TimeoutSeconds of 0 uses the default; a negative value disables the limit.
type Browser struct {
	Enabled        bool   `toml:"enabled"`
	ChromePath     string `toml:"chrome_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Output contains settings for where the CSV and JSON files are written.
type Output struct {
	Dir string `toml:"dir"`
}

// Cache contains settings for the on-disk scrape cache. A zero TTL disables it.
type Cache struct {
	Dir        string `toml:"dir"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

// GCP contains credentials shared by the Cloud Storage and Firestore clients.
type GCP struct {
	CredentialsFile string `toml:"credentials_file"`
}

// Storage contains Cloud Storage settings. When Bucket is set, output files
// are uploaded there instead of written to Output.Dir.
type Storage struct {
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
}

// Firestore contains settings for publishing movies to Firestore.
type Firestore struct {
	ProjectID  string `toml:"project_id"`
	Collection string `toml:"collection"`
}

// Log contains logging settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the complete imdbtop configuration.
type Config struct {
	Scrape    Scrape    `toml:"scrape"`
	Browser   Browser   `toml:"browser"`
	Output    Output    `toml:"output"`
	Cache     Cache     `toml:"cache"`
	GCP       GCP       `toml:"gcp"`
	Storage   Storage   `toml:"storage"`
	Firestore Firestore `toml:"firestore"`
	Log       Log       `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scrape: Scrape{
			URL:    scraper.DefaultURL,
			Format: "lines",
		},
		Browser: Browser{
			TimeoutSeconds: 60,
		},
		Output: Output{
			Dir: ".",
		},
		Cache: Cache{
			Dir: defaultCacheDir(),
		},
		Firestore: Firestore{
			Collection: "movies",
		},
		Log: Log{
			Level:  "info",
			Format: "auto",
		},
	}
}

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// Load reads the TOML file at path (if any), applies environment overrides
// and fills the remaining fields with defaults. A missing file is not an
// error unless required is true.
func Load(path string, required bool) (Config, error) {
	var cfg Config

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, fmt.Errorf("apply defaults: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides cfg with environment variables that are set.
func applyEnv(cfg *Config) {
	setFromEnv(&cfg.Scrape.URL, "IMDBTOP_URL")
	setFromEnv(&cfg.Output.Dir, "IMDBTOP_OUTPUT_DIR")
	setFromEnv(&cfg.Browser.ChromePath, "CHROME_PATH")
	setFromEnv(&cfg.Cache.Dir, "CACHE_DIR")
	setFromEnv(&cfg.GCP.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS")
	setFromEnv(&cfg.Storage.Bucket, "GCS_BUCKET")
	setFromEnv(&cfg.Firestore.ProjectID, "GCP_PROJECT_ID")
	setFromEnv(&cfg.Firestore.Collection, "FIRESTORE_COLLECTION")
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// CacheTTL returns the cache lifetime; zero means caching is disabled.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// BrowserTimeout returns the time allowed for a headless Chrome render. Zero
// means no limit.
func (c Config) BrowserTimeout() time.Duration {
	if c.Browser.TimeoutSeconds < 0 {
		return 0
	}
	return time.Duration(c.Browser.TimeoutSeconds) * time.Second
}

// ValidationError lists every problem found in a configuration.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks that the configuration can be used for a run.
func (c Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.Scrape.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		problems = append(problems, fmt.Sprintf("scrape.url must be an http(s) URL, got %q", c.Scrape.URL))
	}
	switch c.Scrape.Format {
	case "lines", "table":
	default:
		problems = append(problems, fmt.Sprintf("scrape.format must be lines or table, got %q", c.Scrape.Format))
	}
	if c.Cache.TTLMinutes < 0 {
		problems = append(problems, "cache.ttl_minutes must not be negative")
	}
	if c.Cache.TTLMinutes > 0 && strings.TrimSpace(c.Cache.Dir) == "" {
		problems = append(problems, "cache.dir is required when caching is enabled")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "auto", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be auto, text or json, got %q", c.Log.Format))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".imdbtop-cache"
	}
	return dir + string(os.PathSeparator) + "imdbtop"
}
