package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"imdb-top250/internal/model"
)

// Entry represents a cached chart with metadata.
type Entry struct {
	Source    string        `json:"source"`
	URL       string        `json:"url"`
	Movies    []model.Movie `json:"movies"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Cache provides disk-based caching for scraped charts.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex

	now func() time.Time
}

// New creates a new disk-based cache.
func New(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir: cacheDir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// Get retrieves the cached chart for a source if it exists, was fetched from
// url and isn't expired.
func (c *Cache) Get(source, url string) ([]model.Movie, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath(source))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.URL != url || len(entry.Movies) == 0 {
		return nil, false
	}
	if c.now().Sub(entry.FetchedAt) > c.ttl {
		return nil, false
	}

	return entry.Movies, true
}

// Set stores a chart in the cache.
func (c *Cache) Set(source, url string, movies []model.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Source:    source,
		URL:       url,
		Movies:    movies,
		FetchedAt: c.now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath(source), data, 0644)
}

// Invalidate removes a specific source's cache.
func (c *Cache) Invalidate(source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath(source)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InvalidateAll removes all cached entries and reports how many were removed.
func (c *Cache) InvalidateAll() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) filePath(source string) string {
	// Sanitize name to be filesystem-safe
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, source)
	return filepath.Join(c.dir, safeName+".json")
}
