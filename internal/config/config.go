package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Provider names a search provider implementation.
type Provider string

const (
	// ProviderScrape scrapes YouTube's search result pages. Results are of
	// mixed kinds.
	ProviderScrape Provider = "scrape"
	// ProviderInnertube uses YouTube's innertube API. Results are videos only.
	ProviderInnertube Provider = "innertube"
)

// FallbackPolicy controls what is served when a provider fails.
type FallbackPolicy string

const (
	// FallbackEmpty serves an empty list.
	FallbackEmpty FallbackPolicy = "empty"
	// FallbackSamples serves the configured samples, also when a provider
	// returns no videos.
	FallbackSamples FallbackPolicy = "samples"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	Address  string         `yaml:"address" env:"YTJS_ADDRESS"`
	Provider Provider       `yaml:"provider" env:"YTJS_PROVIDER"`
	Fallback FallbackPolicy `yaml:"fallback" env:"YTJS_FALLBACK"`

	// Limit is the maximum number of videos returned per request.
	Limit int `yaml:"limit"`
	// Timeout for provider calls. Zero disables the timeout.
	Timeout time.Duration `yaml:"timeout"`

	// Samples are served according to Fallback.
	Samples []video.Summary `yaml:"samples"`

	// Categories maps category names to search phrases.
	Categories map[string]string `yaml:"categories"`
	// PopularCategory is the category used for popular videos.
	PopularCategory string `yaml:"popularCategory"`

	// ThumbnailHosts are the hosts images may be proxied from.
	ThumbnailHosts []string `yaml:"thumbnailHosts"`

	RateLimit  *RateLimitConfig  `yaml:"rateLimit,omitempty"`
	Prometheus *PrometheusConfig `yaml:"prometheus,omitempty"`

	LogLevel slog.Level `yaml:"logLevel"`
}

type RateLimitConfig struct {
	// RequestsPerSecond towards the provider. Zero disables rate limiting.
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    uint16 `yaml:"port"`
}

// DefaultSamples are served when the provider fails and the fallback policy
// is FallbackSamples.
var DefaultSamples = []video.Summary{
	{
		ID:           "dQw4w9WgXcQ",
		Title:        "Rick Astley - Never Gonna Give You Up (Official Music Video)",
		Thumbnail:    "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
		ChannelTitle: "Rick Astley",
	},
	{
		ID:           "YQHsXMglC9A",
		Title:        "Adele - Hello (Official Music Video)",
		Thumbnail:    "https://i.ytimg.com/vi/YQHsXMglC9A/hqdefault.jpg",
		ChannelTitle: "Adele",
	},
}

// DefaultCategories are the categories shown in the catalog.
var DefaultCategories = map[string]string{
	"home":     "popular videos",
	"trending": "trending videos",
	"muzyka":   "music videos",
	"filmy":    "movie trailers",
	"gry":      "gaming videos",
}

// DefaultThumbnailHosts are the hosts YouTube serves images from.
var DefaultThumbnailHosts = []string{
	"i.ytimg.com",
	"img.youtube.com",
	"yt3.googleusercontent.com",
	"yt3.ggpht.com",
}

// DefaultConfig returns the default config.
func DefaultConfig() *Config {
	categories := make(map[string]string, len(DefaultCategories))
	for name, phrase := range DefaultCategories {
		categories[name] = phrase
	}

	return &Config{
		Address:  ":8080",
		Provider: ProviderScrape,
		Fallback: FallbackEmpty,

		Limit:   20,
		Timeout: 10 * time.Second,

		Samples: append([]video.Summary(nil), DefaultSamples...),

		Categories:      categories,
		PopularCategory: "home",

		ThumbnailHosts: append([]string(nil), DefaultThumbnailHosts...),

		RateLimit: &RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},

		Prometheus: &PrometheusConfig{
			Enabled: false,
			Port:    9090,
		},

		LogLevel: slog.LevelInfo,
	}
}

// PopulateFromEnvironment populates the config with values from environment
// variables.
func (c *Config) PopulateFromEnvironment() error {
	return env.Parse(c)
}

// Validate returns an error wrapping ErrInvalidConfig if the config cannot be
// used.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderScrape, ProviderInnertube:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, c.Provider)
	}

	switch c.Fallback {
	case FallbackEmpty, FallbackSamples:
	default:
		return fmt.Errorf("%w: unknown fallback policy %q", ErrInvalidConfig, c.Fallback)
	}

	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidConfig)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalidConfig)
	}

	for i, sample := range c.Samples {
		if sample.ID == "" {
			return fmt.Errorf("%w: sample %d has no id", ErrInvalidConfig, i)
		}
	}

	popularCategory := normalizeCategory(c.PopularCategory)
	found := false
	for name := range c.Categories {
		if normalizeCategory(name) == popularCategory {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: popular category %q is not a category", ErrInvalidConfig, c.PopularCategory)
	}

	if c.RateLimit != nil && c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalidConfig)
	}

	return nil
}

// normalizeCategory normalizes a category name the way gateway.Categories
// does.
func normalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateConfigIfNotExists makes sure that a config file exists. If it doesn't,
// it is created and populated with the default config.
func CreateConfigIfNotExists(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	config := DefaultConfig()
	return config.Store(path)
}

// ReadConfig reads a config file from the specified path. Values not present
// in the file keep their defaults.
func ReadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	// Maps are merged on decode, start from scratch so that categories can be
	// removed
	config.Categories = nil

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if config.Categories == nil {
		config.Categories = DefaultConfig().Categories
	}

	return config, nil
}

// Load reads the config file at path, creating it if it doesn't exist, and
// applies environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	if err := CreateConfigIfNotExists(path); err != nil {
		return nil, err
	}

	config, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := config.PopulateFromEnvironment(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Store stores the config in the specified path.
// Writes are atomic.
func (c *Config) Store(path string) (err error) {
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			file.Close()
			os.Remove(file.Name())
		}
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	if err := file.Sync(); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(file.Name(), path)
}
