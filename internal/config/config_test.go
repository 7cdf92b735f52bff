package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "popular videos", config.Categories[config.PopularCategory])
	assert.Len(t, config.Samples, 2)
	assert.Equal(t, 20, config.Limit)
}

func TestDefaultConfigDoesNotShareState(t *testing.T) {
	config := DefaultConfig()
	config.Categories["home"] = "changed"
	config.Samples[0].Title = "changed"

	assert.Equal(t, "popular videos", DefaultCategories["home"])
	assert.NotEqual(t, "changed", DefaultSamples[0].Title)
}

func TestLoadCreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestStoreAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	expected := DefaultConfig()
	expected.Provider = ProviderInnertube
	expected.Fallback = FallbackSamples
	expected.Timeout = 5 * time.Second
	expected.LogLevel = slog.LevelDebug
	require.NoError(t, expected.Store(path))

	actual, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestReadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("provider: innertube\ncategories:\n  news: news today\npopularCategory: news\n"), 0644)
	require.NoError(t, err)

	config, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderInnertube, config.Provider)
	assert.Equal(t, map[string]string{"news": "news today"}, config.Categories)
	assert.Equal(t, ":8080", config.Address)
	require.NoError(t, config.Validate())
}

func TestReadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	config, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestReadConfigUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("discordBotToken: abc\n"), 0644))

	_, err := ReadConfig(path)
	assert.Error(t, err)
}

func TestPopulateFromEnvironment(t *testing.T) {
	t.Setenv("YTJS_ADDRESS", "127.0.0.1:3000")
	t.Setenv("YTJS_PROVIDER", "innertube")
	t.Setenv("YTJS_FALLBACK", "samples")

	config := DefaultConfig()
	require.NoError(t, config.PopulateFromEnvironment())

	assert.Equal(t, "127.0.0.1:3000", config.Address)
	assert.Equal(t, ProviderInnertube, config.Provider)
	assert.Equal(t, FallbackSamples, config.Fallback)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		Name   string
		Mutate func(*Config)
	}{
		{
			Name:   "unknown provider",
			Mutate: func(c *Config) { c.Provider = "ytsr" },
		},
		{
			Name:   "unknown fallback",
			Mutate: func(c *Config) { c.Fallback = "retry" },
		},
		{
			Name:   "zero limit",
			Mutate: func(c *Config) { c.Limit = 0 },
		},
		{
			Name:   "negative timeout",
			Mutate: func(c *Config) { c.Timeout = -time.Second },
		},
		{
			Name:   "sample without id",
			Mutate: func(c *Config) { c.Samples[1].ID = "" },
		},
		{
			Name:   "missing popular category",
			Mutate: func(c *Config) { c.PopularCategory = "nope" },
		},
		{
			Name:   "negative rate",
			Mutate: func(c *Config) { c.RateLimit.RequestsPerSecond = -1 },
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			config := DefaultConfig()
			testCase.Mutate(config)
			assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidatePopularCategoryIsCaseInsensitive(t *testing.T) {
	config := DefaultConfig()
	config.Categories = map[string]string{"Home": "popular videos", " News ": "news today"}

	config.PopularCategory = "home"
	assert.NoError(t, config.Validate())

	config.PopularCategory = "NEWS"
	assert.NoError(t, config.Validate())

	config.PopularCategory = "music"
	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
}

func TestDefaultConfigBoundsProviderCalls(t *testing.T) {
	assert.Equal(t, 10*time.Second, DefaultConfig().Timeout)
}
