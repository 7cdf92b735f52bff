package config

import (
	"github.com/AlexGustafsson/ytjs/internal/gateway"
	"github.com/AlexGustafsson/ytjs/internal/innertube"
	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/AlexGustafsson/ytjs/internal/youtube"
	"golang.org/x/time/rate"
)

// SearchProvider returns the configured search provider.
func (c *Config) SearchProvider() gateway.SearchProvider {
	switch c.Provider {
	case ProviderInnertube:
		return innertube.NewClient()
	default:
		return youtube.NewClient(nil)
	}
}

// GatewayOptions returns the gateway options described by the config.
func (c *Config) GatewayOptions(metrics *gateway.Metrics) *gateway.Options {
	options := &gateway.Options{
		Categories:      gateway.NewCategories(c.Categories),
		PopularCategory: c.PopularCategory,
		Limit:           c.Limit,
		Timeout:         c.Timeout,
		Metrics:         metrics,
	}

	if c.Fallback == FallbackSamples {
		options.Samples = c.Samples
		if options.Samples == nil {
			options.Samples = []video.Summary{}
		}
	}

	if c.RateLimit != nil && c.RateLimit.RequestsPerSecond > 0 {
		burst := c.RateLimit.Burst
		if burst < 1 {
			burst = 1
		}
		options.Limiter = rate.NewLimiter(rate.Limit(c.RateLimit.RequestsPerSecond), burst)
	}

	return options
}
