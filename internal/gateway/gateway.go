package gateway

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

var (
	ErrMissingQuery = errors.New("missing query")
)

// DefaultPopularPhrase is searched for popular videos when the popular
// category is not configured.
const DefaultPopularPhrase = "popular videos"

// SearchProvider performs searches on behalf of the gateway.
type SearchProvider interface {
	// Search returns raw results for query, in the order they should be
	// presented.
	Search(ctx context.Context, query string) ([]video.RawResult, error)
}

// RelatedProvider is implemented by providers that can list videos related to
// a video.
type RelatedProvider interface {
	Related(ctx context.Context, id string) ([]video.RawResult, error)
}

// Source is the kind of request that caused a search.
type Source string

const (
	SourceQuery    Source = "query"
	SourceCategory Source = "category"
	SourcePopular  Source = "popular"
	SourceRelated  Source = "related"
)

type Options struct {
	// Categories maps category names to search phrases.
	Categories Categories
	// PopularCategory names the category searched for popular videos.
	PopularCategory string
	// Samples, if non-nil, are served when the provider fails or finds no
	// videos. When nil, an empty list is served instead.
	Samples []video.Summary
	// Limit is the maximum number of videos returned. Zero means no limit.
	Limit int
	// Timeout for provider calls. Zero means no timeout.
	Timeout time.Duration
	// Limiter, if set, limits the rate of provider calls.
	Limiter *rate.Limiter
	// Metrics, if set, are updated for every search.
	Metrics *Metrics
}

// Gateway searches for videos using a provider and shapes the results.
// Provider failures are never returned to callers, they are logged and
// degraded to an empty or fallback list. A Gateway is safe for concurrent use.
type Gateway struct {
	provider SearchProvider

	categories      Categories
	popularCategory string
	samples         []video.Summary
	limit           int
	timeout         time.Duration
	limiter         *rate.Limiter
	metrics         *Metrics

	group singleflight.Group
}

func New(provider SearchProvider, options *Options) *Gateway {
	if options == nil {
		options = &Options{}
	}

	var samples []video.Summary
	if options.Samples != nil {
		samples = make([]video.Summary, len(options.Samples))
		copy(samples, options.Samples)
	}

	metrics := options.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Gateway{
		provider: provider,

		categories:      options.Categories,
		popularCategory: options.PopularCategory,
		samples:         samples,
		limit:           options.Limit,
		timeout:         options.Timeout,
		limiter:         options.Limiter,
		metrics:         metrics,
	}
}

// Search searches for videos matching query. An empty or whitespace-only
// query results in an empty list without calling the provider.
func (g *Gateway) Search(ctx context.Context, query string) []video.Summary {
	return g.search(ctx, query, SourceQuery)
}

// Category searches for videos in the named category. Names that are not
// categories are searched for verbatim.
func (g *Gateway) Category(ctx context.Context, name string) []video.Summary {
	phrase, ok := g.categories.Phrase(name)
	if !ok {
		phrase = name
	}

	return g.search(ctx, phrase, SourceCategory)
}

// Popular returns popular videos.
func (g *Gateway) Popular(ctx context.Context) []video.Summary {
	phrase, ok := g.categories.Phrase(g.popularCategory)
	if !ok {
		phrase = DefaultPopularPhrase
	}

	return g.search(ctx, phrase, SourcePopular)
}

// Categories returns the sorted names of all categories.
func (g *Gateway) Categories() []string {
	return g.categories.Names()
}

// Related returns videos related to the video with the specified id. Returns
// an empty list if the provider cannot list related videos or fails.
func (g *Gateway) Related(ctx context.Context, id string) []video.Summary {
	provider, ok := g.provider.(RelatedProvider)
	if !ok || id == "" {
		return []video.Summary{}
	}

	g.metrics.Searches.WithLabelValues(string(SourceRelated)).Inc()
	results, err := g.call(ctx, "related:"+id, func(ctx context.Context) ([]video.RawResult, error) {
		return provider.Related(ctx, id)
	})
	if err != nil {
		if ctx.Err() != nil {
			slog.Debug("Related videos request was canceled", slog.String("id", id), slog.Any("error", err))
			return []video.Summary{}
		}
		slog.Warn("Failed to fetch related videos", slog.String("id", id), slog.Any("error", err))
		g.metrics.ProviderFailures.Inc()
		return []video.Summary{}
	}

	return g.shape(results)
}

func (g *Gateway) search(ctx context.Context, query string, source Source) []video.Summary {
	query = strings.TrimSpace(query)
	if query == "" {
		return []video.Summary{}
	}

	g.metrics.Searches.WithLabelValues(string(source)).Inc()
	results, err := g.call(ctx, "search:"+query, func(ctx context.Context) ([]video.RawResult, error) {
		return g.provider.Search(ctx, query)
	})
	if err != nil {
		if ctx.Err() != nil {
			slog.Debug("Search was canceled", slog.String("query", query), slog.String("source", string(source)), slog.Any("error", err))
			return []video.Summary{}
		}
		slog.Warn("Search provider failed", slog.String("query", query), slog.String("source", string(source)), slog.Any("error", err))
		g.metrics.ProviderFailures.Inc()
		return g.fallback()
	}

	videos := g.shape(results)
	if len(videos) == 0 && g.samples != nil {
		slog.Debug("Search found no videos", slog.String("query", query))
		return g.fallback()
	}

	return videos
}

// call performs a provider call. Identical calls in flight are coalesced into
// one. The call is not bound to ctx, callers stop waiting when ctx is done.
// A caller that stops waiting forgets the call, so that later callers start a
// new one instead of joining a call that may never end.
func (g *Gateway) call(ctx context.Context, key string, fn func(context.Context) ([]video.RawResult, error)) ([]video.RawResult, error) {
	resultChan := g.group.DoChan(key, func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		start := time.Now()
		results, err := fn(ctx)
		g.metrics.ProviderDuration.Observe(time.Since(start).Seconds())
		return results, err
	})

	select {
	case <-ctx.Done():
		g.group.Forget(key)
		return nil, ctx.Err()
	case result := <-resultChan:
		if result.Err != nil {
			return nil, result.Err
		}
		if result.Shared {
			slog.Debug("Provider call was shared with another request", slog.String("key", key))
		}
		results, _ := result.Val.([]video.RawResult)
		return results, nil
	}
}

func (g *Gateway) shape(results []video.RawResult) []video.Summary {
	videos := video.Normalize(results)
	if g.limit > 0 && len(videos) > g.limit {
		videos = videos[:g.limit]
	}

	g.metrics.ResultsReturned.Observe(float64(len(videos)))
	return videos
}

func (g *Gateway) fallback() []video.Summary {
	if g.samples == nil {
		return []video.Summary{}
	}

	g.metrics.FallbacksServed.Inc()
	samples := make([]video.Summary, len(g.samples))
	copy(samples, g.samples)
	return samples
}
