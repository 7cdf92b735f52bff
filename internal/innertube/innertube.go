// Package innertube implements a search provider on top of YouTube's innertube
// API, as exposed by github.com/raitonoberu/ytsearch.
package innertube

import (
	"context"
	"log/slog"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/raitonoberu/ytsearch"
)

// Client searches for videos. Only videos are ever returned.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

type result struct {
	results []video.RawResult
	err     error
}

// Search implements gateway.SearchProvider.
func (c *Client) Search(ctx context.Context, query string) ([]video.RawResult, error) {
	slog.Debug("Performing innertube search request", slog.String("query", query))

	// The library has no notion of contexts, run it in the background and stop
	// waiting when ctx is done
	done := make(chan result, 1)
	go func() {
		search := ytsearch.VideoSearch(query)
		page, err := search.Next()
		if err != nil {
			done <- result{err: err}
			return
		}

		done <- result{results: rawResults(page)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		slog.Debug("Successfully performed innertube search", slog.Int("results", len(r.results)))
		return r.results, nil
	}
}

// rawResults converts a page of search results.
func rawResults(page *ytsearch.SearchResult) []video.RawResult {
	results := make([]video.RawResult, 0, len(page.Videos))
	for _, item := range page.Videos {
		thumbnails := make([]video.Thumbnail, 0, len(item.Thumbnails))
		for _, thumbnail := range item.Thumbnails {
			thumbnails = append(thumbnails, video.Thumbnail{
				URL:    thumbnail.URL,
				Width:  int(thumbnail.Width),
				Height: int(thumbnail.Height),
			})
		}

		results = append(results, video.RawResult{
			Kind:        video.KindVideo,
			ID:          item.ID,
			Title:       item.Title,
			Thumbnails:  thumbnails,
			ChannelName: item.Channel.Title,
			Duration:    time.Duration(item.Duration) * time.Second,
		})
	}

	return results
}
