package video

import (
	"strings"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/timeutil"
)

// UnknownChannel is used in place of a missing channel name.
const UnknownChannel = "Unknown"

// Kind is the kind of a search result as reported by a provider.
type Kind string

const (
	KindVideo    Kind = "video"
	KindChannel  Kind = "channel"
	KindPlaylist Kind = "playlist"
	KindMovie    Kind = "movie"
	KindUnknown  Kind = "unknown"
)

// Summary is the canonical, normalized search result.
type Summary struct {
	// ID is the provider-assigned video id. Never empty.
	ID string `json:"id" yaml:"id"`
	// Title is the display title of the video.
	Title string `json:"title" yaml:"title"`
	// Thumbnail is an absolute URL to an image, or empty.
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`
	// ChannelTitle is the display name of the uploading channel.
	ChannelTitle string `json:"channelTitle" yaml:"channelTitle"`
	// Duration is a clock-formatted duration, such as 3:32. Empty if unknown.
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// RawResult is a search result as returned by a provider, before
// normalization.
type RawResult struct {
	Kind        Kind
	ID          string
	Title       string
	Thumbnails  []Thumbnail
	ChannelName string
	Duration    time.Duration
}

// Normalize shapes raw provider results into summaries.
// Entries that are not videos or lack an id are dropped. Order is preserved.
func Normalize(results []RawResult) []Summary {
	summaries := make([]Summary, 0, len(results))
	for _, result := range results {
		if result.Kind != KindVideo || result.ID == "" {
			continue
		}

		channel := strings.TrimSpace(result.ChannelName)
		if channel == "" {
			channel = UnknownChannel
		}

		duration := ""
		if result.Duration > 0 {
			duration = timeutil.FormatClock(result.Duration)
		}

		summaries = append(summaries, Summary{
			ID:           result.ID,
			Title:        result.Title,
			Thumbnail:    NormalizeThumbnailURL(BestThumbnail(result.Thumbnails)),
			ChannelTitle: channel,
			Duration:     duration,
		})
	}

	return summaries
}

// BestThumbnail returns the URL of the largest thumbnail. When no sizes are
// known, the first thumbnail is returned. Returns an empty string if there
// are no thumbnails.
func BestThumbnail(thumbnails []Thumbnail) string {
	best := -1
	bestArea := -1
	for i, thumbnail := range thumbnails {
		if thumbnail.URL == "" {
			continue
		}

		area := thumbnail.Width * thumbnail.Height
		if area > bestArea {
			best = i
			bestArea = area
		}
	}

	if best == -1 {
		return ""
	}

	return thumbnails[best].URL
}

// NormalizeThumbnailURL rewrites a protocol-relative URL (//host/path) into
// an absolute https URL. Other values are returned as is, without surrounding
// whitespace.
//
//	NormalizeThumbnailURL("//i.ytimg.com/vi/x/hq.jpg") // https://i.ytimg.com/vi/x/hq.jpg
func NormalizeThumbnailURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
