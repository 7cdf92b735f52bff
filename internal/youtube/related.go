package youtube

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
)

// Related returns the videos YouTube recommends next to the video with the
// specified id.
func (c *Client) Related(ctx context.Context, id string) ([]video.RawResult, error) {
	query := make(url.Values)
	query.Set("v", id)

	slog.Debug("Performing related request", slog.String("id", id))
	initialDataBytes, err := c.fetchInitialData(ctx, "/watch", query)
	if err != nil {
		return nil, err
	}

	var initialData struct {
		Contents struct {
			TwoColumnWatchNextResults struct {
				SecondaryResults struct {
					SecondaryResults struct {
						Results []struct {
							// NOTE: There are other types of results, such as ads and
							// playlists, but we just care about videos for now
							CompactVideoRenderer *struct {
								VideoID         string        `json:"videoId"`
								Title           textRuns      `json:"title"`
								Thumbnail       thumbnailList `json:"thumbnail"`
								LongBylineText  textRuns      `json:"longBylineText"`
								ShortBylineText textRuns      `json:"shortBylineText"`
								LengthText      textRuns      `json:"lengthText"`
							} `json:"compactVideoRenderer"`
						} `json:"results"`
					} `json:"secondaryResults"`
				} `json:"secondaryResults"`
			} `json:"twoColumnWatchNextResults"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(initialDataBytes, &initialData); err != nil {
		return nil, err
	}

	results := make([]video.RawResult, 0)
	for _, content := range initialData.Contents.TwoColumnWatchNextResults.SecondaryResults.SecondaryResults.Results {
		r := content.CompactVideoRenderer
		if r == nil {
			continue
		}

		channel := r.LongBylineText.String()
		if channel == "" {
			channel = r.ShortBylineText.String()
		}

		results = append(results, video.RawResult{
			Kind:        video.KindVideo,
			ID:          r.VideoID,
			Title:       r.Title.String(),
			Thumbnails:  r.Thumbnail.thumbnails(),
			ChannelName: channel,
			Duration:    parseDurationOrZero(r.LengthText.String()),
		})
	}

	slog.Debug("Successfully performed related request", slog.Int("results", len(results)))
	return results, nil
}

// parseDuration parses a clock-formatted duration such as 1:02:03.
func parseDuration(text string) (time.Duration, error) {
	result := time.Duration(0)
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) > 3 {
		return 0, strconv.ErrRange
	}

	multipliers := []time.Duration{time.Second, time.Minute, time.Hour}
	for i := 0; i < len(parts); i++ {
		part, err := strconv.ParseInt(parts[len(parts)-i-1], 10, 32)
		if err != nil {
			return 0, err
		}

		result += time.Duration(part) * multipliers[i]
	}
	return result, nil
}

func parseDurationOrZero(text string) time.Duration {
	if text == "" {
		return 0
	}

	duration, err := parseDuration(text)
	if err != nil {
		slog.Debug("Ignoring unparsable duration", slog.String("text", text), slog.Any("error", err))
		return 0
	}
	return duration
}
