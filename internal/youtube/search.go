package youtube

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/AlexGustafsson/ytjs/internal/video"
)

type searchContent struct {
	VideoRenderer *struct {
		VideoID    string        `json:"videoId"`
		Title      textRuns      `json:"title"`
		Thumbnail  thumbnailList `json:"thumbnail"`
		OwnerText  textRuns      `json:"ownerText"`
		LengthText textRuns      `json:"lengthText"`
	} `json:"videoRenderer"`
	ChannelRenderer *struct {
		ChannelID string        `json:"channelId"`
		Title     textRuns      `json:"title"`
		Thumbnail thumbnailList `json:"thumbnail"`
	} `json:"channelRenderer"`
	PlaylistRenderer *struct {
		PlaylistID      string          `json:"playlistId"`
		Title           textRuns        `json:"title"`
		Thumbnails      []thumbnailList `json:"thumbnails"`
		ShortBylineText textRuns        `json:"shortBylineText"`
	} `json:"playlistRenderer"`
	MovieRenderer *struct {
		VideoID   string        `json:"videoId"`
		Title     textRuns      `json:"title"`
		Thumbnail thumbnailList `json:"thumbnail"`
	} `json:"movieRenderer"`
}

// Search performs a search and returns the results of the first page.
// Results are of mixed kinds, in the order presented by YouTube. Results of
// kinds that are not understood (shelves, ads and the like) are reported with
// video.KindUnknown.
func (c *Client) Search(ctx context.Context, query string) ([]video.RawResult, error) {
	searchQuery := make(url.Values)
	searchQuery.Set("search_query", query)

	slog.Debug("Performing search request", slog.String("query", query))
	initialDataBytes, err := c.fetchInitialData(ctx, "/results", searchQuery)
	if err != nil {
		return nil, err
	}

	var initialData struct {
		Contents struct {
			TwoColumnSearchResultsRenderer struct {
				PrimaryContents struct {
					SectionListRenderer struct {
						Contents []struct {
							ItemSectionRenderer struct {
								Contents []searchContent `json:"contents"`
							} `json:"itemSectionRenderer"`
						} `json:"contents"`
					} `json:"sectionListRenderer"`
				} `json:"primaryContents"`
			} `json:"twoColumnSearchResultsRenderer"`
		} `json:"contents"`
	}
	if err := json.Unmarshal(initialDataBytes, &initialData); err != nil {
		return nil, err
	}

	results := make([]video.RawResult, 0)
	for _, section := range initialData.Contents.TwoColumnSearchResultsRenderer.PrimaryContents.SectionListRenderer.Contents {
		for _, content := range section.ItemSectionRenderer.Contents {
			results = append(results, content.result())
		}
	}

	slog.Debug("Successfully performed search", slog.Int("results", len(results)))
	return results, nil
}

func (c searchContent) result() video.RawResult {
	switch {
	case c.VideoRenderer != nil:
		r := c.VideoRenderer
		return video.RawResult{
			Kind:        video.KindVideo,
			ID:          r.VideoID,
			Title:       r.Title.String(),
			Thumbnails:  r.Thumbnail.thumbnails(),
			ChannelName: r.OwnerText.String(),
			// Live streams have no length
			Duration: parseDurationOrZero(r.LengthText.String()),
		}
	case c.ChannelRenderer != nil:
		r := c.ChannelRenderer
		return video.RawResult{
			Kind:        video.KindChannel,
			ID:          r.ChannelID,
			Title:       r.Title.String(),
			Thumbnails:  r.Thumbnail.thumbnails(),
			ChannelName: r.Title.String(),
		}
	case c.PlaylistRenderer != nil:
		r := c.PlaylistRenderer
		var thumbnails []video.Thumbnail
		if len(r.Thumbnails) > 0 {
			thumbnails = r.Thumbnails[0].thumbnails()
		}
		return video.RawResult{
			Kind:        video.KindPlaylist,
			ID:          r.PlaylistID,
			Title:       r.Title.String(),
			Thumbnails:  thumbnails,
			ChannelName: r.ShortBylineText.String(),
		}
	case c.MovieRenderer != nil:
		r := c.MovieRenderer
		return video.RawResult{
			Kind:       video.KindMovie,
			ID:         r.VideoID,
			Title:      r.Title.String(),
			Thumbnails: r.Thumbnail.thumbnails(),
		}
	default:
		return video.RawResult{Kind: video.KindUnknown}
	}
}

func (t thumbnailList) thumbnails() []video.Thumbnail {
	thumbnails := make([]video.Thumbnail, len(t.Thumbnails))
	for i, thumbnail := range t.Thumbnails {
		thumbnails[i] = video.Thumbnail{
			URL:    thumbnail.URL,
			Width:  thumbnail.Width,
			Height: thumbnail.Height,
		}
	}
	return thumbnails
}
