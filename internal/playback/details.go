package playback

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/kkdai/youtube/v2"
)

// AudioOnlyLabel is the label of the audio-only quality option.
const AudioOnlyLabel = "audio"

// Quality is a selectable playback quality.
type Quality struct {
	Label     string `json:"label"`
	Itag      int    `json:"itag"`
	MimeType  string `json:"mimeType"`
	Height    int    `json:"height,omitempty"`
	AudioOnly bool   `json:"audioOnly"`
}

// Details holds what a player needs to present a video.
type Details struct {
	video.Summary
	WatchURL        string    `json:"watchUrl"`
	DurationSeconds int       `json:"durationSeconds"`
	Qualities       []Quality `json:"qualities"`
}

type videoGetter interface {
	GetVideoContext(ctx context.Context, id string) (*youtube.Video, error)
}

type Options struct {
	// Client defaults to a new client.
	Client *youtube.Client
}

// Client looks up video details.
type Client struct {
	client videoGetter
}

func NewClient(options *Options) *Client {
	if options == nil {
		options = &Options{}
	}

	client := options.Client
	if client == nil {
		client = &youtube.Client{}
	}

	return &Client{client: client}
}

// Details returns the details of the video with the specified id.
func (c *Client) Details(ctx context.Context, id string) (*Details, error) {
	slog.Debug("Fetching video metadata", slog.String("id", id))
	v, err := c.client.GetVideoContext(ctx, id)
	if err != nil {
		return nil, err
	}
	slog.Debug("Fetched video", slog.String("title", v.Title), slog.String("id", v.ID))

	thumbnails := make([]video.Thumbnail, len(v.Thumbnails))
	for i, thumbnail := range v.Thumbnails {
		thumbnails[i] = video.Thumbnail{
			URL:    thumbnail.URL,
			Width:  int(thumbnail.Width),
			Height: int(thumbnail.Height),
		}
	}

	summaries := video.Normalize([]video.RawResult{
		{
			Kind:        video.KindVideo,
			ID:          v.ID,
			Title:       v.Title,
			Thumbnails:  thumbnails,
			ChannelName: v.Author,
			Duration:    v.Duration,
		},
	})
	summary := video.Summary{ID: id, ChannelTitle: video.UnknownChannel}
	if len(summaries) > 0 {
		summary = summaries[0]
	}

	return &Details{
		Summary:         summary,
		WatchURL:        video.WatchURL(summary.ID),
		DurationSeconds: int(v.Duration.Seconds()),
		Qualities:       qualities(v.Formats),
	}, nil
}

// qualities returns one option per distinct video quality, tallest first,
// followed by the audio-only option with the highest bitrate.
func qualities(formats youtube.FormatList) []Quality {
	options := make([]Quality, 0)
	seen := make(map[string]bool)

	var audio *youtube.Format
	for i, format := range formats {
		switch {
		case strings.HasPrefix(format.MimeType, "video/"):
			if format.QualityLabel == "" || seen[format.QualityLabel] {
				continue
			}
			seen[format.QualityLabel] = true
			options = append(options, Quality{
				Label:    format.QualityLabel,
				Itag:     format.ItagNo,
				MimeType: format.MimeType,
				Height:   format.Height,
			})
		case strings.HasPrefix(format.MimeType, "audio/"):
			if audio == nil || format.Bitrate > audio.Bitrate {
				audio = &formats[i]
			}
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Height > options[j].Height
	})

	if audio != nil {
		options = append(options, Quality{
			Label:     AudioOnlyLabel,
			Itag:      audio.ItagNo,
			MimeType:  audio.MimeType,
			AudioOnly: true,
		})
	}

	return options
}
