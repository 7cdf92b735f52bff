package playback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/kkdai/youtube/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideoGetter struct {
	video *youtube.Video
	err   error
}

func (f *fakeVideoGetter) GetVideoContext(ctx context.Context, id string) (*youtube.Video, error) {
	return f.video, f.err
}

var testFormats = youtube.FormatList{
	{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", Height: 360, AudioChannels: 2},
	{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", Height: 1080},
	{ItagNo: 248, MimeType: `video/webm; codecs="vp9"`, QualityLabel: "1080p", Height: 1080},
	{ItagNo: 136, MimeType: `video/mp4; codecs="avc1.4d401f"`, QualityLabel: "720p", Height: 720},
	{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130000, AudioChannels: 2},
	{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, Bitrate: 150000, AudioChannels: 2},
	{ItagNo: 249, MimeType: `audio/webm; codecs="opus"`, Bitrate: 50000, AudioChannels: 2},
}

func TestDetails(t *testing.T) {
	client := &Client{client: &fakeVideoGetter{
		video: &youtube.Video{
			ID:       "dQw4w9WgXcQ",
			Title:    "Rick Astley - Never Gonna Give You Up (Official Music Video)",
			Author:   "Rick Astley",
			Duration: 3*time.Minute + 33*time.Second,
			Thumbnails: youtube.Thumbnails{
				{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", Width: 120, Height: 90},
				{URL: "//i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", Width: 1280, Height: 720},
			},
			Formats: testFormats,
		},
	}}

	details, err := client.Details(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, video.Summary{
		ID:           "dQw4w9WgXcQ",
		Title:        "Rick Astley - Never Gonna Give You Up (Official Music Video)",
		Thumbnail:    "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		ChannelTitle: "Rick Astley",
		Duration:     "3:33",
	}, details.Summary)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", details.WatchURL)
	assert.Equal(t, 213, details.DurationSeconds)
	assert.Len(t, details.Qualities, 4)
}

func TestDetailsFailure(t *testing.T) {
	expected := errors.New("video is unavailable")
	client := &Client{client: &fakeVideoGetter{err: expected}}

	_, err := client.Details(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, expected)
}

func TestQualities(t *testing.T) {
	assert.Equal(t, []Quality{
		{Label: "1080p", Itag: 137, MimeType: `video/mp4; codecs="avc1.640028"`, Height: 1080},
		{Label: "720p", Itag: 136, MimeType: `video/mp4; codecs="avc1.4d401f"`, Height: 720},
		{Label: "360p", Itag: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Height: 360},
		{Label: AudioOnlyLabel, Itag: 251, MimeType: `audio/webm; codecs="opus"`, AudioOnly: true},
	}, qualities(testFormats))
}

func TestQualitiesEmpty(t *testing.T) {
	options := qualities(nil)
	assert.NotNil(t, options)
	assert.Empty(t, options)
}
