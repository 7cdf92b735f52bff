package innertube

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/raitonoberu/ytsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawResults(t *testing.T) {
	testCases := []struct {
		Name     string
		Page     string
		Expected []video.RawResult
	}{
		{
			Name:     "empty",
			Page:     `{"videos":[]}`,
			Expected: []video.RawResult{},
		},
		{
			Name: "videos",
			Page: `{"videos":[` +
				`{"id":"jfKfPfyJRdk","title":"lofi hip hop radio","duration":0,"channel":{"title":"Lofi Girl"},"thumbnails":[{"url":"https://i.ytimg.com/vi/jfKfPfyJRdk/hq720.jpg","width":720,"height":404}]},` +
				`{"id":"n61ULEU7CO0","title":"1 A.M Study Session","duration":3686,"channel":{"title":"Lofi Girl"},"thumbnails":[{"url":"//i.ytimg.com/vi/n61ULEU7CO0/default.jpg","width":120,"height":90},{"url":"//i.ytimg.com/vi/n61ULEU7CO0/hqdefault.jpg","width":480,"height":360}]}` +
				`]}`,
			Expected: []video.RawResult{
				{
					Kind:        video.KindVideo,
					ID:          "jfKfPfyJRdk",
					Title:       "lofi hip hop radio",
					Thumbnails:  []video.Thumbnail{{URL: "https://i.ytimg.com/vi/jfKfPfyJRdk/hq720.jpg", Width: 720, Height: 404}},
					ChannelName: "Lofi Girl",
				},
				{
					Kind:  video.KindVideo,
					ID:    "n61ULEU7CO0",
					Title: "1 A.M Study Session",
					Thumbnails: []video.Thumbnail{
						{URL: "//i.ytimg.com/vi/n61ULEU7CO0/default.jpg", Width: 120, Height: 90},
						{URL: "//i.ytimg.com/vi/n61ULEU7CO0/hqdefault.jpg", Width: 480, Height: 360},
					},
					ChannelName: "Lofi Girl",
					Duration:    time.Hour + time.Minute + 26*time.Second,
				},
			},
		},
		{
			Name: "no thumbnails",
			Page: `{"videos":[{"id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","duration":213,"channel":{"title":"Rick Astley"}}]}`,
			Expected: []video.RawResult{
				{
					Kind:        video.KindVideo,
					ID:          "dQw4w9WgXcQ",
					Title:       "Never Gonna Give You Up",
					Thumbnails:  []video.Thumbnail{},
					ChannelName: "Rick Astley",
					Duration:    3*time.Minute + 33*time.Second,
				},
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			var page ytsearch.SearchResult
			require.NoError(t, json.Unmarshal([]byte(testCase.Page), &page))

			assert.Equal(t, testCase.Expected, rawResults(&page))
		})
	}
}

func TestRawResultsNormalize(t *testing.T) {
	var page ytsearch.SearchResult
	require.NoError(t, json.Unmarshal([]byte(`{"videos":[{"id":"n61ULEU7CO0","title":"1 A.M Study Session","duration":3686,"channel":{"title":"Lofi Girl"},"thumbnails":[{"url":"//i.ytimg.com/vi/n61ULEU7CO0/default.jpg","width":120,"height":90},{"url":"//i.ytimg.com/vi/n61ULEU7CO0/hqdefault.jpg","width":480,"height":360}]}]}`), &page))

	assert.Equal(t, []video.Summary{
		{
			ID:           "n61ULEU7CO0",
			Title:        "1 A.M Study Session",
			Thumbnail:    "https://i.ytimg.com/vi/n61ULEU7CO0/hqdefault.jpg",
			ChannelTitle: "Lofi Girl",
			Duration:     "1:01:26",
		},
	}, video.Normalize(rawResults(&page)))
}
