package video

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	results := []RawResult{
		{
			Kind:        KindVideo,
			ID:          "AaBw37-nWaY",
			Title:       "lofi hip hop radio",
			Thumbnails:  []Thumbnail{{URL: "//img.example/x.jpg"}},
			ChannelName: "Lofi Girl",
			Duration:    3*time.Minute + 2*time.Second,
		},
		{
			Kind:  KindChannel,
			ID:    "UCSJ4gkVC6NrvII8umztf0Ow",
			Title: "Lofi Girl",
		},
	}

	summaries := Normalize(results)
	require.Len(t, summaries, 1)
	assert.Equal(t, Summary{
		ID:           "AaBw37-nWaY",
		Title:        "lofi hip hop radio",
		Thumbnail:    "https://img.example/x.jpg",
		ChannelTitle: "Lofi Girl",
		Duration:     "3:02",
	}, summaries[0])
}

func TestNormalizeDefaults(t *testing.T) {
	summaries := Normalize([]RawResult{
		{Kind: KindVideo, ID: "a", Title: "no thumbnail, no channel"},
		{Kind: KindVideo, ID: "", Title: "no id"},
		{Kind: KindPlaylist, ID: "b"},
		{Kind: KindVideo, ID: "c", ChannelName: "   "},
	})

	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].ID)
	assert.Equal(t, "", summaries[0].Thumbnail)
	assert.Equal(t, UnknownChannel, summaries[0].ChannelTitle)
	assert.Equal(t, "", summaries[0].Duration)
	assert.Equal(t, "c", summaries[1].ID)
	assert.Equal(t, UnknownChannel, summaries[1].ChannelTitle)
}

func TestNormalizePreservesOrderAndDropsNonVideos(t *testing.T) {
	kinds := []Kind{KindVideo, KindChannel, KindVideo, KindMovie, KindPlaylist, KindVideo, KindUnknown}
	results := make([]RawResult, len(kinds))
	for i, kind := range kinds {
		results[i] = RawResult{
			Kind:       kind,
			ID:         string(rune('a' + i)),
			Thumbnails: []Thumbnail{{URL: "//i.ytimg.com/vi/x.jpg"}},
		}
	}

	summaries := Normalize(results)
	assert.LessOrEqual(t, len(summaries), len(results))
	ids := make([]string, 0)
	for _, summary := range summaries {
		ids = append(ids, summary.ID)
		assert.NotEmpty(t, summary.ID)
		assert.True(t, strings.HasPrefix(summary.Thumbnail, "https://"))
	}
	assert.Equal(t, []string{"a", "c", "f"}, ids)
}

func TestNormalizeEmpty(t *testing.T) {
	summaries := Normalize(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestBestThumbnail(t *testing.T) {
	testCases := []struct {
		Name       string
		Thumbnails []Thumbnail
		Expected   string
	}{
		{
			Name:       "none",
			Thumbnails: nil,
			Expected:   "",
		},
		{
			Name: "unsized picks first",
			Thumbnails: []Thumbnail{
				{URL: "first"},
				{URL: "second"},
			},
			Expected: "first",
		},
		{
			Name: "largest",
			Thumbnails: []Thumbnail{
				{URL: "small", Width: 120, Height: 90},
				{URL: "large", Width: 480, Height: 360},
				{URL: "medium", Width: 320, Height: 180},
			},
			Expected: "large",
		},
		{
			Name: "skips empty urls",
			Thumbnails: []Thumbnail{
				{URL: "", Width: 1280, Height: 720},
				{URL: "small", Width: 120, Height: 90},
			},
			Expected: "small",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert.Equal(t, testCase.Expected, BestThumbnail(testCase.Thumbnails))
		})
	}
}

func TestNormalizeThumbnailURL(t *testing.T) {
	testCases := []struct {
		Input    string
		Expected string
	}{
		{Input: "//img.example/x.jpg", Expected: "https://img.example/x.jpg"},
		{Input: "https://i.ytimg.com/vi/x/hqdefault.jpg", Expected: "https://i.ytimg.com/vi/x/hqdefault.jpg"},
		{Input: "http://i.ytimg.com/vi/x/hqdefault.jpg", Expected: "http://i.ytimg.com/vi/x/hqdefault.jpg"},
		{Input: " //yt3.ggpht.com/a ", Expected: "https://yt3.ggpht.com/a"},
		{Input: "", Expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Input, func(t *testing.T) {
			assert.Equal(t, testCase.Expected, NormalizeThumbnailURL(testCase.Input))
		})
	}
}
