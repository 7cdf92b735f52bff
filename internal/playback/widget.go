package playback

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/AlexGustafsson/ytjs/internal/ffmpeg"
	"github.com/AlexGustafsson/ytjs/internal/ytdlp"
	"golang.org/x/sync/errgroup"
)

type PlayOptions struct {
	// Title is shown by the player, if supported.
	Title string
	// AudioOnly plays the audio of the video without showing it.
	AudioOnly bool
	// MaxHeight limits the video quality. Zero means best available.
	MaxHeight int
}

// Widget plays videos. The watch URL is all a widget is given, retrieving and
// decoding the media is up to the widget.
type Widget interface {
	// Play plays the video at watchURL, returning once playback has ended.
	Play(ctx context.Context, watchURL string, options *PlayOptions) error
}

var _ Widget = (*FFPlayWidget)(nil)

// FFPlayWidget plays videos by piping yt-dlp's output into ffplay.
type FFPlayWidget struct{}

// Play implements Widget.
func (w *FFPlayWidget) Play(ctx context.Context, watchURL string, options *PlayOptions) error {
	if options == nil {
		options = &PlayOptions{}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg, ctx := errgroup.WithContext(ctx)

	player := ffmpeg.NewPlayer(ctx, &ffmpeg.PlayerOptions{
		Title:     options.Title,
		NoDisplay: options.AudioOnly,
	})

	wg.Go(func() error {
		// Stop streaming once the player exits
		defer cancel()
		return player.Run()
	})

	wg.Go(func() error {
		defer player.Close()
		format := ytdlp.FormatSelector(options.AudioOnly, options.MaxHeight)
		slog.Debug("Starting stream", slog.String("url", watchURL), slog.String("format", format))
		err := ytdlp.Stream(ctx, watchURL, format, player)
		// The player exiting before the stream ends is not an error, the user
		// closed the window
		if err != nil && ctx.Err() == nil && !errors.Is(err, io.ErrClosedPipe) {
			return err
		}
		return nil
	})

	return wg.Wait()
}
