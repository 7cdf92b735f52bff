package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// FormatSelector returns a yt-dlp format selector. Only formats containing both
// audio and video are selected, unless audioOnly is set. A positive maxHeight
// prefers formats no taller than maxHeight.
func FormatSelector(audioOnly bool, maxHeight int) string {
	if audioOnly {
		return "ba/b"
	}

	if maxHeight > 0 {
		return fmt.Sprintf("b[height<=%d]/b", maxHeight)
	}

	return "b"
}

// Stream uses yt-dlp to stream the video at url in the selected format to w.
func Stream(ctx context.Context, url string, format string, w io.Writer) error {
	cmd := exec.CommandContext(ctx, "yt-dlp", "--no-playlist", "--quiet", "-f", format, "-o", "-", url)

	cmd.Stdout = w

	var buffer bytes.Buffer
	cmd.Stderr = &buffer

	if err := cmd.Run(); err != nil {
		stderr := strings.TrimSpace(buffer.String())
		if stderr != "" {
			return fmt.Errorf("yt-dlp failed: %w: %s", err, stderr)
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	return nil
}
