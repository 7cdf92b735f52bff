package ffmpeg

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"syscall"
)

var _ io.WriteCloser = (*Player)(nil)

type PlayerOptions struct {
	// Title of the window.
	Title string
	// NoDisplay disables the video window, playing audio only.
	NoDisplay bool
}

// Player plays a stream written to it using ffplay.
type Player struct {
	stdinWriter *io.PipeWriter
	cmd         *exec.Cmd
}

func playerArguments(options *PlayerOptions) []string {
	args := []string{"-autoexit", "-loglevel", "warning"}
	if options != nil {
		if options.NoDisplay {
			args = append(args, "-nodisp")
		}
		if options.Title != "" {
			args = append(args, "-window_title", options.Title)
		}
	}
	return append(args, "-")
}

// NewPlayer prepares a new player. The player is started by Run. The player
// is killed when ctx is done.
func NewPlayer(ctx context.Context, options *PlayerOptions) *Player {
	cmd := exec.CommandContext(ctx, "ffplay", playerArguments(options)...)
	// Run ffplay in a separate process group to keep it from listening on
	// signals sent to the host process.
	// NOTE: Does not work on Windows
	cmd.SysProcAttr = &syscall.SysProcAttr{Pgid: 0, Setpgid: true}

	// Read content from stdin
	stdinReader, stdinWriter := io.Pipe()
	cmd.Stdin = stdinReader

	return &Player{
		stdinWriter: stdinWriter,
		cmd:         cmd,
	}
}

// Run starts ffplay and waits for it to exit, which happens once all written
// data has been played or the window is closed.
func (p *Player) Run() error {
	// Output ffplay's logs as debug logs
	reader, writer := io.Pipe()
	p.cmd.Stdout = writer
	p.cmd.Stderr = writer
	go func() {
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			slog.Debug(scanner.Text())
		}
	}()

	slog.Debug("Starting ffplay")
	err := p.cmd.Run()
	writer.Close()
	// Unblock any writer if ffplay exited early
	p.stdinWriter.CloseWithError(io.ErrClosedPipe)
	return err
}

// Write implements io.Writer.
func (p *Player) Write(d []byte) (n int, err error) {
	return p.stdinWriter.Write(d)
}

// Close implements io.WriteCloser. Closing the player signals the end of the
// stream.
func (p *Player) Close() error {
	return p.stdinWriter.Close()
}
