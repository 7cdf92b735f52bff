package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/AlexGustafsson/ytjs/internal/gateway"
	"github.com/AlexGustafsson/ytjs/internal/playback"
	"github.com/AlexGustafsson/ytjs/internal/video"
)

var (
	ErrNoResults    = errors.New("no results")
	ErrInvalidIndex = errors.New("invalid index")
)

type searcher interface {
	Search(ctx context.Context, query string) []video.Summary
}

// session searches and plays videos on behalf of a terminal user.
type session struct {
	searcher searcher
	widget   playback.Widget
	options  *playback.PlayOptions
	output   io.Writer

	sequencer gateway.Sequencer
	wg        sync.WaitGroup

	mutex   sync.Mutex
	results []video.Summary
}

func newSession(searcher searcher, widget playback.Widget, options *playback.PlayOptions, output io.Writer) *session {
	return &session{
		searcher: searcher,
		widget:   widget,
		options:  options,
		output:   output,
	}
}

// Search searches for query and lists the results.
func (s *session) Search(ctx context.Context, query string) []video.Summary {
	results := s.searcher.Search(ctx, query)
	s.setResults(results)
	s.print(results)
	return results
}

// SearchAsync searches for query in the background. Only the results of the
// latest search are listed.
func (s *session) SearchAsync(ctx context.Context, query string) {
	ctx, token := s.sequencer.Begin(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		results := s.searcher.Search(ctx, query)
		if ctx.Err() != nil || !s.sequencer.Latest(token) {
			slog.Debug("Discarding stale results", slog.String("query", query), slog.Uint64("token", uint64(token)))
			return
		}

		s.setResults(results)
		s.print(results)
	}()
}

// Play plays the video at index in the latest listed results.
func (s *session) Play(ctx context.Context, index int) error {
	s.mutex.Lock()
	if len(s.results) == 0 {
		s.mutex.Unlock()
		return ErrNoResults
	}
	if index < 0 || index >= len(s.results) {
		s.mutex.Unlock()
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	result := s.results[index]
	s.mutex.Unlock()

	options := playback.PlayOptions{}
	if s.options != nil {
		options = *s.options
	}
	options.Title = result.Title

	fmt.Fprintf(s.output, "Playing %s (%s)\n", result.Title, video.WatchURL(result.ID))
	return s.widget.Play(ctx, video.WatchURL(result.ID), &options)
}

// Handle handles a line of interactive input. Lines are either queries or
// "play <n>".
func (s *session) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if rest, ok := strings.CutPrefix(line, "play "); ok {
		index, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidIndex, rest)
		}
		// Any pending search would replace the results being played
		s.sequencer.Close()
		return s.Play(ctx, index)
	}

	s.SearchAsync(ctx, line)
	return nil
}

// Wait waits for background searches to finish.
func (s *session) Wait() {
	s.wg.Wait()
}

func (s *session) setResults(results []video.Summary) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.results = results
}

func (s *session) print(results []video.Summary) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(results) == 0 {
		fmt.Fprintln(s.output, "No results")
		return
	}

	for i, result := range results {
		if result.Duration != "" {
			fmt.Fprintf(s.output, "%2d. %s - %s [%s]\n", i, result.Title, result.ChannelTitle, result.Duration)
		} else {
			fmt.Fprintf(s.output, "%2d. %s - %s\n", i, result.Title, result.ChannelTitle)
		}
	}
}
