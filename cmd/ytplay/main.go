package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlexGustafsson/ytjs/internal/config"
	"github.com/AlexGustafsson/ytjs/internal/gateway"
	"github.com/AlexGustafsson/ytjs/internal/playback"
)

func run(ctx context.Context, s *session, query string, index int) error {
	results := s.Search(ctx, query)
	if len(results) == 0 {
		return ErrNoResults
	}

	return s.Play(ctx, index)
}

func interactive(ctx context.Context, s *session) error {
	fmt.Fprintln(os.Stdout, `Type a query to search, "play <n>" to play a result`)

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		errs <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			s.Wait()
			return nil
		case err := <-errs:
			s.Wait()
			return err
		case line := <-lines:
			if err := s.Handle(ctx, line); err != nil {
				slog.Error("Failed to handle input", slog.String("input", line), slog.Any("error", err))
			}
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to the config file (defaults to $YTJS_CONFIG or config.yaml)")
	audioOnly := flag.Bool("audio", false, "play audio only")
	index := flag.Int("index", 0, "index of the search result to play")
	maxHeight := flag.Int("max-height", 0, "maximum video height, 0 for best available")
	isInteractive := flag.Bool("i", false, "read queries from stdin")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <query>\n       %s [flags] -i\n", os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*isInteractive && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("YTJS_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	gw := gateway.New(cfg.SearchProvider(), cfg.GatewayOptions(nil))
	s := newSession(gw, &playback.FFPlayWidget{}, &playback.PlayOptions{
		AudioOnly: *audioOnly,
		MaxHeight: *maxHeight,
	}, os.Stdout)

	// Exit on SIGINT or SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		abort := make(chan os.Signal, 1)
		signal.Notify(abort, syscall.SIGINT, syscall.SIGTERM)
		caught := 0
		for {
			<-abort
			caught++
			if caught == 1 {
				slog.Info("Caught signal, exiting gracefully")
				cancel()
			} else {
				slog.Info("Caught signal, exiting now")
				os.Exit(1)
			}
		}
	}()

	if *isInteractive {
		err = interactive(ctx, s)
	} else {
		err = run(ctx, s, flag.Arg(0), *index)
	}
	if err != nil {
		slog.Error("Program was unsuccessful", slog.Any("error", err))
		os.Exit(1)
	}
}
