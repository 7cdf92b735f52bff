package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexGustafsson/ytjs/internal/config"
	"github.com/AlexGustafsson/ytjs/internal/gateway"
	"github.com/AlexGustafsson/ytjs/internal/playback"
	"github.com/AlexGustafsson/ytjs/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout is how long in-flight requests are given to finish.
const shutdownTimeout = 5 * time.Second

func serve(ctx context.Context, httpServer *http.Server) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Failed to shut down server gracefully", slog.String("address", httpServer.Addr), slog.Any("error", err))
		}
	}()

	slog.Info("Listening", slog.String("address", httpServer.Addr))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	metrics := gateway.NewMetrics()

	gw := gateway.New(cfg.SearchProvider(), cfg.GatewayOptions(metrics))
	slog.Info("Initialized gateway",
		slog.String("provider", string(cfg.Provider)),
		slog.String("fallback", string(cfg.Fallback)),
	)

	handler := server.New(&server.Options{
		Searcher:       gw,
		Details:        playback.NewClient(nil),
		ThumbnailHosts: cfg.ThumbnailHosts,
	})

	wg, ctx := errgroup.WithContext(ctx)

	wg.Go(func() error {
		return serve(ctx, &http.Server{
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		})
	})

	if cfg.Prometheus != nil && cfg.Prometheus.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		registry.MustRegister(metrics)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		wg.Go(func() error {
			return serve(ctx, &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Prometheus.Port),
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			})
		})
	}

	return wg.Wait()
}

func main() {
	configPath := flag.String("config", "", "path to the config file (defaults to $YTJS_CONFIG or config.yaml)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	path := *configPath
	if path == "" {
		path = os.Getenv("YTJS_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("Failed to load config", slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

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

	if err := run(ctx, cfg); err != nil {
		slog.Error("Program was unsuccessful", slog.Any("error", err))
		os.Exit(1)
	}
}
