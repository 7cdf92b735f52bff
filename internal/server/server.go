// Package server exposes the gateway over a JSON HTTP API.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/AlexGustafsson/ytjs/internal/gateway"
	"github.com/AlexGustafsson/ytjs/internal/playback"
	"github.com/AlexGustafsson/ytjs/internal/video"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

// VideoSearcher searches for videos. It is implemented by gateway.Gateway.
type VideoSearcher interface {
	Search(ctx context.Context, query string) []video.Summary
	Category(ctx context.Context, name string) []video.Summary
	Popular(ctx context.Context) []video.Summary
	Categories() []string
	Related(ctx context.Context, id string) []video.Summary
}

// DetailsProvider looks up video details. It is implemented by
// playback.Client.
type DetailsProvider interface {
	Details(ctx context.Context, id string) (*playback.Details, error)
}

var _ VideoSearcher = (*gateway.Gateway)(nil)
var _ DetailsProvider = (*playback.Client)(nil)

type Options struct {
	Searcher VideoSearcher
	Details  DetailsProvider
	// ThumbnailHosts are the hosts thumbnails may be proxied from.
	ThumbnailHosts []string
	// HTTPClient is used to proxy thumbnails. Its CheckRedirect is replaced.
	// Defaults to a new client.
	HTTPClient *http.Client
}

// Server serves the API and the embedded page.
type Server struct {
	searcher       VideoSearcher
	details        DetailsProvider
	thumbnailHosts map[string]bool
	httpClient     *http.Client

	router chi.Router
}

type videosResponse struct {
	Videos []video.Summary `json:"videos"`
	Token  string          `json:"token,omitempty"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(options *Options) *Server {
	httpClient := &http.Client{}
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		httpClient = &clone
	}

	thumbnailHosts := make(map[string]bool)
	for _, host := range options.ThumbnailHosts {
		thumbnailHosts[strings.ToLower(host)] = true
	}

	s := &Server{
		searcher:       options.Searcher,
		details:        options.Details,
		thumbnailHosts: thumbnailHosts,
		httpClient:     httpClient,
	}

	// Redirects must stay on allowed hosts
	httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 10 {
			return errors.New("stopped after 10 redirects")
		}
		_, err := s.thumbnailURL(req.URL.String())
		return err
	}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/popular", s.handlePopular)
		r.Get("/categories", s.handleCategories)
		r.Get("/categories/{name}", s.handleCategory)
		r.Get("/videos/{id}", s.handleVideo)
		r.Get("/videos/{id}/related", s.handleRelated)
		r.Get("/thumbnail", s.handleThumbnail)
	})
	r.Handle("/*", http.FileServer(http.FS(static)))

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("q") {
		writeError(w, http.StatusBadRequest, gateway.ErrMissingQuery)
		return
	}

	videos := s.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	writeVideos(w, r, videos)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	writeVideos(w, r, s.searcher.Popular(r.Context()))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: s.searcher.Categories()})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	writeVideos(w, r, s.searcher.Category(r.Context(), chi.URLParam(r, "name")))
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	id, err := video.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	details, err := s.details.Details(r.Context(), id)
	if err != nil {
		slog.Warn("Failed to fetch video details", slog.String("id", id), slog.Any("error", err))
		writeError(w, http.StatusBadGateway, errors.New("failed to fetch video details"))
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	id, err := video.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeVideos(w, r, s.searcher.Related(r.Context(), id))
}

func writeVideos(w http.ResponseWriter, r *http.Request, videos []video.Summary) {
	if videos == nil {
		videos = []video.Summary{}
	}

	writeJSON(w, http.StatusOK, videosResponse{
		Videos: videos,
		Token:  r.URL.Query().Get("token"),
	})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("Failed to write response", slog.Any("error", err))
	}
}

// recoverer turns panics into an empty video list.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				slog.Error("Unexpected failure while handling request",
					slog.String("path", r.URL.Path),
					slog.String("requestId", middleware.GetReqID(r.Context())),
					slog.Any("panic", rvr),
					slog.String("stack", string(debug.Stack())),
				)
				writeJSON(w, http.StatusInternalServerError, videosResponse{Videos: []video.Summary{}})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
