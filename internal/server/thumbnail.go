package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/AlexGustafsson/ytjs/internal/video"
)

var (
	ErrHostNotAllowed = errors.New("thumbnail host not allowed")
)

// thumbnailURL parses and validates a thumbnail URL.
func (s *Server) thumbnailURL(raw string) (*url.URL, error) {
	u, err := url.Parse(video.NormalizeThumbnailURL(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid thumbnail url: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, ErrHostNotAllowed
	}

	if !s.thumbnailHosts[strings.ToLower(u.Hostname())] {
		return nil, ErrHostNotAllowed
	}

	return u, nil
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	u, err := s.thumbnailURL(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.httpClient.Do(req)
	if err != nil {
		slog.Warn("Failed to fetch thumbnail", slog.String("url", u.String()), slog.Any("error", err))
		writeError(w, http.StatusBadGateway, errors.New("failed to fetch thumbnail"))
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slog.Warn("Unexpected thumbnail status code", slog.String("url", u.String()), slog.Int("statusCode", res.StatusCode))
		writeError(w, http.StatusBadGateway, fmt.Errorf("unexpected status code %d", res.StatusCode))
		return
	}

	for _, header := range []string{"Content-Type", "Content-Length", "Cache-Control", "Last-Modified", "ETag"} {
		if value := res.Header.Get(header); value != "" {
			w.Header().Set(header, value)
		}
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, res.Body); err != nil {
		slog.Debug("Failed to proxy thumbnail", slog.String("url", u.String()), slog.Any("error", err))
	}
}
