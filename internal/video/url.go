package video

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrInvalidID = errors.New("invalid video id")
)

var idRegex = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// WatchURL returns the canonical watch URL for a video.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// ParseID returns the video id of s, which may be either a bare id or a
// YouTube URL (watch, shorts, embed or youtu.be).
func ParseID(s string) (string, error) {
	s = strings.TrimSpace(s)
	if idRegex.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ErrInvalidID
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	id := ""
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if u.Path == "/watch" {
			id = u.Query().Get("v")
		} else {
			for _, prefix := range []string{"/shorts/", "/embed/", "/live/", "/v/"} {
				if strings.HasPrefix(u.Path, prefix) {
					id, _, _ = strings.Cut(strings.TrimPrefix(u.Path, prefix), "/")
					break
				}
			}
		}
	}

	if !idRegex.MatchString(id) {
		return "", ErrInvalidID
	}

	return id, nil
}
