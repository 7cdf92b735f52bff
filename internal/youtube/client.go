package youtube

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var initialDataRegex = regexp.MustCompile(`var ytInitialData = (.*?)};`)

var (
	ErrTooManyRequests = errors.New("too many requests")
	ErrNoInitialData   = errors.New("unable to find initial data in response")
)

// DefaultBaseURL is the origin pages are scraped from.
var DefaultBaseURL = &url.URL{Scheme: "https", Host: "www.youtube.com"}

type Options struct {
	// HTTPClient is used to perform requests. Its CheckRedirect is replaced.
	// Defaults to a new client.
	HTTPClient *http.Client
	// BaseURL defaults to DefaultBaseURL.
	BaseURL *url.URL
}

// Client scrapes YouTube's web pages for search results and related videos.
type Client struct {
	client  *http.Client
	baseURL *url.URL
}

func NewClient(options *Options) *Client {
	if options == nil {
		options = &Options{}
	}

	client := &http.Client{}
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		client = &clone
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		// YouTube has started to redirect users to a /sorry page when some rate
		// is reached. The URL causes the golang HTTP client to get stuck in a
		// redirect loop. Catch this edge case
		if req.URL.Hostname() == "www.google.com" && strings.HasPrefix(req.URL.Path, "/sorry") {
			return ErrTooManyRequests
		}

		return nil
	}

	baseURL := options.BaseURL
	if baseURL == nil {
		baseURL = DefaultBaseURL
	}

	return &Client{
		client:  client,
		baseURL: baseURL,
	}
}

// fetchInitialData requests the page at path and returns the raw JSON of the
// page's ytInitialData variable.
func (c *Client) fetchInitialData(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := *c.baseURL
	u.Path = path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	// Without a language preference the page's texts are localized by origin
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrTooManyRequests) {
			return nil, ErrTooManyRequests
		}
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return nil, ErrTooManyRequests
	} else if res.StatusCode != http.StatusOK {
		slog.Error("Unexpected response from YouTube", slog.String("path", path), slog.String("status", res.Status))
		return nil, fmt.Errorf("unexpected status: %s", res.Status)
	}

	return extractInitialData(res.Body)
}

func extractInitialData(r io.Reader) ([]byte, error) {
	// Read just as little as is requried to match the initial data
	var buffer bytes.Buffer
	reader := bufio.NewReader(io.TeeReader(r, &buffer))
	match := initialDataRegex.FindReaderIndex(reader)
	if match == nil {
		return nil, ErrNoInitialData
	}

	// Extract the match, dropping the variable declaration and the trailing ;
	return buffer.Bytes()[match[0]+20 : match[1]-1], nil
}

type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// String returns the text, joining runs if necessary.
func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}

	var builder strings.Builder
	for _, run := range t.Runs {
		builder.WriteString(run.Text)
	}
	return builder.String()
}

type thumbnailList struct {
	Thumbnails []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"thumbnails"`
}
