// Package homepage fetches a blog's homepage to learn its display name.
package homepage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a homepage is read.
const maxBodySize = 1 << 20

// ErrNoTitle is returned when the page has no usable <title>.
var ErrNoTitle = errors.New("homepage has no title")

// Fetcher resolves blog names from their homepage title.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher allowing perMinute requests per minute.
func NewFetcher(timeout time.Duration, perMinute int) *Fetcher {
	if perMinute < 1 {
		perMinute = 1
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(perMinute)),
			perMinute,
		),
	}
}

// FetchName downloads blogURL and returns the collapsed text of its <title>.
func (f *Fetcher) FetchName(ctx context.Context, blogURL string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blogURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch homepage: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch homepage: status %d", resp.StatusCode)
	}

	return ExtractTitle(io.LimitReader(resp.Body, maxBodySize))
}

// ExtractTitle returns the first <title> of an HTML document with whitespace
// collapsed.
func ExtractTitle(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	inTitle := false
	var b strings.Builder

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("failed to parse homepage: %w", err)
			}
			return finishTitle(b.String())

		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" {
				inTitle = true
			}

		case html.TextToken:
			if inTitle {
				b.Write(tokenizer.Text())
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "title" && inTitle {
				return finishTitle(b.String())
			}
		}
	}
}

func finishTitle(raw string) (string, error) {
	title := strings.Join(strings.Fields(raw), " ")
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
