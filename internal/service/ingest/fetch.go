package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/conv"
	"github.com/sandevgo/pitchcoach/pkg/retry"
)

const (
	maxResponseSize     = 8 << 20
	defaultFetchTimeout = 30 * time.Second
)

// Fetcher downloads web pages as training material.
type Fetcher struct {
	client  *http.Client
	retrier *retry.Retrier
}

func NewFetcherWithTimeout(timeout time.Duration, retryCfg *retry.Config) *Fetcher {
	if retryCfg == nil {
		retryCfg = retry.NewDefaultConfig()
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		retrier: retry.NewRetrier(retryCfg),
	}
}

func NewFetcher() *Fetcher {
	return NewFetcherWithTimeout(defaultFetchTimeout, nil)
}

// Fetch downloads rawURL and converts HTML to text. Client errors are not
// retried.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (core.DocumentInput, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return core.DocumentInput{}, fmt.Errorf("invalid url %q", rawURL)
	}

	var text string
	err = f.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("User-Agent", core.CoachUserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to fetch url: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				return retry.After(err, retryAfter(resp.Header.Get("Retry-After")))
			case resp.StatusCode < 500:
				return retry.Permanent(err)
			}
			return err
		}

		body := io.LimitReader(resp.Body, maxResponseSize)
		switch contentType := resp.Header.Get("Content-Type"); {
		case strings.HasPrefix(contentType, "text/plain"):
			var data []byte
			data, err = io.ReadAll(body)
			text = string(data)
		case strings.HasPrefix(contentType, "text/markdown"):
			var data []byte
			if data, err = io.ReadAll(body); err == nil {
				text, err = conv.MarkdownToText(data)
			}
		case strings.HasPrefix(contentType, "application/pdf"):
			var data []byte
			if data, err = io.ReadAll(body); err == nil {
				text, err = conv.PDFToText(data)
			}
		default:
			text, err = conv.HTMLReaderToText(body)
		}
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.DocumentInput{}, err
	}

	return core.DocumentInput{Name: NameFromURL(u), Text: text}, nil
}

// retryAfter reads the delay-seconds form of the header; dates are ignored.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// NameFromURL turns a URL into a library name without path separators,
// e.g. https://example.com/blog/spin-selling -> example.com-spin-selling.
func NameFromURL(u *url.URL) string {
	base := path.Base(strings.TrimSuffix(u.Path, "/"))
	if base == "." || base == "/" || base == "" {
		return u.Hostname()
	}
	return u.Hostname() + "-" + base
}
