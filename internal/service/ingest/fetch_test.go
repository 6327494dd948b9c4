package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/pitchcoach/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastFetcher() *Fetcher {
	return NewFetcherWithTimeout(time.Second, &retry.Config{
		MaxRetries:    2,
		BackoffFactor: 1,
		InitialDelay:  time.Millisecond,
		MaxDelay:      time.Millisecond,
	})
}

func TestFetcher_Fetch(t *testing.T) {
	pdfData := fixture(t, "pricing.pdf")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<h1>Pricing</h1><p>Never discount before the buyer asks.</p>"))
		case "/notes.txt":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("<b>kept as is</b>"))
		case "/playbook.md":
			w.Header().Set("Content-Type", "text/markdown")
			_, _ = w.Write([]byte("# Anchoring\n\nOpen high, then justify."))
		case "/pricing.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(pdfData)
		}
	}))
	t.Cleanup(srv.Close)

	f := fastFetcher()

	in, err := f.Fetch(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, in.Text, "Never discount before the buyer asks.")
	assert.NotContains(t, in.Text, "<p>")
	assert.Equal(t, "127.0.0.1-article", in.Name)

	in, err = f.Fetch(context.Background(), srv.URL+"/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "<b>kept as is</b>", in.Text)

	in, err = f.Fetch(context.Background(), srv.URL+"/playbook.md")
	require.NoError(t, err)
	assert.Contains(t, in.Text, "Open high, then justify.")
	assert.NotContains(t, in.Text, "#")
	assert.Equal(t, "127.0.0.1-playbook.md", in.Name)

	in, err = f.Fetch(context.Background(), srv.URL+"/pricing.pdf")
	require.NoError(t, err)
	assert.Contains(t, in.Text, "Always anchor high and defend value with ROI.")
}

func TestFetcher_RetryPolicy(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		attempts int32
	}{
		{name: "client error is permanent", status: http.StatusNotFound, attempts: 1},
		{name: "server error is retried", status: http.StatusBadGateway, attempts: 3},
		{name: "rate limit is retried", status: http.StatusTooManyRequests, attempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			_, err := fastFetcher().Fetch(context.Background(), srv.URL+"/page")
			require.Error(t, err)
			assert.Equal(t, tt.attempts, calls.Load())
		})
	}
}

func TestFetcher_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com/file", "not a url", "https://"} {
		_, err := fastFetcher().Fetch(context.Background(), raw)
		assert.Error(t, err, raw)
	}
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, retryAfter("2"))
	assert.Zero(t, retryAfter(""))
	assert.Zero(t, retryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
	assert.Zero(t, retryAfter("-1"))
}
