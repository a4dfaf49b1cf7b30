package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetcherFetch tests HTTP fetching and combined text extraction
// against a local test server.
func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, description and paragraphs", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><head>
				<title>Acme Studio</title>
				<meta name="description" content="Design agency in Lisbon">
			</head><body>
				<p>We build brands.</p>
				<p>Talk to us.</p>
			</body></html>`))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		page, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "Acme Studio Design agency in Lisbon We build brands. Talk to us."
		if page.CombinedText != want {
			t.Errorf("got combined text %q, expected %q", page.CombinedText, want)
		}
		if page.ContentHash == "" {
			t.Error("expected a content hash for a non-empty body")
		}
		if len(page.ContentHash) != 64 {
			t.Errorf("got hash length %d, expected 64 hex characters", len(page.ContentHash))
		}
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotUA != DefaultUserAgent {
			t.Errorf("got user agent %q, expected %q", gotUA, DefaultUserAgent)
		}
	})

	t.Run("non-2xx status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
			t.Fatal("expected an error for status 404")
		}
	})

	t.Run("body is capped at the configured limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 1024)))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), WithMaxBodySize(100))
		page, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.HTML) != 100 {
			t.Errorf("got body length %d, expected the 100 byte cap", len(page.HTML))
		}
	})

	t.Run("paragraph extraction stops at the cap", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("<html><body>")
		for i := 0; i < maxParagraphs+5; i++ {
			sb.WriteString("<p>para</p>")
		}
		sb.WriteString("</body></html>")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sb.String()))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client())
		page, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Count(page.CombinedText, "para"); got != maxParagraphs {
			t.Errorf("got %d paragraphs in combined text, expected %d", got, maxParagraphs)
		}
	})

	t.Run("slow server times out", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), WithTimeout(50*time.Millisecond))
		if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
			t.Fatal("expected a timeout error")
		}
	})

	t.Run("canceled context aborts the fetch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := NewFetcher(srv.Client())
		if _, err := f.Fetch(ctx, srv.URL); err == nil {
			t.Fatal("expected an error for a canceled context")
		}
	})
}
