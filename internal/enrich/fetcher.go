package enrich

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	"golang.org/x/net/html"
)

// Fetch defaults. The timeout is short on purpose: enrichment is a
// best-effort metadata grab, not a crawl, and a slow site should fail
// fast rather than stall a batch.
const (
	// DefaultTimeout bounds one fetch including body read.
	DefaultTimeout = 8 * time.Second

	// DefaultUserAgent identifies the enricher in server logs.
	DefaultUserAgent = "Mozilla/5.0 (SiteCatalogEnricher/1.0)"

	// DefaultMaxBodySize limits how much HTML is read. 5MB covers any
	// real landing page while bounding memory per batch worker.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// maxParagraphs is how many leading <p> elements feed the combined
	// text blob for industry and tag detection.
	maxParagraphs = 14
)

// Page is the outcome of one successful fetch: the raw HTML plus the
// extracted text blob the industry/tag detectors consume.
type Page struct {
	// FinalURL is the URL after redirects.
	FinalURL string

	// HTML is the raw document, capped at the fetcher's body limit.
	HTML string

	// CombinedText is "<title> <meta description> <first paragraphs>".
	// Empty when HTML extraction failed; detection still runs on HTML.
	CombinedText string

	// ContentHash is the SHA3-256 hex digest of HTML.
	ContentHash string
}

// Fetcher retrieves a site's HTML over HTTP.
//
// Design decision: we take a *http.Client rather than building one
// internally so tests can point the fetcher at httptest servers and
// callers can share connection pools across batch workers.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	timeout     time.Duration
	maxBodySize int64
	logger      *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTimeout sets the per-fetch timeout.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithMaxBodySize sets the response body read limit.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithFetcherLogger sets a custom logger for the fetcher.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher using the given HTTP client.
// A nil client falls back to a dedicated default client.
func NewFetcher(client *http.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch performs a single GET against the normalized URL and returns the
// page content. Network failures and non-2xx statuses return an error;
// HTML text-extraction failures do not, because platform and color
// detection can still run on the raw document.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	page := &Page{
		FinalURL: resp.Request.URL.String(),
		HTML:     string(body),
	}
	if len(body) > 0 {
		sum := sha3.Sum256(body)
		page.ContentHash = hex.EncodeToString(sum[:])
	}

	combined, err := extractCombinedText(page.HTML)
	if err != nil {
		// Degrade: detection proceeds on raw HTML without the text blob.
		f.logger.Warn("failed to extract text", "url", url, "error", err)
	} else {
		page.CombinedText = combined
	}

	return page, nil
}

// extractCombinedText pulls "<title> <meta description> <paragraphs>"
// out of an HTML document. The paragraph count is capped so huge article
// pages do not dominate tag frequencies.
func extractCombinedText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var title, desc string
	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
			case "meta":
				var name, content string
				for _, attr := range n.Attr {
					switch strings.ToLower(attr.Key) {
					case "name":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if desc == "" && strings.EqualFold(name, "description") {
					desc = strings.TrimSpace(content)
				}
			case "p":
				if len(paragraphs) < maxParagraphs {
					paragraphs = append(paragraphs, nodeText(n))
				}
				return // paragraph text already includes nested children
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	parts := []string{title, desc, strings.Join(paragraphs, " ")}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// nodeText concatenates all text nodes beneath n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
