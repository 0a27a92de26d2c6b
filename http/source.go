// Package http snapshots pages over plain HTTP and discovers site URLs from
// sitemaps. It does not execute JavaScript; use package rod for pages that
// need rendering.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultTimeout.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBodySize is the largest response body accepted.
const DefaultMaxBodySize = 10 << 20

// DefaultUserAgent identifies tabmark to servers.
const DefaultUserAgent = "tabmark/1.0 (+https://github.com/fwojciec/tabmark)"

// Ensure Source implements tabmark.Source at compile time.
var _ tabmark.Source = (*Source)(nil)

// Source snapshots URLs with HTTP GET requests.
type Source struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithClient uses client instead of a new http.Client.
// The client's own Timeout is left untouched.
func WithClient(client *http.Client) Option {
	return func(s *Source) {
		s.client = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Source) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the largest response body accepted. Larger
// responses fail with EINVALID rather than being converted in part.
func WithMaxBodySize(n int64) Option {
	return func(s *Source) {
		s.maxBodySize = n
	}
}

// NewSource creates a new HTTP Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Snapshot fetches target and returns its markup decoded to UTF-8, the URL
// after redirects, and the text of the document's <title>.
func (s *Source) Snapshot(ctx context.Context, target string) (*tabmark.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, tabmark.Errorf(tabmark.EINVALID, "invalid URL %q: %v", target, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, target); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if int64(len(raw)) > s.maxBodySize {
		return nil, tabmark.Errorf(tabmark.EINVALID, "response from %s exceeds %d bytes", target, s.maxBodySize)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}
	markup, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}

	return &tabmark.RawDocument{
		Title:  Title(string(markup)),
		URL:    resp.Request.URL.String(),
		Markup: string(markup),
	}, nil
}

// Title returns the trimmed text of the first <title> element in markup.
func Title(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// statusError maps non-200 responses to error codes. Client errors are
// permanent and are not retried; server errors are left uncoded.
func statusError(status int, target string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return tabmark.Errorf(tabmark.ENOTFOUND, "HTTP %d for %s", status, target)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("HTTP %d for %s", status, target)
	case status >= 400 && status < 500:
		return tabmark.Errorf(tabmark.EINVALID, "HTTP %d for %s", status, target)
	default:
		return fmt.Errorf("HTTP %d for %s", status, target)
	}
}
