package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/tabmark"
)

// MaxIndexDepth bounds how many levels of nested sitemap indexes are followed.
const MaxIndexDepth = 3

// Ensure SitemapService implements tabmark.SitemapService.
var _ tabmark.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
// host, deduplicated, in the order they were listed.
//
// When baseURL has a non-root path (e.g. https://example.com/docs/), only
// URLs below that path are returned. A site without sitemaps yields an
// empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *tabmark.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, tabmark.Errorf(tabmark.EINVALID, "invalid base URL %q", baseURL)
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	sitemaps, err := s.locate(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &walker{svc: s, visited: make(map[string]bool), listed: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm, 0); err != nil {
			return nil, err
		}
	}

	scope := strings.TrimSuffix(base.Path, "/")
	urls := slices.DeleteFunc(w.urls, func(u string) bool {
		return !inScope(u, scope) || !filter.Match(u)
	})
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// inScope reports whether rawURL's path is scope or below it. An empty
// scope admits everything. /docs admits /docs/intro but not /documentation.
func inScope(rawURL, scope string) bool {
	if scope == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == scope || strings.HasPrefix(u.Path, scope+"/")
}

// locate returns the sitemaps named in robots.txt, or /sitemap.xml when
// robots.txt names none and that file exists.
func (s *SitemapService) locate(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.robotsSitemaps(ctx, robots); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

// robotsSitemaps extracts Sitemap: directives from robots.txt.
// Directive names are case-insensitive.
func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		name, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// walker collects URLs from a tree of sitemaps.
type walker struct {
	svc     *SitemapService
	visited map[string]bool
	listed  map[string]bool
	urls    []string
}

// walk reads one sitemap. A <sitemapindex> is followed up to MaxIndexDepth
// levels; anything else is read as a <urlset>. Child sitemaps that no longer
// exist are skipped.
func (w *walker) walk(ctx context.Context, sitemapURL string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.document(ctx, sitemapURL)
	if err != nil {
		if depth > 0 && tabmark.ErrorCode(err) == tabmark.ENOTFOUND {
			return nil
		}
		return err
	}

	if root.Tag == "sitemapindex" {
		if depth >= MaxIndexDepth {
			return nil
		}
		for _, child := range locs(root, "sitemap") {
			if err := w.walk(ctx, child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, u := range locs(root, "url") {
		if !w.listed[u] {
			w.listed[u] = true
			w.urls = append(w.urls, u)
		}
	}
	return nil
}

// locs returns the non-empty <loc> values of root's children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// document fetches and parses a sitemap. Gzip-compressed sitemaps are
// detected by their magic bytes.
func (s *SitemapService) document(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := bufio.NewReader(body)
	var src io.Reader = r
	if magic, err := r.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, tabmark.Errorf(tabmark.EINVALID, "sitemap %s: %v", sitemapURL, err)
		}
		defer gz.Close()
		src = gz
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(src); err != nil {
		return nil, tabmark.Errorf(tabmark.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, tabmark.Errorf(tabmark.EINVALID, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

// get fetches targetURL and returns the response body.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := statusError(resp.StatusCode, targetURL); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// exists reports whether a HEAD request for targetURL returns 200 OK.
func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
