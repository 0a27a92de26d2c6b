package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// Ensure LoggingSitemapService implements tabmark.SitemapService.
var _ tabmark.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each sitemap expansion.
type LoggingSitemapService struct {
	next   tabmark.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next tabmark.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the base URL, the filter sizes and how many pages the
// sitemaps listed.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *tabmark.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", baseURL, "pages", len(urls)}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("sitemap", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
