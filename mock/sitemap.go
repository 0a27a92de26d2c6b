package mock

import (
	"context"

	"github.com/fwojciec/tabmark"
)

var _ tabmark.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of tabmark.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *tabmark.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *tabmark.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
