package rod

import (
	"context"
	"time"

	"github.com/fwojciec/tabmark"
)

// DefaultTimeout bounds loading and reading one page.
const DefaultTimeout = 10 * time.Second

// Ensure Source implements tabmark.Source at compile time.
var _ tabmark.Source = (*Source)(nil)

// Source renders URLs in a headless Chrome, so client-side content is
// present in the snapshot. Source is safe for concurrent use.
type Source struct {
	manager *BrowserManager
	timeout time.Duration
	settle  time.Duration
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithTimeout sets the per-page timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) SourceOption {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithSettle waits for the DOM to stop changing for d after load,
// for pages that render content after the load event.
func WithSettle(d time.Duration) SourceOption {
	return func(s *Source) {
		s.settle = d
	}
}

// NewSource creates a Source that opens pages from manager.
// The caller keeps ownership of manager.
func NewSource(manager *BrowserManager, opts ...SourceOption) *Source {
	s := &Source{manager: manager, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot navigates to target, waits for it to load and returns the
// rendered document.
func (s *Source) Snapshot(ctx context.Context, target string) (*tabmark.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !Eligible(target) {
		return nil, tabmark.Errorf(tabmark.EINVALID, "not an http(s) URL: %q", target)
	}

	page, release, err := s.manager.NewPage()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(target); err != nil {
		return nil, wrapContext(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, wrapContext(ctx, err)
	}
	if s.settle > 0 {
		if err := page.WaitDOMStable(s.settle, 0); err != nil {
			return nil, wrapContext(ctx, err)
		}
	}

	state, err := snapshot(page)
	if err != nil {
		return nil, wrapContext(ctx, err)
	}
	return &state.Doc, nil
}

// wrapContext prefers the context error, so timeouts are reported as such.
func wrapContext(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
