package mock

import (
	"context"

	"github.com/fwojciec/tabmark"
)

var (
	_ tabmark.Source    = (*Source)(nil)
	_ tabmark.TabLister = (*TabLister)(nil)
)

// Source is a mock implementation of tabmark.Source.
type Source struct {
	SnapshotFn func(ctx context.Context, target string) (*tabmark.RawDocument, error)
}

func (s *Source) Snapshot(ctx context.Context, target string) (*tabmark.RawDocument, error) {
	return s.SnapshotFn(ctx, target)
}

// TabLister is a mock implementation of tabmark.TabLister.
type TabLister struct {
	TabsFn      func(ctx context.Context) (*tabmark.TabSet, error)
	ActiveTabFn func(ctx context.Context) (*tabmark.RawDocument, error)
}

func (l *TabLister) Tabs(ctx context.Context) (*tabmark.TabSet, error) {
	return l.TabsFn(ctx)
}

func (l *TabLister) ActiveTab(ctx context.Context) (*tabmark.RawDocument, error) {
	return l.ActiveTabFn(ctx)
}
