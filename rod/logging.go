package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// Ensure LoggingTabLister implements tabmark.TabLister.
var _ tabmark.TabLister = (*LoggingTabLister)(nil)

// LoggingTabLister wraps a TabLister with logging.
type LoggingTabLister struct {
	next   tabmark.TabLister
	logger *slog.Logger
}

// NewLoggingTabLister creates a new LoggingTabLister.
func NewLoggingTabLister(next tabmark.TabLister, logger *slog.Logger) *LoggingTabLister {
	return &LoggingTabLister{next: next, logger: logger}
}

// Tabs logs how many tabs were read and how many failed.
func (l *LoggingTabLister) Tabs(ctx context.Context) (set *tabmark.TabSet, err error) {
	defer func(begin time.Time) {
		count, failed, active := 0, 0, -1
		if set != nil {
			count, failed, active = len(set.Tabs), len(set.Failures), set.Active
		}
		l.logger.Info("tabs",
			"count", count,
			"failed", failed,
			"active", active,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Tabs(ctx)
}

// ActiveTab logs the active tab's URL and delegates to the wrapped lister.
func (l *LoggingTabLister) ActiveTab(ctx context.Context) (doc *tabmark.RawDocument, err error) {
	defer func(begin time.Time) {
		var url string
		var size int
		if doc != nil {
			url, size = doc.URL, len(doc.Markup)
		}
		l.logger.Info("active tab",
			"url", url,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.ActiveTab(ctx)
}
