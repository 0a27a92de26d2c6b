package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// Ensure LoggingSource implements tabmark.Source.
var _ tabmark.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging.
type LoggingSource struct {
	next   tabmark.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next tabmark.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Snapshot logs the target, the final URL and the markup size.
func (s *LoggingSource) Snapshot(ctx context.Context, target string) (doc *tabmark.RawDocument, err error) {
	defer func(begin time.Time) {
		attrs := []any{"target", target}
		if doc != nil {
			attrs = append(attrs, "url", doc.URL, "bytes", len(doc.Markup))
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("snapshot", attrs...)
	}(time.Now())
	return s.next.Snapshot(ctx, target)
}
