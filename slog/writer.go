package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// Ensure LoggingWriter implements tabmark.MarkdownWriter.
var _ tabmark.MarkdownWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a MarkdownWriter with logging.
type LoggingWriter struct {
	next   tabmark.MarkdownWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next tabmark.MarkdownWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteMarkdown logs the name, the resulting path and the content size.
func (w *LoggingWriter) WriteMarkdown(ctx context.Context, name, content string) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write",
			"name", name,
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteMarkdown(ctx, name, content)
}
