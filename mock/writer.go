package mock

import (
	"context"

	"github.com/fwojciec/tabmark"
)

var _ tabmark.MarkdownWriter = (*MarkdownWriter)(nil)

// MarkdownWriter is a mock implementation of tabmark.MarkdownWriter.
type MarkdownWriter struct {
	WriteMarkdownFn func(ctx context.Context, name, content string) (string, error)
}

func (w *MarkdownWriter) WriteMarkdown(ctx context.Context, name, content string) (string, error) {
	return w.WriteMarkdownFn(ctx, name, content)
}
