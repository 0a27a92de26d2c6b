// Package fs reads HTML from local files and writes Markdown to disk.
package fs

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tabmark"
)

// URLToPath converts a page URL to a relative Markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", tabmark.Errorf(tabmark.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	p := strings.TrimPrefix(u.Path, "/")
	switch {
	case p == "":
		return "index.md", nil
	case strings.HasSuffix(p, "/"):
		return p + "index.md", nil
	case strings.HasSuffix(p, ".html"), strings.HasSuffix(p, ".htm"):
		return strings.TrimSuffix(p, filepath.Ext(p)) + ".md", nil
	default:
		return p + ".md", nil
	}
}

// Ensure Writer implements tabmark.MarkdownWriter at compile time.
var _ tabmark.MarkdownWriter = (*Writer)(nil)

// Writer writes Markdown files below a base directory.
type Writer struct {
	baseDir string
	logger  *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger reports skipped writes at debug level.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string, opts ...WriterOption) *Writer {
	w := &Writer{baseDir: baseDir, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteMarkdown writes content to name below the base directory and returns
// the file's path. name may contain subdirectories but must stay below the
// base directory.
//
// The file is replaced atomically. A file whose content already has the
// same digest is left untouched.
func (w *Writer) WriteMarkdown(ctx context.Context, name, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !filepath.IsLocal(name) {
		return "", tabmark.Errorf(tabmark.EINVALID, "invalid file name %q", name)
	}

	path := filepath.Join(w.baseDir, name)
	if unchanged(path, content) {
		w.logger.Debug("unchanged", "path", path)
		return path, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// unchanged reports whether the file at path already holds content.
func unchanged(path, content string) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64String(content)
}
