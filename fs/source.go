package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html/charset"
)

// Stdin is the target that reads from standard input.
const Stdin = "-"

// Ensure Source implements tabmark.Source at compile time.
var _ tabmark.Source = (*Source)(nil)

// Source reads HTML documents from local files.
type Source struct {
	// Stdin is read for the "-" target. Defaults to os.Stdin.
	Stdin io.Reader
}

// Snapshot reads the file at target, or standard input for "-".
// The markup is decoded to UTF-8 using its <meta charset>. The title is the
// document's <title>, else the file name without extension. The URL is a
// file:// URL of the absolute path, or empty for standard input.
func (s *Source) Snapshot(ctx context.Context, target string) (*tabmark.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.read(target)
	if err != nil {
		return nil, err
	}

	r, err := charset.NewReader(bytes.NewReader(raw), "text/html")
	if err != nil {
		return nil, err
	}
	markup, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &tabmark.RawDocument{Markup: string(markup)}
	doc.Title = title(doc.Markup)
	if target != Stdin {
		abs, err := filepath.Abs(target)
		if err != nil {
			return nil, err
		}
		doc.URL = "file://" + filepath.ToSlash(abs)
		if doc.Title == "" {
			doc.Title = strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
		}
	}
	return doc, nil
}

func (s *Source) read(target string) ([]byte, error) {
	if target == Stdin {
		in := s.Stdin
		if in == nil {
			in = os.Stdin
		}
		return io.ReadAll(in)
	}

	b, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, tabmark.Errorf(tabmark.ENOTFOUND, "file not found: %s", target)
	}
	return b, err
}

func title(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}
