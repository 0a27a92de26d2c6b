// Package pipeline composes selection, sanitization and rendering into
// document conversion, and converts batches of documents in parallel.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure Converter implements tabmark.DocumentConverter at compile time.
var _ tabmark.DocumentConverter = (*Converter)(nil)

// errInvalidUTF8 is the cause of a ParseError for undecodable markup.
var errInvalidUTF8 = errors.New("markup is not valid UTF-8")

// Converter turns a RawDocument into a ConversionResult.
// All fields except Extractor are required. Without an Extractor,
// SelectArticle behaves like SelectBody.
type Converter struct {
	Selector  tabmark.Selector
	Sanitizer tabmark.Sanitizer
	Renderer  tabmark.Renderer
	Extractor tabmark.Extractor
}

// ConvertDocument parses raw.Markup, selects the subtree for mode, removes
// disallowed elements and renders the rest as Markdown.
//
// Empty markup yields an empty body. Markup that cannot be parsed yields a
// *tabmark.ParseError carrying raw.URL.
func (c *Converter) ConvertDocument(raw tabmark.RawDocument, mode tabmark.SelectionMode) (*tabmark.ConversionResult, error) {
	doc, err := parse(raw)
	if err != nil {
		return nil, err
	}

	title := raw.Title
	root := c.Selector.Select(doc, mode)
	if mode == tabmark.SelectArticle {
		if node, extracted, ok := c.article(raw.Markup); ok {
			root = node
			if strings.TrimSpace(title) == "" {
				title = extracted
			}
		}
	}

	md, err := c.Renderer.Render(c.Sanitizer.Sanitize(root))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", raw.URL, err)
	}

	return &tabmark.ConversionResult{
		Title:    title,
		URL:      raw.URL,
		Markdown: md,
	}, nil
}

// article returns the extracted article root and title. It reports false
// when no extractor is configured or extraction yields nothing usable.
func (c *Converter) article(markup string) (*html.Node, string, bool) {
	if c.Extractor == nil || strings.TrimSpace(markup) == "" {
		return nil, "", false
	}
	res, err := c.Extractor.Extract(markup)
	if err != nil || strings.TrimSpace(res.ContentHTML) == "" {
		return nil, "", false
	}
	doc, err := html.Parse(strings.NewReader(res.ContentHTML))
	if err != nil {
		return nil, "", false
	}
	return c.Selector.Select(doc, tabmark.SelectBody), res.Title, true
}

func parse(raw tabmark.RawDocument) (*html.Node, error) {
	if !utf8.ValidString(raw.Markup) {
		return nil, &tabmark.ParseError{URL: raw.URL, Err: errInvalidUTF8}
	}
	doc, err := html.Parse(strings.NewReader(raw.Markup))
	if err != nil {
		return nil, &tabmark.ParseError{URL: raw.URL, Err: err}
	}
	return doc, nil
}
