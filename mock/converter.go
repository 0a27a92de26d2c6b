package mock

import (
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

var (
	_ tabmark.Selector          = (*Selector)(nil)
	_ tabmark.Sanitizer         = (*Sanitizer)(nil)
	_ tabmark.Renderer          = (*Renderer)(nil)
	_ tabmark.DocumentConverter = (*DocumentConverter)(nil)
)

// Selector is a mock implementation of tabmark.Selector.
type Selector struct {
	SelectFn func(doc *html.Node, mode tabmark.SelectionMode) *html.Node
}

func (s *Selector) Select(doc *html.Node, mode tabmark.SelectionMode) *html.Node {
	return s.SelectFn(doc, mode)
}

// Sanitizer is a mock implementation of tabmark.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(n *html.Node) *html.Node
}

func (s *Sanitizer) Sanitize(n *html.Node) *html.Node {
	return s.SanitizeFn(n)
}

// Renderer is a mock implementation of tabmark.Renderer.
type Renderer struct {
	RenderFn func(n *html.Node) (string, error)
}

func (r *Renderer) Render(n *html.Node) (string, error) {
	return r.RenderFn(n)
}

// DocumentConverter is a mock implementation of tabmark.DocumentConverter.
type DocumentConverter struct {
	ConvertDocumentFn func(raw tabmark.RawDocument, mode tabmark.SelectionMode) (*tabmark.ConversionResult, error)
}

func (c *DocumentConverter) ConvertDocument(raw tabmark.RawDocument, mode tabmark.SelectionMode) (*tabmark.ConversionResult, error) {
	return c.ConvertDocumentFn(raw, mode)
}
