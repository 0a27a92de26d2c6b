// Package goquery implements content selection and sanitization of HTML
// node trees using CSS selectors.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure Selector implements tabmark.Selector at compile time.
var _ tabmark.Selector = (*Selector)(nil)

// DefaultDesignation is the CSS selector of the main content region.
const DefaultDesignation = "main"

// Selector picks the conversion root of a parsed document.
type Selector struct {
	designation string
	detector    *Detector
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithDesignation sets the CSS selector of the main region.
func WithDesignation(css string) SelectorOption {
	return func(s *Selector) {
		s.designation = css
	}
}

// WithFrameworkDetection makes SelectMain try the content region of a
// detected documentation framework before falling back to the body.
func WithFrameworkDetection(d *Detector) SelectorOption {
	return func(s *Selector) {
		s.detector = d
	}
}

// NewSelector creates a Selector. The designation defaults to "main".
func NewSelector(opts ...SelectorOption) (*Selector, error) {
	s := &Selector{designation: DefaultDesignation}
	for _, opt := range opts {
		opt(s)
	}
	if err := ValidateSelector(s.designation); err != nil {
		return nil, err
	}
	return s, nil
}

// ValidateSelector returns EINVALID if css is not a valid selector group.
func ValidateSelector(css string) error {
	if _, err := cascadia.ParseGroup(css); err != nil {
		return tabmark.Errorf(tabmark.EINVALID, "invalid CSS selector %q: %v", css, err)
	}
	return nil
}

// Select returns the node to convert. SelectMain returns the first element
// matching the designation, else the body. Every other mode returns the
// body. A document without a body yields doc itself.
func (s *Selector) Select(doc *html.Node, mode tabmark.SelectionMode) *html.Node {
	if doc == nil {
		return nil
	}
	sel := goquery.NewDocumentFromNode(doc)

	root := doc
	if body := sel.Find("body").First(); body.Length() > 0 {
		root = body.Get(0)
	}
	if mode != tabmark.SelectMain {
		return root
	}

	if main := sel.Find(s.designation).First(); main.Length() > 0 {
		return main.Get(0)
	}
	if s.detector != nil {
		if css := ContentSelector(s.detector.Detect(doc)); css != "" {
			if content := sel.Find(css).First(); content.Length() > 0 {
				return content.Get(0)
			}
		}
	}
	return root
}
