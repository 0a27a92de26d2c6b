package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure Sanitizer implements tabmark.Sanitizer at compile time.
var _ tabmark.Sanitizer = (*Sanitizer)(nil)

// DisallowedTags are always removed by a Sanitizer.
var DisallowedTags = []string{"script", "style"}

// Sanitizer removes disallowed elements and their subtrees.
type Sanitizer struct {
	selector string
}

// NewSanitizer creates a Sanitizer removing DisallowedTags plus extra tags.
func NewSanitizer(extra ...string) *Sanitizer {
	tags := append(append([]string{}, DisallowedTags...), extra...)
	return &Sanitizer{selector: strings.Join(tags, ", ")}
}

// Sanitize returns a deep copy of n without disallowed elements at any
// depth. Attributes of the remaining nodes are copied unchanged and n is
// never modified. A disallowed n yields an empty document node.
func (s *Sanitizer) Sanitize(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}

	clone := goquery.NewDocumentFromNode(n).Clone()
	if clone.Is(s.selector) {
		return &html.Node{Type: html.DocumentNode}
	}
	clone.Find(s.selector).Remove()
	return clone.Get(0)
}
