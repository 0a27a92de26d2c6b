// Package readability detects the main article of a page with go-readability.
package readability

import (
	"fmt"
	"strings"

	"github.com/fwojciec/tabmark"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements tabmark.Extractor at compile time.
var _ tabmark.Extractor = (*Extractor)(nil)

// Extractor finds the article region of a page with Mozilla's Readability
// heuristics. It is the alternative to the trafilatura extractor.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article HTML and title of rawHTML.
// Returns EINVALID for blank input and ENOTFOUND when no article is found.
func (e *Extractor) Extract(rawHTML string) (*tabmark.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tabmark.Errorf(tabmark.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, tabmark.Errorf(tabmark.ENOTFOUND, "no article content found")
	}

	return &tabmark.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
