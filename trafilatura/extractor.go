// Package trafilatura detects the main article of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/tabmark"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements tabmark.Extractor at compile time.
var _ tabmark.Extractor = (*Extractor)(nil)

// Extractor finds the article region of a page for SelectArticle.
// Links and images are kept so they survive into the Markdown.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			IncludeLinks:   true,
			IncludeImages:  true,
		},
	}
}

// Extract returns the article HTML and title of rawHTML.
// Returns EINVALID for blank input and ENOTFOUND when no article is found.
func (e *Extractor) Extract(rawHTML string) (*tabmark.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tabmark.Errorf(tabmark.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, fmt.Errorf("trafilatura: %w", err)
	}
	if result.ContentNode == nil {
		return nil, tabmark.Errorf(tabmark.ENOTFOUND, "no article content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, fmt.Errorf("render article: %w", err)
	}

	return &tabmark.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: buf.String(),
	}, nil
}
