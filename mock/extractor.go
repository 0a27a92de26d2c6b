package mock

import "github.com/fwojciec/tabmark"

var _ tabmark.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of tabmark.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*tabmark.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*tabmark.ExtractResult, error) {
	return e.ExtractFn(html)
}
