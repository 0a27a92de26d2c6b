package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/tabmark"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of parallel conversions when
// Batch.Concurrency is unset.
const DefaultConcurrency = 4

// Batch converts many documents in parallel.
type Batch struct {
	Converter tabmark.DocumentConverter

	// Concurrency bounds parallel conversions. Defaults to DefaultConcurrency.
	Concurrency int

	// Progress, if set, is called once per document. Calls are serialized.
	Progress tabmark.ProgressFunc
}

// ConvertAll converts docs with mode.
//
// With PolicyAllOrNothing the first failure is returned and no results are.
// With PolicyPartial successes and failures are both reported, in input
// order, and an error is returned only when every document failed.
// The context is checked between documents.
func (b *Batch) ConvertAll(ctx context.Context, docs []tabmark.RawDocument, mode tabmark.SelectionMode, policy tabmark.Policy) (*tabmark.BatchResult, error) {
	limit := b.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]*tabmark.ConversionResult, len(docs))
	errs := make([]error, len(docs))

	var (
		mu        sync.Mutex
		completed int
	)
	report := func(i int, err error) {
		if b.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		completed++
		b.Progress(tabmark.Progress{URL: docs[i].URL, Completed: completed, Total: len(docs), Error: err})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return err
			}
			r, err := b.Converter.ConvertDocument(docs[i], mode)
			report(i, err)
			if err != nil {
				errs[i] = err
				if policy == tabmark.PolicyAllOrNothing {
					return err
				}
				return nil
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &tabmark.BatchResult{}
	for i, r := range results {
		if r != nil {
			out.Results = append(out.Results, *r)
			continue
		}
		out.Failures = append(out.Failures, tabmark.Failure{URL: docs[i].URL, Err: errs[i]})
	}
	if len(docs) > 0 && len(out.Results) == 0 {
		return out, fmt.Errorf("all %d documents failed: %w", len(docs), errors.Join(errs...))
	}
	return out, nil
}
