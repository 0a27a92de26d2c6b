// Package acquire snapshots many targets concurrently with retries,
// per-domain rate limiting and a batch failure policy.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/tabmark"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Runner snapshots targets through a Source.
type Runner struct {
	Source tabmark.Source

	// Limiter, if set, paces requests per domain.
	Limiter tabmark.DomainLimiter

	// Concurrency bounds parallel snapshots. Defaults to 4.
	Concurrency int

	// RetryDelays are the waits between attempts. Nil means
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	// Logger receives one line per run and per failed target.
	Logger *slog.Logger

	// Progress, if set, is called once per target. Calls are serialized.
	Progress tabmark.ProgressFunc
}

// SnapshotAll acquires every target and returns the documents in target order.
//
// With PolicyAllOrNothing the first failure aborts the run and is returned.
// With PolicyPartial failed targets are reported in failures, in target
// order, and an error is returned only when every target failed.
func (r *Runner) SnapshotAll(ctx context.Context, targets []string, policy tabmark.Policy) (docs []tabmark.RawDocument, failures []tabmark.Failure, err error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("run", uuid.NewString())

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	start := time.Now()
	defer func() {
		logger.Info("snapshot run",
			"targets", len(targets),
			"ok", len(docs),
			"failed", len(failures),
			"duration", time.Since(start),
			"err", err,
		)
	}()

	results := make([]*tabmark.RawDocument, len(targets))
	errs := make([]error, len(targets))

	var (
		mu        sync.Mutex
		completed int
	)
	report := func(target string, err error) {
		if r.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		completed++
		r.Progress(tabmark.Progress{URL: target, Completed: completed, Total: len(targets), Error: err})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, target := range targets {
		g.Go(func() error {
			doc, err := r.snapshot(gctx, target, logger, delays)
			report(target, err)
			if err != nil {
				logger.Warn("snapshot failed", "url", target, "err", err)
				errs[i] = err
				if policy == tabmark.PolicyAllOrNothing || ctx.Err() != nil {
					return err
				}
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
			continue
		}
		failures = append(failures, tabmark.Failure{URL: targets[i], Err: errs[i]})
	}
	if len(targets) > 0 && len(docs) == 0 {
		return nil, failures, fmt.Errorf("all %d targets failed: %w", len(targets), errors.Join(errs...))
	}
	return docs, failures, nil
}

func (r *Runner) snapshot(ctx context.Context, target string, logger *slog.Logger, delays []time.Duration) (*tabmark.RawDocument, error) {
	fn := func(ctx context.Context, target string) (*tabmark.RawDocument, error) {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx, Domain(target)); err != nil {
				return nil, err
			}
		}
		return r.Source.Snapshot(ctx, target)
	}
	return SnapshotWithRetry(ctx, target, fn, logger, delays)
}
