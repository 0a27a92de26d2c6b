package acquire_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/acquire"
	"github.com/fwojciec/tabmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// source returns a document for every target except those in fail.
func source(fail ...string) *mock.Source {
	return &mock.Source{
		SnapshotFn: func(_ context.Context, target string) (*tabmark.RawDocument, error) {
			for _, f := range fail {
				if f == target {
					return nil, tabmark.Errorf(tabmark.ENOTFOUND, "HTTP 404 for %s", target)
				}
			}
			return &tabmark.RawDocument{Title: "T", URL: target, Markup: "<p>" + target + "</p>"}, nil
		},
	}
}

func TestRunner_SnapshotAll(t *testing.T) {
	t.Parallel()

	t.Run("documents keep target order", func(t *testing.T) {
		t.Parallel()
		r := &acquire.Runner{Source: source(), Concurrency: 3, RetryDelays: []time.Duration{}}
		targets := []string{"https://a.example", "https://b.example", "https://c.example", "https://d.example"}

		docs, failures, err := r.SnapshotAll(context.Background(), targets, tabmark.PolicyAllOrNothing)

		require.NoError(t, err)
		assert.Empty(t, failures)
		require.Len(t, docs, len(targets))
		for i, d := range docs {
			assert.Equal(t, targets[i], d.URL)
		}
	})

	t.Run("all or nothing aborts on the first failure", func(t *testing.T) {
		t.Parallel()
		r := &acquire.Runner{Source: source("https://b.example"), Concurrency: 1, RetryDelays: []time.Duration{}}

		docs, _, err := r.SnapshotAll(context.Background(), []string{"https://a.example", "https://b.example"}, tabmark.PolicyAllOrNothing)

		assert.Nil(t, docs)
		assert.Equal(t, tabmark.ENOTFOUND, tabmark.ErrorCode(err))
	})

	t.Run("partial reports failures per URL", func(t *testing.T) {
		t.Parallel()
		r := &acquire.Runner{Source: source("https://b.example"), RetryDelays: []time.Duration{}}

		docs, failures, err := r.SnapshotAll(context.Background(), []string{"https://a.example", "https://b.example", "https://c.example"}, tabmark.PolicyPartial)

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "https://a.example", docs[0].URL)
		assert.Equal(t, "https://c.example", docs[1].URL)
		require.Len(t, failures, 1)
		assert.Equal(t, "https://b.example", failures[0].URL)
	})

	t.Run("partial errors when every target failed", func(t *testing.T) {
		t.Parallel()
		r := &acquire.Runner{Source: source("x", "y"), RetryDelays: []time.Duration{}}

		_, failures, err := r.SnapshotAll(context.Background(), []string{"x", "y"}, tabmark.PolicyPartial)

		require.Error(t, err)
		assert.Len(t, failures, 2)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		src := &mock.Source{SnapshotFn: func(_ context.Context, target string) (*tabmark.RawDocument, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("timeout")
			}
			return &tabmark.RawDocument{URL: target}, nil
		}}
		r := &acquire.Runner{Source: src, RetryDelays: []time.Duration{time.Millisecond}}

		docs, _, err := r.SnapshotAll(context.Background(), []string{"https://a.example"}, tabmark.PolicyAllOrNothing)

		require.NoError(t, err)
		assert.Len(t, docs, 1)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("waits on the limiter per domain", func(t *testing.T) {
		t.Parallel()
		var domains []string
		limiter := &recordingLimiter{record: func(d string) { domains = append(domains, d) }}
		r := &acquire.Runner{Source: source(), Limiter: limiter, Concurrency: 1, RetryDelays: []time.Duration{}}

		_, _, err := r.SnapshotAll(context.Background(), []string{"https://a.example/x", "https://b.example/y"}, tabmark.PolicyPartial)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.example", "b.example"}, domains)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()
		var events []tabmark.Progress
		r := &acquire.Runner{
			Source:      source(),
			RetryDelays: []time.Duration{},
			Progress:    func(p tabmark.Progress) { events = append(events, p) },
		}

		_, _, err := r.SnapshotAll(context.Background(), []string{"a", "b"}, tabmark.PolicyPartial)

		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, 2, events[1].Completed)
		assert.Equal(t, 2, events[1].Total)
	})
}

type recordingLimiter struct {
	record func(domain string)
}

func (l *recordingLimiter) Wait(_ context.Context, domain string) error {
	l.record(domain)
	return nil
}
