package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/mock"
	"github.com/fwojciec/tabmark/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

// failingConverter fails every document whose URL is in fail.
func failingConverter(fail ...string) *mock.DocumentConverter {
	return &mock.DocumentConverter{
		ConvertDocumentFn: func(raw tabmark.RawDocument, _ tabmark.SelectionMode) (*tabmark.ConversionResult, error) {
			for _, u := range fail {
				if raw.URL == u {
					return nil, &tabmark.ParseError{URL: raw.URL, Err: errors.New("bad markup")}
				}
			}
			return &tabmark.ConversionResult{Title: raw.Title, URL: raw.URL, Markdown: raw.Markup}, nil
		},
	}
}

func docs(urls ...string) []tabmark.RawDocument {
	out := make([]tabmark.RawDocument, 0, len(urls))
	for _, u := range urls {
		out = append(out, tabmark.RawDocument{Title: "T " + u, URL: u, Markup: "md " + u})
	}
	return out
}

func TestBatch_ConvertAll(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		t.Parallel()
		b := &pipeline.Batch{Converter: failingConverter(), Concurrency: 4}
		in := docs("a", "b", "c", "d", "e", "f")

		got, err := b.ConvertAll(context.Background(), in, tabmark.SelectMain, tabmark.PolicyAllOrNothing)

		require.NoError(t, err)
		require.Len(t, got.Results, len(in))
		for i, r := range got.Results {
			assert.Equal(t, in[i].URL, r.URL)
		}
		assert.Empty(t, got.Failures)
	})

	t.Run("all or nothing returns the failure", func(t *testing.T) {
		t.Parallel()
		b := &pipeline.Batch{Converter: failingConverter("b"), Concurrency: 1}

		got, err := b.ConvertAll(context.Background(), docs("a", "b", "c"), tabmark.SelectMain, tabmark.PolicyAllOrNothing)

		assert.Nil(t, got)
		var parseErr *tabmark.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "b", parseErr.URL)
	})

	t.Run("partial keeps successes and reports failures per URL", func(t *testing.T) {
		t.Parallel()
		b := &pipeline.Batch{Converter: failingConverter("b", "d"), Concurrency: 2}

		got, err := b.ConvertAll(context.Background(), docs("a", "b", "c", "d"), tabmark.SelectMain, tabmark.PolicyPartial)

		require.NoError(t, err)
		require.Len(t, got.Results, 2)
		assert.Equal(t, "a", got.Results[0].URL)
		assert.Equal(t, "c", got.Results[1].URL)
		require.Len(t, got.Failures, 2)
		assert.Equal(t, "b", got.Failures[0].URL)
		assert.Equal(t, "d", got.Failures[1].URL)
		assert.Equal(t, tabmark.EPARSE, tabmark.ErrorCode(got.Failures[0].Err))
	})

	t.Run("partial errors when every document failed", func(t *testing.T) {
		t.Parallel()
		b := &pipeline.Batch{Converter: failingConverter("a", "b")}

		got, err := b.ConvertAll(context.Background(), docs("a", "b"), tabmark.SelectMain, tabmark.PolicyPartial)

		require.Error(t, err)
		require.NotNil(t, got)
		assert.Len(t, got.Failures, 2)
		assert.Equal(t, tabmark.EPARSE, tabmark.ErrorCode(err))
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		b := &pipeline.Batch{Converter: failingConverter()}

		got, err := b.ConvertAll(context.Background(), nil, tabmark.SelectMain, tabmark.PolicyPartial)

		require.NoError(t, err)
		assert.Empty(t, got.Results)
		assert.Empty(t, got.Failures)
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := &pipeline.Batch{Converter: failingConverter()}

		_, err := b.ConvertAll(ctx, docs("a"), tabmark.SelectMain, tabmark.PolicyPartial)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("progress is reported once per document", func(t *testing.T) {
		t.Parallel()
		var (
			mu     sync.Mutex
			events []tabmark.Progress
		)
		b := &pipeline.Batch{
			Converter:   failingConverter("b"),
			Concurrency: 3,
			Progress: func(p tabmark.Progress) {
				mu.Lock()
				defer mu.Unlock()
				events = append(events, p)
			},
		}

		_, err := b.ConvertAll(context.Background(), docs("a", "b", "c"), tabmark.SelectMain, tabmark.PolicyPartial)

		require.NoError(t, err)
		require.Len(t, events, 3)
		failed := 0
		for i, e := range events {
			assert.Equal(t, i+1, e.Completed)
			assert.Equal(t, 3, e.Total)
			if e.Error != nil {
				failed++
				assert.Equal(t, "b", e.URL)
			}
		}
		assert.Equal(t, 1, failed)
	})
	t.Run("concurrency defaults to four", func(t *testing.T) {
		t.Parallel()
		var inFlight, peak atomic.Int32
		entered := make(chan struct{}, 16)
		release := make(chan struct{})
		b := &pipeline.Batch{Converter: &mock.DocumentConverter{
			ConvertDocumentFn: func(raw tabmark.RawDocument, _ tabmark.SelectionMode) (*tabmark.ConversionResult, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				entered <- struct{}{}
				<-release
				inFlight.Add(-1)
				return &tabmark.ConversionResult{URL: raw.URL}, nil
			},
		}}

		done := make(chan error, 1)
		go func() {
			_, err := b.ConvertAll(context.Background(), docs("a", "b", "c", "d", "e", "f", "g", "h"), tabmark.SelectMain, tabmark.PolicyAllOrNothing)
			done <- err
		}()

		for range pipeline.DefaultConcurrency {
			select {
			case <-entered:
			case <-time.After(5 * time.Second):
				close(release)
				t.Fatal("fewer conversions ran in parallel than the default allows")
			}
		}
		time.Sleep(50 * time.Millisecond)
		close(release)

		require.NoError(t, <-done)
		assert.Equal(t, int32(pipeline.DefaultConcurrency), peak.Load())
	})
}
