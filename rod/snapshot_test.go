package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/mock"
	"github.com/fwojciec/tabmark/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/docs", true},
		{"http://localhost:8080/", true},
		{"chrome://newtab/", false},
		{"about:blank", false},
		{"file:///tmp/page.html", false},
		{"chrome-extension://abc/popup.html", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rod.Eligible(tt.url), tt.url)
	}
}

func TestSelectActive(t *testing.T) {
	t.Parallel()

	tab := func(url string, visible, focused bool) rod.TabState {
		return rod.TabState{Doc: tabmark.RawDocument{URL: url}, Visible: visible, Focused: focused}
	}

	t.Run("prefers the focused tab", func(t *testing.T) {
		t.Parallel()
		doc, err := rod.SelectActive([]rod.TabState{
			tab("https://a.example", true, false),
			tab("https://b.example", true, true),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://b.example", doc.URL)
	})

	t.Run("falls back to the first visible tab", func(t *testing.T) {
		t.Parallel()
		doc, err := rod.SelectActive([]rod.TabState{
			tab("https://a.example", false, false),
			tab("https://b.example", true, false),
			tab("https://c.example", true, false),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://b.example", doc.URL)
	})

	t.Run("no tabs is no active target", func(t *testing.T) {
		t.Parallel()
		_, err := rod.SelectActive(nil)
		var target *tabmark.NoActiveTargetError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, tabmark.ENOTARGET, tabmark.ErrorCode(err))
	})

	t.Run("only hidden tabs is no active target", func(t *testing.T) {
		t.Parallel()
		_, err := rod.SelectActive([]rod.TabState{tab("https://a.example", false, false)})
		assert.Equal(t, tabmark.ENOTARGET, tabmark.ErrorCode(err))
	})
}

func TestActiveIndex(t *testing.T) {
	t.Parallel()

	tab := func(visible, focused bool) rod.TabState {
		return rod.TabState{Visible: visible, Focused: focused}
	}

	tests := []struct {
		name string
		tabs []rod.TabState
		want int
	}{
		{"none", nil, -1},
		{"hidden only", []rod.TabState{tab(false, false)}, -1},
		{"focused wins over earlier visible", []rod.TabState{tab(true, false), tab(true, true)}, 1},
		{"first visible", []rod.TabState{tab(false, false), tab(true, false), tab(true, false)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rod.ActiveIndex(tt.tabs))
		})
	}
}

func TestLoggingTabLister(t *testing.T) {
	t.Parallel()

	t.Run("logs active tab URL and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TabLister{
			ActiveTabFn: func(context.Context) (*tabmark.RawDocument, error) {
				return &tabmark.RawDocument{URL: "https://example.com/docs", Markup: "<p>hi</p>"}, nil
			},
		}

		doc, err := rod.NewLoggingTabLister(inner, logger).ActiveTab(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/docs", doc.URL)
		output := buf.String()
		assert.Contains(t, output, "active tab")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=9")
	})

	t.Run("logs tab count and errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TabLister{
			TabsFn: func(context.Context) (*tabmark.TabSet, error) {
				return nil, errors.New("connection refused")
			},
		}

		_, err := rod.NewLoggingTabLister(inner, logger).Tabs(context.Background())

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "count=0")
		assert.Contains(t, output, `err="connection refused"`)
	})

	t.Run("logs unreadable tabs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TabLister{
			TabsFn: func(context.Context) (*tabmark.TabSet, error) {
				return &tabmark.TabSet{
					Tabs:     []tabmark.RawDocument{{URL: "https://a.example"}},
					Active:   0,
					Failures: []tabmark.Failure{{URL: "https://b.example", Err: errors.New("target crashed")}},
				}, nil
			},
		}

		set, err := rod.NewLoggingTabLister(inner, logger).Tabs(context.Background())

		require.NoError(t, err)
		assert.Len(t, set.Failures, 1)
		output := buf.String()
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "failed=1")
		assert.Contains(t, output, "active=0")
	})
}
