package tabmark_test

import (
	"testing"

	"github.com/fwojciec/tabmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectionMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want tabmark.SelectionMode
	}{
		{"main", tabmark.SelectMain},
		{"Body", tabmark.SelectBody},
		{" article ", tabmark.SelectArticle},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := tabmark.ParseSelectionMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}

	t.Run("unknown mode is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := tabmark.ParseSelectionMode("sidebar")
		assert.Equal(t, tabmark.EINVALID, tabmark.ErrorCode(err))
	})
}

func mustParse(t *testing.T, s string) tabmark.SelectionMode {
	t.Helper()
	m, err := tabmark.ParseSelectionMode(s)
	require.NoError(t, err)
	return m
}

func TestSelectionMode_ZeroValueIsMain(t *testing.T) {
	t.Parallel()

	var m tabmark.SelectionMode
	assert.Equal(t, tabmark.SelectMain, m)
}

func TestConversionResult_Document(t *testing.T) {
	t.Parallel()

	t.Run("title line precedes body", func(t *testing.T) {
		t.Parallel()
		r := tabmark.ConversionResult{Title: "Example", URL: "https://e.com", Markdown: "# Hi"}
		assert.Equal(t, "# Example (https://e.com)\n\n# Hi", r.Document())
	})

	t.Run("empty body keeps the blank line", func(t *testing.T) {
		t.Parallel()
		r := tabmark.ConversionResult{Title: "T", URL: "u"}
		assert.Equal(t, "# T (u)\n\n", r.Document())
	})
}

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Example Domain", "Example Domain.md"},
		{"a/b\\c", "a-b-c.md"},
		{"  spaced  ", "spaced.md"},
		{"tab\there", "tabhere.md"},
		{"", "untitled.md"},
		{"..", "untitled.md"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tabmark.Filename(tt.title))
		})
	}
}
