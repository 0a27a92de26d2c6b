package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ tabmark.MarkdownWriter = &mock.MarkdownWriter{}
}

func TestMarkdownWriter_WriteMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteMarkdownFn", func(t *testing.T) {
		t.Parallel()

		var gotName, gotContent string
		w := &mock.MarkdownWriter{
			WriteMarkdownFn: func(_ context.Context, name, content string) (string, error) {
				gotName, gotContent = name, content
				return "/out/" + name, nil
			},
		}

		path, err := w.WriteMarkdown(context.Background(), "Example.md", "# Example")

		require.NoError(t, err)
		assert.Equal(t, "/out/Example.md", path)
		assert.Equal(t, "Example.md", gotName)
		assert.Equal(t, "# Example", gotContent)
	})
}
