package readability_test

import (
	"testing"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	page := func(body string) string {
		return "<!DOCTYPE html><html><head><title>Release notes</title></head><body>" + body + "</body></html>"
	}

	t.Run("blank input is invalid", func(t *testing.T) {
		t.Parallel()
		for _, in := range []string{"", "  \n\t"} {
			_, err := readability.NewExtractor().Extract(in)
			assert.Equal(t, tabmark.EINVALID, tabmark.ErrorCode(err))
		}
	})

	t.Run("title", func(t *testing.T) {
		t.Parallel()

		res, err := readability.NewExtractor().Extract(page("<article><p>Version 2 ships today.</p></article>"))

		require.NoError(t, err)
		assert.Equal(t, "Release notes", res.Title)
	})

	t.Run("drops navigation and footer", func(t *testing.T) {
		t.Parallel()

		res, err := readability.NewExtractor().Extract(page(`
<nav><a href="/">Home</a> <a href="/pricing">Pricing</a> <a href="/blog">Blog</a></nav>
<article><p>Version 2 ships today with a rewritten scheduler, faster cold starts and a smaller binary.</p></article>
<footer><p>Copyright Example Corp</p></footer>`))

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "rewritten scheduler")
		assert.NotContains(t, res.ContentHTML, "Pricing")
		assert.NotContains(t, res.ContentHTML, "Copyright Example Corp")
	})

	t.Run("keeps markup the renderer needs", func(t *testing.T) {
		t.Parallel()

		res, err := readability.NewExtractor().Extract(page(`<article>
<h1>Upgrading</h1>
<p>Read the <a href="https://e.com/guide">migration guide</a> before upgrading.</p>
<h2>Breaking changes</h2>
<ul><li>Config keys are snake_case</li><li>Go 1.25 is required</li></ul>
<pre><code>go install example.com/tool@v2</code></pre>
</article>`))

		require.NoError(t, err)
		for _, tag := range []string{"<h2", "<li", "<a", "<pre"} {
			assert.Contains(t, res.ContentHTML, tag)
		}
		assert.Contains(t, res.ContentHTML, "go install example.com/tool@v2")
	})
}
