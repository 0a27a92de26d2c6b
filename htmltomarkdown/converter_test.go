package htmltomarkdown_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/tabmark/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestConverter_Render(t *testing.T) {
	t.Parallel()

	render := func(t *testing.T, markup string) string {
		t.Helper()
		md, err := htmltomarkdown.NewConverter().Render(parse(t, markup))
		require.NoError(t, err)
		return md
	}

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, render(t, `<p>Hello, world!</p>`), "Hello, world!")
	})

	t.Run("converts headings with ATX style", func(t *testing.T) {
		t.Parallel()
		md := render(t, `<h1>Title</h1><h2>Subtitle</h2><h3>Section</h3>`)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "### Section")
	})

	t.Run("uses underscore emphasis", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, render(t, `<p>an <em>important</em> word</p>`), "_important_")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()
		md := render(t, `<p>Visit <a href="https://example.com">Example</a> for more info.</p>`)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts fenced code blocks", func(t *testing.T) {
		t.Parallel()
		md := render(t, `<pre><code class="language-go">func main() {}</code></pre>`)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, "func main() {}")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()
		md := render(t, `<table><thead><tr><th>Name</th><th>Age</th></tr></thead><tbody><tr><td>Ann</td><td>31</td></tr></tbody></table>`)
		assert.Contains(t, md, "Name")
		assert.Contains(t, md, "Ann")
		assert.Contains(t, md, "|")
	})

	t.Run("converts strikethrough", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, render(t, `<p><del>gone</del></p>`), "~~gone~~")
	})

	t.Run("drops script and style", func(t *testing.T) {
		t.Parallel()
		md := render(t, `<main><h1>Hi</h1><script>evil()</script><style>p{color:red}</style></main>`)
		assert.Contains(t, md, "# Hi")
		assert.NotContains(t, md, "evil()")
		assert.NotContains(t, md, "color:red")
	})

	t.Run("drops extra tags", func(t *testing.T) {
		t.Parallel()
		md, err := htmltomarkdown.NewConverter("aside").Render(parse(t, `<p>keep</p><aside>ad</aside>`))
		require.NoError(t, err)
		assert.Contains(t, md, "keep")
		assert.NotContains(t, md, "ad")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, render(t, ""))
	})
}

func TestConverter_LeavesInputUntouched(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<main><h1>Hi</h1><script>evil()</script></main>`)
	var before bytes.Buffer
	require.NoError(t, html.Render(&before, doc))

	_, err := htmltomarkdown.NewConverter().Render(doc)
	require.NoError(t, err)

	var after bytes.Buffer
	require.NoError(t, html.Render(&after, doc))
	assert.Equal(t, before.String(), after.String())
}

func TestConverter_Nil(t *testing.T) {
	t.Parallel()

	md, err := htmltomarkdown.NewConverter().Render(nil)
	require.NoError(t, err)
	assert.Empty(t, md)
}
