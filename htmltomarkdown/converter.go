package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure Converter implements tabmark.Renderer at compile time.
var _ tabmark.Renderer = (*Converter)(nil)

// Converter renders node trees with html-to-markdown, configured for the
// same dialect as the native engine: ATX headings, `_` emphasis, fenced
// code, `---` rules, GFM tables and strikethrough.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. Elements named in strip render as
// nothing in addition to script and style.
func NewConverter(strip ...string) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithEmDelimiter("_"),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithHorizontalRule("---"),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)

	for _, tag := range append([]string{"script", "style"}, strip...) {
		conv.Register.RendererFor(tag, converter.TagTypeBlock, renderNothing, converter.PriorityEarly)
	}
	return &Converter{conv: conv}
}

func renderNothing(converter.Context, converter.Writer, *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

// Render converts n into Markdown. The library rewrites the tree while
// converting, so it works on a copy and n is left untouched.
func (c *Converter) Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}

	clone := goquery.NewDocumentFromNode(n).Clone().Get(0)
	out, err := c.conv.ConvertNode(clone)
	if err != nil {
		return "", tabmark.Errorf(tabmark.EINTERNAL, "html-to-markdown: %v", err)
	}
	return strings.TrimSpace(string(out)), nil
}
