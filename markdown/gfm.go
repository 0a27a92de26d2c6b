package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// GFMRules returns the GitHub Flavored Markdown extensions: pipe tables,
// strikethrough and task-list checkboxes.
//
// The first row of every table is rendered as its header row, so a table
// with N rows yields N+1 lines including the separator. Rows shorter than
// the widest row are padded with empty cells. A caption becomes a paragraph
// before the table.
func GFMRules() []Rule {
	return []Rule{
		{Name: "table", Match: Is(KindTable), Priority: PriorityGFM, Render: renderTable},
		{Name: "table caption", Match: Tag("caption"), Priority: PriorityGFM, Render: renderNothing},
		{Name: "table section", Match: Is(KindTableSection), Priority: PriorityGFM, Render: passThrough},
		{Name: "table row", Match: Is(KindTableRow), Priority: PriorityGFM, Render: renderRow},
		{Name: "table cell", Match: Is(KindTableCell), Priority: PriorityGFM, Render: renderCell},
		{Name: "strikethrough", Match: Is(KindStrikethrough), Priority: PriorityGFM, Render: delimited("~~")},
		{Name: "checkbox", Match: Is(KindCheckbox), Priority: PriorityGFM, Render: renderCheckbox},
	}
}

func passThrough(_ *html.Node, content string, _ Context) string {
	return content
}

func renderTable(n *html.Node, content string, _ Context) string {
	content = strings.Trim(content, "\n")
	caption := captionText(n)
	switch {
	case content == "" && caption == "":
		return ""
	case caption == "":
		return "\n\n" + content + "\n\n"
	case content == "":
		return "\n\n" + caption + "\n\n"
	}
	return "\n\n" + caption + "\n\n" + content + "\n\n"
}

// captionText returns the escaped text of the table's <caption>.
func captionText(table *html.Node) string {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Caption {
			return Escape(strings.TrimSpace(collapseSpace(textContent(c))))
		}
	}
	return ""
}

func renderCell(_ *html.Node, content string, _ Context) string {
	text := strings.Join(strings.Fields(content), " ")
	return "| " + strings.ReplaceAll(text, "|", `\|`) + " "
}

func renderRow(n *html.Node, content string, c Context) string {
	cells := cellCount(n)
	cols, header := cells, false
	if c.table != nil {
		cols, header = c.table.cols, c.table.first == n
	}
	if cols == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Trim(content, "\n"))
	for i := cells; i < cols; i++ {
		b.WriteString("|  ")
	}
	b.WriteString("|\n")
	if header {
		b.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	}
	return b.String()
}

// tableInfo is the layout of one table, computed once when the renderer
// enters it.
type tableInfo struct {
	cols  int
	first *html.Node
}

func newTableInfo(table *html.Node) *tableInfo {
	info := &tableInfo{}
	for i, r := range rows(table) {
		if i == 0 {
			info.first = r
		}
		info.cols = max(info.cols, cellCount(r))
	}
	return info
}

// rows returns the rows belonging to table, excluding rows of nested tables.
func rows(table *html.Node) []*html.Node {
	var out []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch Classify(c) {
		case KindTableRow:
			out = append(out, c)
		case KindTableSection:
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if Classify(r) == KindTableRow {
					out = append(out, r)
				}
			}
		}
	}
	return out
}

func cellCount(row *html.Node) int {
	n := 0
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if Classify(c) == KindTableCell {
			n++
		}
	}
	return n
}

func renderCheckbox(n *html.Node, _ string, _ Context) string {
	if closest(n, atom.Li) == nil {
		return ""
	}
	if hasAttr(n, "checked") {
		return "[x] "
	}
	return "[ ] "
}

// StripRules returns override rules that render script and style elements,
// plus any extra tags, as nothing. The sanitizer removes these upstream;
// the rules keep them out of the output when a tree is rendered directly.
func StripRules(extra ...string) []Rule {
	tags := append([]string{"script", "style"}, extra...)
	return []Rule{
		{Name: "strip", Match: Tag(tags...), Priority: PriorityOverride, Render: renderNothing},
	}
}
