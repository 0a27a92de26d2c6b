package markdown

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BaseRules returns the CommonMark rules: ATX headings, paragraphs, `_`
// emphasis, `**` strong, links, images, lists, blockquotes, code spans,
// fenced code blocks, line breaks and thematic breaks.
func BaseRules() []Rule {
	return []Rule{
		{Name: "text", Match: Is(KindText), Priority: PriorityBase, Render: renderText},
		{Name: "ignored", Match: Is(KindIgnored), Priority: PriorityBase, Render: renderNothing},
		{Name: "block", Match: isGenericBlock, Priority: PriorityBase, Render: renderBlock},
		{Name: "heading", Match: Is(KindHeading), Priority: PriorityBase, Render: renderHeading},
		{Name: "paragraph", Match: Is(KindParagraph), Priority: PriorityBase, Render: renderBlock},
		{Name: "emphasis", Match: Is(KindEmphasis), Priority: PriorityBase, Render: delimited("_")},
		{Name: "strong", Match: Is(KindStrong), Priority: PriorityBase, Render: delimited("**")},
		{Name: "code", Match: Is(KindCode), Priority: PriorityBase, Render: renderCode},
		{Name: "preformatted", Match: Is(KindPreformatted), Priority: PriorityBase, Render: renderPre},
		{Name: "link", Match: Is(KindLink), Priority: PriorityBase, Render: renderLink},
		{Name: "image", Match: Is(KindImage), Priority: PriorityBase, Render: renderImage},
		{Name: "list", Match: Is(KindList), Priority: PriorityBase, Render: renderList},
		{Name: "list item", Match: Is(KindListItem), Priority: PriorityBase, Render: renderListItem},
		{Name: "blockquote", Match: Is(KindBlockquote), Priority: PriorityBase, Render: renderBlockquote},
		{Name: "line break", Match: Is(KindLineBreak), Priority: PriorityBase, Render: renderLineBreak},
		{Name: "thematic break", Match: Is(KindThematicBreak), Priority: PriorityBase, Render: renderThematicBreak},
	}
}

func renderNothing(*html.Node, string, Context) string { return "" }

func isGenericBlock(n *html.Node) bool {
	return Classify(n) == KindGeneric && n.Type == html.ElementNode && IsBlock(n)
}

func renderBlock(_ *html.Node, content string, c Context) string {
	if c.Pre {
		return content
	}
	return "\n\n" + strings.Trim(content, "\n") + "\n\n"
}

func renderText(n *html.Node, _ string, c Context) string {
	if c.Pre {
		return n.Data
	}
	s := collapseSpace(n.Data)
	if strings.HasPrefix(s, " ") && trimsLeft(n) {
		s = s[1:]
	}
	if strings.HasSuffix(s, " ") && trimsRight(n) {
		s = s[:len(s)-1]
	}
	if c.Code {
		return s
	}
	return Escape(s)
}

// trimsLeft reports whether leading whitespace of text node n is
// insignificant: n starts a block, or the inline text before it already
// ends with whitespace.
func trimsLeft(n *html.Node) bool {
	cur := n
	for {
		for cur.PrevSibling == nil {
			cur = cur.Parent
			if cur == nil || IsBlock(cur) {
				return true
			}
		}
		cur = cur.PrevSibling
		for {
			if IsBlock(cur) || Classify(cur) == KindCheckbox {
				return true
			}
			if cur.Type == html.TextNode && cur.Data != "" {
				r, _ := utf8.DecodeLastRuneInString(cur.Data)
				return unicode.IsSpace(r)
			}
			if Classify(cur) == KindImage {
				return false
			}
			if cur.LastChild == nil {
				break
			}
			cur = cur.LastChild
		}
	}
}

// trimsRight reports whether trailing whitespace of text node n is
// insignificant: n ends a block, or a block follows it.
func trimsRight(n *html.Node) bool {
	cur := n
	for {
		for cur.NextSibling == nil {
			cur = cur.Parent
			if cur == nil || IsBlock(cur) {
				return true
			}
		}
		cur = cur.NextSibling
		for {
			if IsBlock(cur) {
				return true
			}
			if cur.Type == html.TextNode && cur.Data != "" {
				return false
			}
			if k := Classify(cur); k == KindImage || k == KindCheckbox {
				return false
			}
			if cur.FirstChild == nil {
				break
			}
			cur = cur.FirstChild
		}
	}
}

func renderHeading(n *html.Node, content string, _ Context) string {
	text := strings.TrimSpace(collapseSpace(content))
	if text == "" {
		return ""
	}
	return "\n\n" + strings.Repeat("#", headingLevel(n)) + " " + text + "\n\n"
}

// delimited wraps content in delim, keeping surrounding whitespace outside
// the delimiters.
func delimited(delim string) func(*html.Node, string, Context) string {
	return func(_ *html.Node, content string, c Context) string {
		if c.Pre || c.Code {
			return content
		}
		lead, core, trail := splitSpace(content)
		if core == "" {
			return collapseSpace(lead)
		}
		return collapseSpace(lead) + delim + core + delim + collapseSpace(trail)
	}
}

func renderCode(_ *html.Node, content string, c Context) string {
	if c.Pre || c.Code || content == "" {
		return content
	}
	fence := strings.Repeat("`", longestRun(content, '`')+1)
	pad := ""
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		pad = " "
	}
	return fence + pad + content + pad + fence
}

// renderPre fences the rendered children of n. Inside <pre> children are
// rendered verbatim, so strip rules and line breaks still apply.
func renderPre(n *html.Node, content string, c Context) string {
	if c.Pre {
		return content
	}
	code := strings.TrimSuffix(content, "\n")
	fence := "```"
	if run := longestRun(code, '`'); run >= 3 {
		fence = strings.Repeat("`", run+1)
	}
	return "\n\n" + fence + language(n) + "\n" + code + "\n" + fence + "\n\n"
}

// language returns the info string from a language-* or lang-* class on
// the <pre> element or its first <code> child.
func language(n *html.Node) string {
	candidates := []*html.Node{n}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if c.DataAtom == atom.Code {
				candidates = append(candidates, c)
			}
			break
		}
	}
	for _, el := range candidates {
		for _, class := range strings.Fields(attr(el, "class")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return ""
}

var destinationEscaper = strings.NewReplacer(" ", "%20", "(", `\(`, ")", `\)`)

func titlePart(n *html.Node) string {
	title := attr(n, "title")
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(collapseSpace(title), `"`, `\"`) + `"`
}

func renderLink(n *html.Node, content string, c Context) string {
	href := attr(n, "href")
	if href == "" || c.Pre {
		return content
	}
	lead, core, trail := splitSpace(content)
	if strings.Contains(core, "\n") {
		core = strings.Join(strings.Fields(core), " ")
	}
	return collapseSpace(lead) + "[" + core + "](" + destinationEscaper.Replace(href) + titlePart(n) + ")" + collapseSpace(trail)
}

func renderImage(n *html.Node, _ string, _ Context) string {
	src := attr(n, "src")
	if src == "" {
		return ""
	}
	alt := Escape(strings.TrimSpace(collapseSpace(attr(n, "alt"))))
	return "![" + alt + "](" + destinationEscaper.Replace(src) + titlePart(n) + ")"
}

func renderList(n *html.Node, content string, _ Context) string {
	if p := n.Parent; p != nil && Classify(p) == KindListItem {
		return "\n" + strings.Trim(content, "\n") + "\n"
	}
	return "\n\n" + strings.Trim(content, "\n") + "\n\n"
}

func renderListItem(n *html.Node, content string, _ Context) string {
	prefix := "- "
	if p := n.Parent; p != nil && p.Type == html.ElementNode && p.DataAtom == atom.Ol {
		start := 1
		if v, err := strconv.Atoi(strings.TrimSpace(attr(p, "start"))); err == nil {
			start = v
		}
		prefix = strconv.Itoa(start+itemIndex(n)) + ". "
	}

	lines := strings.Split(strings.TrimSpace(content), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "    " + lines[i]
		}
	}
	return prefix + strings.Join(lines, "\n") + "\n"
}

// itemIndex returns the position of li among its <li> siblings.
func itemIndex(li *html.Node) int {
	i := 0
	for s := li.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Li {
			i++
		}
	}
	return i
}

func renderBlockquote(_ *html.Node, content string, _ Context) string {
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return ""
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + l
	}
	return "\n\n" + strings.Join(lines, "\n") + "\n\n"
}

func renderLineBreak(_ *html.Node, _ string, c Context) string {
	if c.Pre {
		return "\n"
	}
	return "  \n"
}

func renderThematicBreak(*html.Node, string, Context) string {
	return "\n\n---\n\n"
}
