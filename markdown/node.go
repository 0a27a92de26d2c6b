package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Kind is the closed set of node shapes the rule engine distinguishes.
// Anything the engine has no dedicated rendering for is KindGeneric.
type Kind int

// Node kinds.
const (
	KindGeneric Kind = iota
	KindText
	KindIgnored
	KindHeading
	KindParagraph
	KindEmphasis
	KindStrong
	KindCode
	KindPreformatted
	KindLink
	KindImage
	KindList
	KindListItem
	KindBlockquote
	KindLineBreak
	KindThematicBreak
	KindTable
	KindTableSection
	KindTableRow
	KindTableCell
	KindStrikethrough
	KindCheckbox
)

var kindNames = [...]string{
	KindGeneric:       "generic",
	KindText:          "text",
	KindIgnored:       "ignored",
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindCode:          "code",
	KindPreformatted:  "preformatted",
	KindLink:          "link",
	KindImage:         "image",
	KindList:          "list",
	KindListItem:      "list item",
	KindBlockquote:    "blockquote",
	KindLineBreak:     "line break",
	KindThematicBreak: "thematic break",
	KindTable:         "table",
	KindTableSection:  "table section",
	KindTableRow:      "table row",
	KindTableCell:     "table cell",
	KindStrikethrough: "strikethrough",
	KindCheckbox:      "checkbox",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

var elementKinds = map[atom.Atom]Kind{
	atom.H1:         KindHeading,
	atom.H2:         KindHeading,
	atom.H3:         KindHeading,
	atom.H4:         KindHeading,
	atom.H5:         KindHeading,
	atom.H6:         KindHeading,
	atom.P:          KindParagraph,
	atom.Em:         KindEmphasis,
	atom.I:          KindEmphasis,
	atom.Strong:     KindStrong,
	atom.B:          KindStrong,
	atom.Code:       KindCode,
	atom.Kbd:        KindCode,
	atom.Samp:       KindCode,
	atom.Tt:         KindCode,
	atom.Pre:        KindPreformatted,
	atom.A:          KindLink,
	atom.Img:        KindImage,
	atom.Ul:         KindList,
	atom.Ol:         KindList,
	atom.Li:         KindListItem,
	atom.Blockquote: KindBlockquote,
	atom.Br:         KindLineBreak,
	atom.Hr:         KindThematicBreak,
	atom.Table:      KindTable,
	atom.Thead:      KindTableSection,
	atom.Tbody:      KindTableSection,
	atom.Tfoot:      KindTableSection,
	atom.Tr:         KindTableRow,
	atom.Th:         KindTableCell,
	atom.Td:         KindTableCell,
	atom.Del:        KindStrikethrough,
	atom.S:          KindStrikethrough,
	atom.Strike:     KindStrikethrough,
	atom.Head:       KindIgnored,
	atom.Title:      KindIgnored,
	atom.Meta:       KindIgnored,
	atom.Link:       KindIgnored,
	atom.Template:   KindIgnored,
	atom.Noscript:   KindIgnored,
}

// Classify returns the kind of n.
func Classify(n *html.Node) Kind {
	switch n.Type {
	case html.TextNode:
		return KindText
	case html.CommentNode, html.DoctypeNode:
		return KindIgnored
	case html.ElementNode:
		if n.DataAtom == atom.Input {
			if strings.EqualFold(attr(n, "type"), "checkbox") {
				return KindCheckbox
			}
			return KindIgnored
		}
		if k, ok := elementKinds[n.DataAtom]; ok {
			return k
		}
	}
	return KindGeneric
}

// blockTags are elements rendered on their own lines. Whitespace at their
// edges is insignificant.
var blockTags = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Caption: true, atom.Dd: true, atom.Details: true,
	atom.Dialog: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hgroup: true, atom.Hr: true, atom.Html: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Summary: true, atom.Table: true,
	atom.Tbody: true, atom.Td: true, atom.Tfoot: true, atom.Th: true,
	atom.Thead: true, atom.Tr: true, atom.Ul: true, atom.Br: true,
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Type == html.DocumentNode {
		return true
	}
	return n.Type == html.ElementNode && blockTags[n.DataAtom]
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func headingLevel(n *html.Node) int {
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// textContent concatenates the text of n's descendants in document order.
func textContent(n *html.Node) string {
	var b strings.Builder
	stack := []*html.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			continue
		}
		for c := cur.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return b.String()
}

// closest returns the nearest ancestor of n with the given atom.
func closest(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return p
		}
	}
	return nil
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return n.Data
	case html.TextNode:
		return "#text"
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	}
	return "#node"
}
