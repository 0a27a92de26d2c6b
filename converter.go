package tabmark

import "golang.org/x/net/html"

// Selector chooses the subtree of a parsed document to convert.
type Selector interface {
	// Select returns the node to convert for the given mode.
	// It never fails: a missing main region falls back to the body.
	Select(doc *html.Node, mode SelectionMode) *html.Node
}

// Sanitizer removes disallowed subtrees before rendering.
type Sanitizer interface {
	// Sanitize returns a copy of n without disallowed elements.
	// The input tree is left untouched.
	Sanitize(n *html.Node) *html.Node
}

// Renderer renders a node tree as Markdown.
type Renderer interface {
	// Render converts n and its descendants into Markdown.
	// Implementations must be deterministic and safe for concurrent use.
	Render(n *html.Node) (string, error)
}

// DocumentConverter converts a whole RawDocument.
type DocumentConverter interface {
	// ConvertDocument selects, sanitizes and renders raw.
	// Returns a *ParseError if raw.Markup cannot be parsed.
	ConvertDocument(raw RawDocument, mode SelectionMode) (*ConversionResult, error)
}
