package tabmark

import (
	"strings"
	"unicode"
)

// RawDocument is a snapshot of a rendered page as supplied by a Source.
type RawDocument struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Markup string `json:"markup"`
}

// SelectionMode determines which part of a document is converted.
type SelectionMode int

// SelectionMode values. The zero value is SelectMain.
const (
	// SelectMain converts the designated main region, falling back to the body.
	SelectMain SelectionMode = iota

	// SelectBody converts the whole body.
	SelectBody

	// SelectArticle converts the region found by a content Extractor,
	// falling back to the body.
	SelectArticle
)

// String returns the flag/config spelling of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectMain:
		return "main"
	case SelectBody:
		return "body"
	case SelectArticle:
		return "article"
	}
	return "unknown"
}

// ParseSelectionMode parses "main", "body" or "article" (case-insensitive).
// Returns EINVALID for anything else.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main":
		return SelectMain, nil
	case "body":
		return SelectBody, nil
	case "article":
		return SelectArticle, nil
	}
	return 0, Errorf(EINVALID, "unknown selection mode %q", s)
}

// ConversionResult is the outcome of converting one RawDocument.
// Markdown holds the rendered body without a title line.
type ConversionResult struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// Document returns the single-document output: a level-one title line
// naming the page and its URL, a blank line, then the Markdown body.
func (r *ConversionResult) Document() string {
	return "# " + r.Title + " (" + r.URL + ")\n\n" + r.Markdown
}

// Filename returns the suggested download name for the result.
func (r *ConversionResult) Filename() string {
	return Filename(r.Title)
}

// Filename returns "{title}.md" with path separators and control characters
// replaced so the name stays within its directory. An empty title becomes
// "untitled.md".
func Filename(title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '-'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, title)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		name = "untitled"
	}
	return name + ".md"
}
