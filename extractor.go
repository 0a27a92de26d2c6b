package tabmark

// ExtractResult holds the main content found in an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as HTML with navigation,
	// footers, sidebars and ads removed.
	ContentHTML string
}

// Extractor detects the main content of a page heuristically.
// It backs SelectArticle for pages without a <main> element.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
