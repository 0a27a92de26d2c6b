package tabmark

import "context"

// Source acquires a snapshot of a page.
// Implementations may fetch over HTTP, render in a browser, or read files.
type Source interface {
	// Snapshot returns the title, final URL and serialized markup of target.
	// The context controls timeout and cancellation.
	Snapshot(ctx context.Context, target string) (*RawDocument, error)
}

// TabSet is one pass over the open http(s) tabs of a browser.
type TabSet struct {
	// Tabs holds the tabs that could be read, in browser order.
	Tabs []RawDocument

	// Active is the index of the active tab in Tabs, or -1 when none of
	// the readable tabs is focused or visible.
	Active int

	// Failures holds the tabs that could not be read, in browser order.
	Failures []Failure
}

// TabLister reads pages that are already open in a browser.
type TabLister interface {
	// Tabs reads every open http(s) tab once. A tab that cannot be read is
	// reported in Failures; the caller decides whether that fails the run.
	// Returns a *NoActiveTargetError if no http(s) tab is open.
	Tabs(ctx context.Context) (*TabSet, error)

	// ActiveTab returns a snapshot of the focused http(s) tab.
	// Returns a *NoActiveTargetError if there is none.
	ActiveTab(ctx context.Context) (*RawDocument, error)
}

// Policy controls how a batch reacts to a failing document.
type Policy int

const (
	// PolicyAllOrNothing aborts the batch on the first failure.
	PolicyAllOrNothing Policy = iota

	// PolicyPartial keeps successful documents and reports failures per URL.
	PolicyPartial
)

// Failure records a document that could not be acquired or converted.
type Failure struct {
	URL string
	Err error
}

// BatchResult holds the successes and failures of a batch, in input order.
type BatchResult struct {
	Results  []ConversionResult
	Failures []Failure
}

// Progress reports progress during a batch.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// ProgressFunc is called as documents are processed.
type ProgressFunc func(Progress)

// MarkdownWriter persists converted Markdown.
type MarkdownWriter interface {
	// WriteMarkdown stores content under name and returns where it was written.
	WriteMarkdown(ctx context.Context, name, content string) (path string, err error)
}

// DomainLimiter paces requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, domain string) error
}
