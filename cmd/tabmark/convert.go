package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/fs"
	"github.com/fwojciec/tabmark/goquery"
	"github.com/fwojciec/tabmark/htmltomarkdown"
	"github.com/fwojciec/tabmark/markdown"
	"github.com/fwojciec/tabmark/pipeline"
	"github.com/fwojciec/tabmark/readability"
	tabslog "github.com/fwojciec/tabmark/slog"
	"github.com/fwojciec/tabmark/trafilatura"
)

// policy returns the batch policy selected by --partial.
func (f *ConvertFlags) policy() tabmark.Policy {
	if f.Partial {
		return tabmark.PolicyPartial
	}
	return tabmark.PolicyAllOrNothing
}

// converter builds the document converter selected by the flags.
func (f *ConvertFlags) converter(deps *Dependencies) (tabmark.DocumentConverter, error) {
	opts := []goquery.SelectorOption{goquery.WithDesignation(f.MainSelector)}
	if f.DetectFramework {
		opts = append(opts, goquery.WithFrameworkDetection(goquery.NewDetector()))
	}
	selector, err := goquery.NewSelector(opts...)
	if err != nil {
		return nil, err
	}

	strip := make([]string, 0, len(f.StripTags))
	for _, tag := range f.StripTags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			strip = append(strip, tag)
		}
	}

	var renderer tabmark.Renderer
	switch f.Engine {
	case "html-to-markdown":
		renderer = htmltomarkdown.NewConverter(strip...)
	default:
		renderer = markdown.New(markdown.NewRuleSet(markdown.BaseRules(), markdown.GFMRules(), markdown.StripRules(strip...)))
	}

	var extractor tabmark.Extractor
	switch f.Extractor {
	case "readability":
		extractor = readability.NewExtractor()
	default:
		extractor = trafilatura.NewExtractor()
	}

	conv := &pipeline.Converter{
		Selector:  tabslog.NewLoggingSelector(selector, deps.Logger),
		Sanitizer: goquery.NewSanitizer(strip...),
		Renderer:  renderer,
		Extractor: extractor,
	}
	return tabslog.NewLoggingConverter(conv, deps.Logger), nil
}

// convert converts docs and writes the result. primary names the output
// file; it is the index into docs of the document whose title is used.
// Failures are reported on stderr, one line per document.
func (f *ConvertFlags) convert(deps *Dependencies, docs []tabmark.RawDocument, primary int) error {
	mode, err := tabmark.ParseSelectionMode(f.Mode)
	if err != nil {
		return err
	}
	conv, err := f.converter(deps)
	if err != nil {
		return err
	}

	batch := &pipeline.Batch{
		Converter:   conv,
		Concurrency: f.Concurrency,
		Progress: func(p tabmark.Progress) {
			deps.Logger.Debug("converted", "url", p.URL, "completed", p.Completed, "total", p.Total, "err", p.Error)
		},
	}
	res, err := batch.ConvertAll(deps.Ctx, docs, mode, f.policy())
	if res != nil {
		reportFailures(deps, res.Failures)
	}
	if err != nil {
		return err
	}

	if f.Split && f.Out != "" {
		return f.writeEach(deps, res.Results)
	}

	content, err := f.render(deps, res.Results)
	if err != nil {
		return err
	}
	if f.Out == "" {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		_, err := fmt.Fprint(deps.Stdout, content)
		return err
	}

	title := ""
	if primary >= 0 && primary < len(docs) {
		title = titleOf(res.Results, docs[primary])
	}
	path, err := deps.NewWriter(f.Out).WriteMarkdown(deps.Ctx, tabmark.Filename(title), content)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// render combines results into one Markdown text.
func (f *ConvertFlags) render(deps *Dependencies, results []tabmark.ConversionResult) (string, error) {
	if f.Frontmatter && len(results) == 1 {
		return fs.FormatDocument(results[0], deps.Now())
	}
	return tabmark.Combine(results), nil
}

// writeEach writes every result to a file named after its URL path.
func (f *ConvertFlags) writeEach(deps *Dependencies, results []tabmark.ConversionResult) error {
	w := deps.NewWriter(f.Out)
	for _, r := range results {
		name, err := fs.URLToPath(r.URL)
		if err != nil {
			return err
		}
		content := r.Document()
		if f.Frontmatter {
			if content, err = fs.FormatDocument(r, deps.Now()); err != nil {
				return err
			}
		}
		path, err := w.WriteMarkdown(deps.Ctx, name, content)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, path)
	}
	return nil
}

// titleOf returns the converted title of doc, which may have been filled
// in by article extraction, falling back to its raw title.
func titleOf(results []tabmark.ConversionResult, doc tabmark.RawDocument) string {
	for _, r := range results {
		if r.URL == doc.URL && r.Title != "" {
			return r.Title
		}
	}
	return doc.Title
}

func reportFailures(deps *Dependencies, failures []tabmark.Failure) {
	for _, f := range failures {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", f.URL, tabmark.ErrorMessage(f.Err))
	}
}
