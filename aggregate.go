package tabmark

import "strings"

const (
	bannerRule  = "-------------------------------------------"
	bannerStart = "############## CONTENT START ##############"
	bannerEnd   = "############## CONTENT END ###############"
)

// AggregatedDocument is an ordered collection of conversion results.
// Its body is always derived from Sections.
type AggregatedDocument struct {
	Sections []ConversionResult
}

// NewAggregatedDocument returns an AggregatedDocument holding a copy of results.
func NewAggregatedDocument(results []ConversionResult) *AggregatedDocument {
	sections := make([]ConversionResult, len(results))
	copy(sections, results)
	return &AggregatedDocument{Sections: sections}
}

// Body returns the banner-delimited text for the sections.
func (d *AggregatedDocument) Body() string {
	return Aggregate(d.Sections)
}

// Aggregate formats results as banner blocks joined by a blank line,
// in input order. Results are never reordered or deduplicated.
// An empty input yields an empty string.
func Aggregate(results []ConversionResult) string {
	if len(results) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(results))
	for i := range results {
		blocks = append(blocks, banner(&results[i]))
	}
	return strings.Join(blocks, "\n\n")
}

func banner(r *ConversionResult) string {
	var b strings.Builder
	b.WriteString(bannerRule + "\n")
	b.WriteString(bannerStart + "\n")
	b.WriteString(bannerRule + "\n\n")
	b.WriteString("Source: " + r.Title + " (" + r.URL + ")\n\n")
	b.WriteString(r.Markdown)
	b.WriteString("\n\n" + bannerRule + "\n")
	b.WriteString(bannerEnd + "\n")
	b.WriteString(bannerRule)
	return b.String()
}

// Combine returns the output for a set of results: empty for none, the
// single-document form for one, and the aggregated form for several.
func Combine(results []ConversionResult) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0].Document()
	}
	return Aggregate(results)
}
