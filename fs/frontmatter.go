package fs

import (
	"strings"
	"time"

	"github.com/fwojciec/tabmark"
	"gopkg.in/yaml.v3"
)

// frontmatter is the metadata block written ahead of a document.
type frontmatter struct {
	Source    string `yaml:"source"`
	Title     string `yaml:"title"`
	Converted string `yaml:"converted"`
}

// FormatDocument prefixes r.Document() with a YAML frontmatter block
// recording its source URL, title and conversion date.
func FormatDocument(r tabmark.ConversionResult, converted time.Time) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		Source:    r.URL,
		Title:     r.Title,
		Converted: converted.Format(time.DateOnly),
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(r.Document())
	return b.String(), nil
}
