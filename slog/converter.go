package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure LoggingConverter implements tabmark.DocumentConverter.
var _ tabmark.DocumentConverter = (*LoggingConverter)(nil)

// LoggingConverter wraps a DocumentConverter with logging.
type LoggingConverter struct {
	next   tabmark.DocumentConverter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next tabmark.DocumentConverter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// ConvertDocument logs the URL, mode and the input and output sizes.
func (c *LoggingConverter) ConvertDocument(raw tabmark.RawDocument, mode tabmark.SelectionMode) (res *tabmark.ConversionResult, err error) {
	defer func(begin time.Time) {
		var out int
		if res != nil {
			out = len(res.Markdown)
		}
		c.logger.Info("convert",
			"url", raw.URL,
			"mode", mode.String(),
			"bytes", len(raw.Markup),
			"markdown", out,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ConvertDocument(raw, mode)
}

// Ensure LoggingSelector implements tabmark.Selector.
var _ tabmark.Selector = (*LoggingSelector)(nil)

// LoggingSelector wraps a Selector and logs which element was chosen.
type LoggingSelector struct {
	next   tabmark.Selector
	logger *slog.Logger
}

// NewLoggingSelector creates a new LoggingSelector.
func NewLoggingSelector(next tabmark.Selector, logger *slog.Logger) *LoggingSelector {
	return &LoggingSelector{next: next, logger: logger}
}

// Select logs the mode and the selected element at debug level.
func (s *LoggingSelector) Select(doc *html.Node, mode tabmark.SelectionMode) *html.Node {
	begin := time.Now()
	n := s.next.Select(doc, mode)
	s.logger.Debug("select",
		"mode", mode.String(),
		"element", element(n),
		"duration", time.Since(begin),
	)
	return n
}

// element names n for logs: its tag and id, or "(document)".
func element(n *html.Node) string {
	switch {
	case n == nil:
		return "(none)"
	case n.Type != html.ElementNode:
		return "(document)"
	}
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			return n.Data + "#" + a.Val
		}
	}
	return n.Data
}
