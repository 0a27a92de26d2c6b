package markdown

import (
	"strings"
	"unicode"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`[`, `\[`,
	`]`, `\]`,
)

// Escape backslash-escapes characters that would otherwise be read as
// emphasis, code or link syntax.
func Escape(s string) string {
	return escaper.Replace(s)
}

// collapseSpace replaces every run of whitespace with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			longest = max(longest, cur)
			continue
		}
		cur = 0
	}
	return longest
}

// fragments accumulates the rendered children of a node. Trailing newlines
// of one fragment and leading newlines of the next merge into the longer of
// the two runs, capped at one blank line. Verbatim fragments are appended
// as they are.
type fragments struct {
	b  strings.Builder
	nl int
}

func (f *fragments) add(s string) {
	rest := strings.TrimLeft(s, "\n")
	sep := min(max(f.nl, len(s)-len(rest)), 2)
	if rest == "" {
		f.nl = sep
		return
	}
	trimmed := strings.TrimRight(rest, "\n")
	f.b.WriteString("\n\n"[:sep])
	f.b.WriteString(trimmed)
	f.nl = len(rest) - len(trimmed)
}

func (f *fragments) verbatim(s string) {
	f.b.WriteString(strings.Repeat("\n", f.nl))
	f.nl = 0
	f.b.WriteString(s)
}

func (f *fragments) String() string {
	return f.b.String() + strings.Repeat("\n", f.nl)
}

// splitSpace separates leading and trailing whitespace from s.
func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimLeftFunc(s, unicode.IsSpace)
	lead = s[:len(s)-len(core)]
	trimmed := strings.TrimRightFunc(core, unicode.IsSpace)
	trail = core[len(trimmed):]
	return lead, trimmed, trail
}
