package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Framework identifies the generator of a documentation site.
type Framework string

// Known frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

type profile struct {
	framework Framework
	markers   []string
	content   string
}

// profiles are checked in order. VitePress precedes VuePress because it
// reuses some VuePress markup.
var profiles = []profile{
	{
		framework: FrameworkDocusaurus,
		markers:   []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "[data-rh][data-theme]"},
		content:   ".theme-doc-markdown",
	},
	{
		framework: FrameworkMkDocs,
		markers:   []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"},
		content:   ".md-content__inner",
	},
	{
		framework: FrameworkSphinx,
		markers:   []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"},
		content:   "[role='main'], .rst-content, .document .body",
	},
	{
		framework: FrameworkVitePress,
		markers:   []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"},
		content:   ".vp-doc",
	},
	{
		framework: FrameworkVuePress,
		markers:   []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"},
		content:   ".theme-default-content",
	},
	{
		framework: FrameworkGitBook,
		markers:   []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"},
		content:   "[data-testid='page.contentEditor'], article",
	},
	{
		framework: FrameworkNextra,
		markers:   []string{".nextra-navbar", ".nextra-sidebar", ".nextra-toc"},
		content:   "article",
	},
}

// Detector identifies documentation frameworks from framework-specific
// classes, data attributes and the generator meta tag.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the framework that generated doc, or FrameworkUnknown.
func (d *Detector) Detect(doc *html.Node) Framework {
	if doc == nil {
		return FrameworkUnknown
	}
	sel := goquery.NewDocumentFromNode(doc)

	// The generator tag is the most reliable signal when present.
	if generator, ok := sel.Find("meta[name='generator']").Last().Attr("content"); ok {
		generator = strings.ToLower(generator)
		for _, p := range profiles {
			if strings.Contains(generator, string(p.framework)) {
				return p.framework
			}
		}
	}

	for _, p := range profiles {
		for _, m := range p.markers {
			if sel.Find(m).Length() > 0 {
				return p.framework
			}
		}
	}

	if hasGitBookClasses(sel.Find("html").First().AttrOr("class", "")) {
		return FrameworkGitBook
	}
	return FrameworkUnknown
}

// hasGitBookClasses requires at least two of GitBook's html element classes.
func hasGitBookClasses(class string) bool {
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}

// ContentSelector returns the CSS selector of the article region used by
// framework f, or "" for FrameworkUnknown.
func ContentSelector(f Framework) string {
	for _, p := range profiles {
		if p.framework == f {
			return p.content
		}
	}
	return ""
}
