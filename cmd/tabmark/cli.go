package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/tabmark"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Now       func() time.Time
	Source    tabmark.Source
	Sitemaps  tabmark.SitemapService
	Tabs      tabmark.TabLister
	Limiter   tabmark.DomainLimiter
	NewWriter func(dir string) tabmark.MarkdownWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"TABMARK_VERBOSE" help:"Log each step to stderr"`

	URL  URLCmd  `cmd:"" name:"url" help:"Fetch web pages and convert them"`
	Tabs TabsCmd `cmd:"" help:"Convert tabs of a Chrome started with --remote-debugging-port"`
	File FileCmd `cmd:"" help:"Convert local HTML files ('-' reads stdin)"`
}

// ConvertFlags are the conversion and output options shared by all commands.
type ConvertFlags struct {
	Mode            string   `short:"m" enum:"main,body,article" default:"main" env:"TABMARK_MODE" help:"Region to convert: main, body or article"`
	Engine          string   `enum:"rules,html-to-markdown" default:"rules" env:"TABMARK_ENGINE" help:"Markdown engine: rules or html-to-markdown"`
	Extractor       string   `enum:"trafilatura,readability" default:"trafilatura" env:"TABMARK_EXTRACTOR" help:"Article detector for --mode article"`
	MainSelector    string   `name:"main-selector" default:"main" env:"TABMARK_MAIN_SELECTOR" help:"CSS selector of the main region"`
	DetectFramework bool     `name:"detect-framework" env:"TABMARK_DETECT_FRAMEWORK" help:"Find the content region of known documentation generators"`
	StripTags       []string `name:"strip-tags" sep:"," env:"TABMARK_STRIP_TAGS" help:"Extra tags to drop, comma separated"`
	Partial         bool     `env:"TABMARK_PARTIAL" help:"Keep going when some documents fail"`
	Frontmatter     bool     `env:"TABMARK_FRONTMATTER" help:"Prefix single documents with YAML frontmatter"`
	Out             string   `short:"o" env:"TABMARK_OUT" help:"Write {title}.md into this directory instead of stdout"`
	Split           bool     `help:"With --out, write one file per document named after its URL path"`
	Concurrency     int      `short:"c" default:"4" env:"TABMARK_CONCURRENCY" help:"Documents processed in parallel"`
}

// URLCmd is the "url" subcommand.
type URLCmd struct {
	ConvertFlags `embed:""`

	URLs      []string      `arg:"" name:"url" help:"Page URLs"`
	Fetcher   string        `enum:"http,browser" default:"http" env:"TABMARK_FETCHER" help:"Fetch with plain HTTP or a headless browser"`
	Sitemap   bool          `help:"Expand each URL into the pages listed in its site's sitemaps"`
	Include   []string      `short:"I" help:"With --sitemap, keep URLs matching this regex (repeatable)"`
	Exclude   []string      `short:"X" help:"With --sitemap, drop URLs matching this regex (repeatable)"`
	RateLimit float64       `name:"rate-limit" default:"0" env:"TABMARK_RATE_LIMIT" help:"Requests per second per host, 0 for unlimited"`
	NoRetry   bool          `name:"no-retry" help:"Do not retry failed fetches"`
	Timeout   time.Duration `short:"t" default:"10s" env:"TABMARK_TIMEOUT" help:"Timeout per page"`
}

// TabsCmd is the "tabs" subcommand.
type TabsCmd struct {
	ConvertFlags `embed:""`

	Remote string `default:"127.0.0.1:9222" env:"TABMARK_REMOTE" help:"DevTools address of the browser"`
	All    bool   `short:"a" help:"Convert every open http(s) tab, not just the active one"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	ConvertFlags `embed:""`

	Paths []string `arg:"" name:"path" help:"HTML files, or '-' for stdin"`
	URL   string   `help:"Source URL to record for a single file"`
	Title string   `help:"Title to use for a single file"`
}
