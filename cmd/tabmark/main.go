// Command tabmark converts web pages, browser tabs and local HTML files to
// Markdown.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/acquire"
	"github.com/fwojciec/tabmark/fs"
	tabmarkhttp "github.com/fwojciec/tabmark/http"
	"github.com/fwojciec/tabmark/rod"
	tabslog "github.com/fwojciec/tabmark/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", tabmark.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPaths are YAML files read for flag defaults, in order; later
	// files win.
	ConfigPaths []string

	// Stdin is read by "tabmark file -".
	Stdin io.Reader

	// Now stamps frontmatter. Defaults to time.Now.
	Now func() time.Time

	// Services for end-to-end testing. Nil fields are built from flags.
	Source   tabmark.Source
	Sitemaps tabmark.SitemapService
	Tabs     tabmark.TabLister

	// NewWriter returns the writer for an output directory.
	NewWriter func(dir string) tabmark.MarkdownWriter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: DefaultConfigPaths(),
		Stdin:       os.Stdin,
		Now:         time.Now,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tabmark"),
		kong.Description("Convert web pages, browser tabs and HTML files to Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(YAML, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tabmark --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.NewWriter = m.NewWriter
	if deps.NewWriter == nil {
		logger := deps.Logger
		deps.NewWriter = func(dir string) tabmark.MarkdownWriter {
			return tabslog.NewLoggingWriter(fs.NewWriter(dir, fs.WithLogger(logger)), logger)
		}
	}

	switch kongCtx.Selected().Name {
	case "url":
		deps.Sitemaps = m.Sitemaps
		if deps.Sitemaps == nil {
			deps.Sitemaps = tabslog.NewLoggingSitemapService(tabmarkhttp.NewSitemapService(nil), deps.Logger)
		}
		deps.Source = m.Source
		if deps.Source == nil {
			src, closeFn, err := newURLSource(cli.URL.Fetcher, cli.URL.Timeout)
			if err != nil {
				return err
			}
			defer closeFn()
			deps.Source = src
		}
		deps.Source = tabslog.NewLoggingSource(deps.Source, deps.Logger)
		if cli.URL.RateLimit > 0 {
			deps.Limiter = acquire.NewDomainLimiter(cli.URL.RateLimit)
		}

	case "tabs":
		deps.Tabs = m.Tabs
		if deps.Tabs == nil {
			lister, err := rod.ConnectTabs(ctx, cli.Tabs.Remote)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: start Chrome with --remote-debugging-port=9222")
				return err
			}
			defer lister.Close()
			deps.Tabs = lister
		}
		deps.Tabs = rod.NewLoggingTabLister(deps.Tabs, deps.Logger)

	case "file":
		deps.Source = m.Source
		if deps.Source == nil {
			deps.Source = &fs.Source{Stdin: m.Stdin}
		}
		deps.Source = tabslog.NewLoggingSource(deps.Source, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newURLSource builds the Source for the url command. The returned func
// releases it.
func newURLSource(fetcher string, timeout time.Duration) (tabmark.Source, func(), error) {
	if fetcher == "browser" {
		manager, err := rod.NewBrowserManager()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser (is Chrome or Chromium installed?): %w", err)
		}
		return rod.NewSource(manager, rod.WithTimeout(timeout)), func() { _ = manager.Close() }, nil
	}
	return tabmarkhttp.NewSource(tabmarkhttp.WithTimeout(timeout)), func() {}, nil
}
