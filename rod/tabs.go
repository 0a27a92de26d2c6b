package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/tabmark"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultRemote is the DevTools address of a Chrome started with
// --remote-debugging-port=9222.
const DefaultRemote = "127.0.0.1:9222"

// Ensure TabLister implements tabmark.TabLister at compile time.
var _ tabmark.TabLister = (*TabLister)(nil)

// TabLister reads the open tabs of a running Chrome.
// It never navigates, resizes or closes those tabs.
type TabLister struct {
	browser *rod.Browser
	ws      *cdp.WebSocket
}

// ConnectTabs connects to the Chrome DevTools endpoint at remote, which may
// be a port, a host:port or a ws:// URL. An empty remote uses DefaultRemote.
// Close disconnects without closing the browser.
func ConnectTabs(ctx context.Context, remote string) (*TabLister, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	u, err := launcher.ResolveURL(remote)
	if err != nil {
		return nil, tabmark.Errorf(tabmark.ENOTFOUND, "no browser listening at %s: %v", remote, err)
	}

	ws := &cdp.WebSocket{}
	if err := ws.Connect(ctx, u, nil); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	browser := rod.New().Client(cdp.New().Start(ws)).NoDefaultDevice()
	if err := browser.Connect(); err != nil {
		_ = ws.Close()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &TabLister{browser: browser, ws: ws}, nil
}

// Tabs reads every http(s) tab once, in the order the browser lists its
// targets. Tabs that fail to read are returned as failures.
func (l *TabLister) Tabs(ctx context.Context) (*tabmark.TabSet, error) {
	states, failures, err := l.states(ctx)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 && len(failures) == 0 {
		return nil, &tabmark.NoActiveTargetError{Reason: "no open http(s) tabs"}
	}
	set := &tabmark.TabSet{
		Tabs:     make([]tabmark.RawDocument, len(states)),
		Active:   ActiveIndex(states),
		Failures: failures,
	}
	for i, s := range states {
		set.Tabs[i] = s.Doc
	}
	return set, nil
}

// ActiveTab returns the focused tab, or the first visible one. When no
// readable tab has focus and some tab failed to read, the failure is
// returned, since the focused tab may be the one that failed.
func (l *TabLister) ActiveTab(ctx context.Context) (*tabmark.RawDocument, error) {
	states, failures, err := l.states(ctx)
	if err != nil {
		return nil, err
	}
	if i := ActiveIndex(states); len(failures) > 0 && (i < 0 || !states[i].Focused) {
		return nil, failures[0].Err
	}
	return SelectActive(states)
}

// states snapshots every eligible tab. Targets that close before their URL
// is known are skipped; tabs that fail to snapshot become failures.
func (l *TabLister) states(ctx context.Context) ([]TabState, []tabmark.Failure, error) {
	pages, err := l.browser.Context(ctx).Pages()
	if err != nil {
		return nil, nil, fmt.Errorf("listing tabs: %w", err)
	}

	var (
		states   []TabState
		failures []tabmark.Failure
	)
	for _, page := range pages {
		info, err := page.Info()
		if err != nil || !Eligible(info.URL) {
			continue
		}
		state, err := snapshot(page.Context(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			failures = append(failures, tabmark.Failure{
				URL: info.URL,
				Err: tabmark.Errorf(tabmark.EINTERNAL, "reading tab %s: %v", info.URL, err),
			})
			continue
		}
		states = append(states, *state)
	}
	return states, failures, nil
}

// Close disconnects from the browser. The browser keeps running.
func (l *TabLister) Close() error {
	return l.ws.Close()
}
