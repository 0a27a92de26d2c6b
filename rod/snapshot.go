// Package rod acquires pages through Chrome: it renders URLs in a managed
// headless browser and reads the open tabs of a running browser over the
// DevTools protocol.
package rod

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/tabmark"
	"github.com/go-rod/rod"
)

// snapshotJS reads what a converter needs from a loaded page in one round trip.
const snapshotJS = `() => ({
	title: document.title,
	url: document.URL,
	markup: document.documentElement ? document.documentElement.outerHTML : "",
	visible: document.visibilityState === "visible",
	focused: document.hasFocus(),
})`

// TabState is a page snapshot plus the page's focus state.
type TabState struct {
	Doc     tabmark.RawDocument
	Visible bool
	Focused bool
}

type pageSnapshot struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Markup  string `json:"markup"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
}

// snapshot evaluates snapshotJS on page.
func snapshot(page *rod.Page) (*TabState, error) {
	res, err := page.Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	var s pageSnapshot
	if err := res.Value.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding page snapshot: %w", err)
	}
	return &TabState{
		Doc:     tabmark.RawDocument{Title: s.Title, URL: s.URL, Markup: s.Markup},
		Visible: s.Visible,
		Focused: s.Focused,
	}, nil
}

// Eligible reports whether a tab at rawURL can be converted.
// Only http and https pages qualify.
func Eligible(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ActiveIndex returns the index of the active tab: the first focused tab,
// else the first visible one, else -1.
func ActiveIndex(tabs []TabState) int {
	for i := range tabs {
		if tabs[i].Focused {
			return i
		}
	}
	for i := range tabs {
		if tabs[i].Visible {
			return i
		}
	}
	return -1
}

// SelectActive picks the active tab as ActiveIndex does.
func SelectActive(tabs []TabState) (*tabmark.RawDocument, error) {
	if len(tabs) == 0 {
		return nil, &tabmark.NoActiveTargetError{Reason: "no open http(s) tabs"}
	}
	i := ActiveIndex(tabs)
	if i < 0 {
		return nil, &tabmark.NoActiveTargetError{Reason: "no visible http(s) tab"}
	}
	return &tabs[i].Doc, nil
}
