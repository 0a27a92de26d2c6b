package main

import (
	"time"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/acquire"
)

// Run executes the url command.
func (c *URLCmd) Run(deps *Dependencies) error {
	targets := c.URLs
	if c.Sitemap {
		var err error
		if targets, err = c.expand(deps); err != nil {
			return err
		}
	}

	runner := &acquire.Runner{
		Source:      deps.Source,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
		Logger:      deps.Logger,
	}
	if c.NoRetry {
		runner.RetryDelays = []time.Duration{}
	}

	docs, failures, err := runner.SnapshotAll(deps.Ctx, targets, c.policy())
	reportFailures(deps, failures)
	if err != nil {
		return err
	}
	return c.convert(deps, docs, 0)
}

// expand replaces each URL with the pages its site's sitemaps list below
// it. A URL whose site has no sitemap is kept as is.
func (c *URLCmd) expand(deps *Dependencies) ([]string, error) {
	filter, err := tabmark.ParseURLFilter(c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}

	var targets []string
	seen := make(map[string]bool)
	for _, u := range c.URLs {
		found, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, u, filter)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			found = []string{u}
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				targets = append(targets, f)
			}
		}
	}
	return targets, nil
}
