package main

import (
	"time"

	"github.com/fwojciec/tabmark"
	"github.com/fwojciec/tabmark/acquire"
)

// Run executes the file command.
func (c *FileCmd) Run(deps *Dependencies) error {
	if (c.URL != "" || c.Title != "") && len(c.Paths) != 1 {
		return tabmark.Errorf(tabmark.EINVALID, "--url and --title need exactly one path")
	}

	runner := &acquire.Runner{
		Source:      deps.Source,
		Concurrency: c.Concurrency,
		RetryDelays: []time.Duration{},
		Logger:      deps.Logger,
	}
	docs, failures, err := runner.SnapshotAll(deps.Ctx, c.Paths, c.policy())
	reportFailures(deps, failures)
	if err != nil {
		return err
	}

	if len(docs) == 1 {
		if c.URL != "" {
			docs[0].URL = c.URL
		}
		if c.Title != "" {
			docs[0].Title = c.Title
		}
	}
	return c.convert(deps, docs, 0)
}
