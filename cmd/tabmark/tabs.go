package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/tabmark"
)

// Run executes the tabs command. The output file is named after the active
// tab, also when --all converts every tab.
func (c *TabsCmd) Run(deps *Dependencies) error {
	if !c.All {
		doc, err := deps.Tabs.ActiveTab(deps.Ctx)
		if err != nil {
			return err
		}
		return c.convert(deps, []tabmark.RawDocument{*doc}, 0)
	}

	set, err := deps.Tabs.Tabs(deps.Ctx)
	if err != nil {
		return err
	}
	if err := c.unreadable(deps, set); err != nil {
		return err
	}
	return c.convert(deps, set.Tabs, max(set.Active, 0))
}

// unreadable applies the batch policy to tabs that could not be read.
// Without --partial the first one fails the run; with it each is reported
// and the run fails only when no tab could be read.
func (c *TabsCmd) unreadable(deps *Dependencies, set *tabmark.TabSet) error {
	if len(set.Failures) == 0 {
		return nil
	}
	if c.policy() == tabmark.PolicyAllOrNothing {
		return set.Failures[0].Err
	}
	reportFailures(deps, set.Failures)
	if len(set.Tabs) > 0 {
		return nil
	}
	errs := make([]error, len(set.Failures))
	for i, f := range set.Failures {
		errs[i] = f.Err
	}
	return fmt.Errorf("all %d tabs failed: %w", len(set.Failures), errors.Join(errs...))
}
