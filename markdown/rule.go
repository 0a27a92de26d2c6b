package markdown

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rule priorities. Higher priorities are consulted first.
const (
	PriorityBase     = 100
	PriorityGFM      = 200
	PriorityOverride = 300

	priorityFallback = math.MinInt
)

// Predicate reports whether a rule applies to a node.
type Predicate func(n *html.Node) bool

// Context describes where a node sits in the tree being rendered.
type Context struct {
	// Pre is set inside <pre>.
	Pre bool

	// Code is set inside an inline code element.
	Code bool

	// ListDepth counts enclosing <ul>/<ol> elements.
	ListDepth int

	// table describes the nearest enclosing <table>.
	table *tableInfo
}

// enter returns the context for the children of n.
func (c Context) enter(n *html.Node) Context {
	if n.Type != html.ElementNode {
		return c
	}
	switch Classify(n) {
	case KindPreformatted:
		c.Pre = true
	case KindCode:
		c.Code = true
	case KindList:
		c.ListDepth++
	case KindTable:
		c.table = newTableInfo(n)
	}
	return c
}

// contextOf derives the context of n from its ancestors.
func contextOf(n *html.Node) Context {
	var chain []*html.Node
	for p := n.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	var c Context
	for i := len(chain) - 1; i >= 0; i-- {
		c = c.enter(chain[i])
	}
	return c
}

// Rule maps one node shape to a Markdown fragment.
// Render receives the node, the already rendered content of its children,
// and the node's context. It must not retain or modify the node.
type Rule struct {
	Name     string
	Match    Predicate
	Priority int
	Render   func(n *html.Node, content string, c Context) string
}

// RuleSet is an immutable, ordered collection of rules.
// The zero value has no rules; use NewRuleSet.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet composes rule groups in registration order.
// Lookup consults rules by descending priority; among rules with equal
// priority the one registered last is consulted first. A fallback rule that
// renders children and drops the tag is always appended, so lookup is total.
func NewRuleSet(groups ...[]Rule) RuleSet {
	var rules []Rule
	for _, g := range groups {
		rules = append(rules, g...)
	}

	order := make([]int, len(rules))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(rules[b].Priority, rules[a].Priority); c != 0 {
			return c
		}
		return cmp.Compare(b, a)
	})

	sorted := make([]Rule, 0, len(rules)+1)
	for _, i := range order {
		sorted = append(sorted, rules[i])
	}
	sorted = append(sorted, fallbackRule)
	return RuleSet{rules: sorted}
}

// Lookup returns the first rule matching n.
func (s RuleSet) Lookup(n *html.Node) (Rule, bool) {
	for _, r := range s.rules {
		if r.Match == nil || r.Match(n) {
			return r, true
		}
	}
	return Rule{}, false
}

// Rules returns the rules in lookup order.
func (s RuleSet) Rules() []Rule {
	return slices.Clone(s.rules)
}

// Len returns the number of rules, including the fallback.
func (s RuleSet) Len() int {
	return len(s.rules)
}

var fallbackRule = Rule{
	Name:     "fallback",
	Match:    func(*html.Node) bool { return true },
	Priority: priorityFallback,
	Render: func(_ *html.Node, content string, _ Context) string {
		return content
	},
}

// Is matches nodes of any of the given kinds.
func Is(kinds ...Kind) Predicate {
	return func(n *html.Node) bool {
		return slices.Contains(kinds, Classify(n))
	}
}

// Tag matches elements with any of the given tag names.
func Tag(names ...string) Predicate {
	atoms := make([]atom.Atom, 0, len(names))
	for _, name := range names {
		atoms = append(atoms, atom.Lookup([]byte(name)))
	}
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for i, a := range atoms {
			if (a != 0 && n.DataAtom == a) || n.Data == names[i] {
				return true
			}
		}
		return false
	}
}

// DefaultRuleSet returns base, GFM and strip rules composed in that order.
func DefaultRuleSet() RuleSet {
	return NewRuleSet(BaseRules(), GFMRules(), StripRules())
}
