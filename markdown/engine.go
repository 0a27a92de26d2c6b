// Package markdown renders HTML node trees as Markdown using an ordered,
// immutable rule table.
package markdown

import (
	"strings"

	"github.com/fwojciec/tabmark"
	"golang.org/x/net/html"
)

// Ensure Engine implements tabmark.Renderer at compile time.
var _ tabmark.Renderer = (*Engine)(nil)

// Engine renders node trees with a RuleSet.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	rules RuleSet
}

// New returns an Engine that renders with rules.
func New(rules RuleSet) *Engine {
	return &Engine{rules: rules}
}

// NewDefault returns an Engine using DefaultRuleSet.
func NewDefault() *Engine {
	return New(DefaultRuleSet())
}

type frame struct {
	node  *html.Node
	ctx   Context
	inner Context
	next  *html.Node
	out   fragments
	rule  Rule
	found bool
}

func newFrame(n *html.Node, ctx Context) *frame {
	return &frame{node: n, ctx: ctx, inner: ctx.enter(n), next: n.FirstChild}
}

// Render converts n and its descendants into Markdown.
//
// The tree is walked post-order with an explicit stack, so arbitrarily deep
// markup does not grow the goroutine stack. Leading newlines and trailing
// whitespace are trimmed from the result.
func (e *Engine) Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}

	stack := []*frame{newFrame(n, contextOf(n))}
	var out string
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if !top.found {
			r, ok := e.rules.Lookup(top.node)
			if !ok {
				return "", &tabmark.ConversionError{Node: describe(top.node)}
			}
			top.rule, top.found = r, true
		}

		if c := top.next; c != nil {
			top.next = c.NextSibling
			stack = append(stack, newFrame(c, top.inner))
			continue
		}

		s := top.rule.Render(top.node, top.out.String(), top.ctx)
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			out = s
			break
		}
		if top.ctx.Pre {
			stack[len(stack)-1].out.verbatim(s)
		} else {
			stack[len(stack)-1].out.add(s)
		}
	}

	out = strings.TrimLeft(out, "\t\r\n")
	return strings.TrimRight(out, " \t\r\n"), nil
}
