// Package collect discovers the interactive, visible controls under a root node.
package collect

import (
	"errors"
	"fmt"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/geom"
)

// Element is a discovered control and the frame it had when discovered.
type Element struct {
	Node  accessibility.Node
	Frame geom.Rect
}

// Stats summarizes one traversal.
type Stats struct {
	Visited    int
	Candidates int
	NoFrame    int
	Tiny       int
	Offscreen  int
	Duplicates int
	Kept       int
}

// Collector walks a control tree and returns deduplicated elements.
type Collector struct {
	opts  options
	stats Stats
}

// New creates a collector.
func New(opts ...Option) *Collector {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Collector{opts: o}
}

// Stats returns statistics from the last Collect call.
func (c *Collector) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return c.stats
}

// Collect walks root depth-first up to maxDepth levels below it and returns the
// kept elements in traversal order. The caller keeps ownership of root and
// receives ownership of every returned node; all other handles obtained during
// the walk are released before Collect returns.
//
// Only a root that cannot enumerate its children because the host is
// unavailable produces an error.
func (c *Collector) Collect(root accessibility.Node, maxDepth int) ([]Element, error) {
	if c == nil {
		return nil, errors.New("collect: nil collector")
	}
	c.stats = Stats{}
	if root == nil {
		return nil, fmt.Errorf("collect: %w", accessibility.ErrUnavailable)
	}
	children, err := root.Children()
	if err != nil {
		if errors.Is(err, accessibility.ErrUnavailable) {
			return nil, fmt.Errorf("collect root children: %w", err)
		}
		children = nil
	}
	c.stats.Visited++

	var candidates []Element
	if maxDepth >= 1 {
		for _, child := range children {
			candidates = c.visit(child, 1, maxDepth, candidates)
		}
	} else {
		accessibility.ReleaseAll(children)
	}
	c.stats.Candidates = len(candidates)

	kept := c.dedupe(candidates)
	c.stats.Kept = len(kept)
	c.opts.logger.Debug("collect finished",
		"visited", c.stats.Visited,
		"candidates", c.stats.Candidates,
		"no_frame", c.stats.NoFrame,
		"tiny", c.stats.Tiny,
		"offscreen", c.stats.Offscreen,
		"duplicates", c.stats.Duplicates,
		"kept", c.stats.Kept,
	)
	return kept, nil
}

// visit owns n. It either appends n to out or releases it.
func (c *Collector) visit(n accessibility.Node, depth, maxDepth int, out []Element) []Element {
	if n == nil {
		return out
	}
	c.stats.Visited++

	keep := false
	if c.qualifies(n) {
		if frame, ok := c.acceptFrame(n); ok {
			out = append(out, Element{Node: n, Frame: frame})
			keep = true
		}
	}

	if depth < maxDepth {
		children, err := n.Children()
		if err == nil {
			for _, child := range children {
				out = c.visit(child, depth+1, maxDepth, out)
			}
		}
	}

	if !keep {
		n.Release()
	}
	return out
}

func (c *Collector) qualifies(n accessibility.Node) bool {
	if role, err := n.Role(); err == nil && c.opts.roles.Has(role) {
		return true
	}
	return accessibility.Supports(n, accessibility.ActionActivate) ||
		accessibility.Supports(n, accessibility.ActionPress)
}

func (c *Collector) acceptFrame(n accessibility.Node) (geom.Rect, bool) {
	frame, err := accessibility.Frame(n)
	if err != nil {
		c.stats.NoFrame++
		return geom.Rect{}, false
	}
	if frame.Width < c.opts.minSize || frame.Height < c.opts.minSize {
		c.stats.Tiny++
		return geom.Rect{}, false
	}
	if c.opts.screen != nil && !frame.Intersects(c.opts.screen.Expand(c.opts.margin)) {
		c.stats.Offscreen++
		return geom.Rect{}, false
	}
	return frame, true
}

// dedupe keeps the first of every group of near-identical frames and
// releases the rest.
func (c *Collector) dedupe(candidates []Element) []Element {
	kept := make([]Element, 0, len(candidates))
	for _, cand := range candidates {
		duplicate := false
		for _, k := range kept {
			if k.Frame.ApproxEqual(cand.Frame, c.opts.tolerance) {
				duplicate = true
				break
			}
		}
		if duplicate {
			c.stats.Duplicates++
			cand.Node.Release()
			continue
		}
		kept = append(kept, cand)
	}
	return kept
}

// Nodes returns the node handles of elements.
func Nodes(elements []Element) []accessibility.Node {
	nodes := make([]accessibility.Node, len(elements))
	for i, el := range elements {
		nodes[i] = el.Node
	}
	return nodes
}
