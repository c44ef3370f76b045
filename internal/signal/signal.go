// Package signal implements the lightweight reactive network of boolean
// activation cells, one per node.
//
// A cell notifies its subscribers only when its value actually changes, so
// redundant writes are free and propagation flows forward one hop per write;
// downstream consumers subscribe to continue the chain. Cells are rebuilt
// whenever the owning graph is (re)initialized and torn down with it.
package signal

import "slices"

// Cell is a named boolean reactive cell.
type Cell struct {
	name        string
	value       bool
	subscribers []*subscription
}

type subscription struct {
	fn func(bool)
}

// NewCell returns a cell with the given name and initial value false.
func NewCell(name string) *Cell {
	return &Cell{name: name}
}

// Name returns the cell's name (the owning node id).
func (c *Cell) Name() string { return c.name }

// Get returns the cell's current value.
func (c *Cell) Get() bool { return c.value }

// Subscribe registers a callback invoked on every value change. The returned
// function removes the subscription.
func (c *Cell) Subscribe(fn func(bool)) func() {
	sub := &subscription{fn: fn}
	c.subscribers = append(c.subscribers, sub)
	return func() {
		if i := slices.Index(c.subscribers, sub); i >= 0 {
			c.subscribers = slices.Delete(c.subscribers, i, i+1)
		}
	}
}

// Set writes a value. Subscribers are notified only when the value changed.
func (c *Cell) Set(v bool) {
	if c.value == v {
		return
	}
	c.value = v

	// cloning to avoid mutation during iteration
	subs := slices.Clone(c.subscribers)
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Silently overwrites the value without notifying subscribers. Used when the
// engine sweeps downstream cells itself and must not re-trigger the chain.
func (c *Cell) Silently(v bool) {
	c.value = v
}

// Network owns one cell per node for a single editor instance.
type Network struct {
	cells map[string]*Cell
}

// NewNetwork creates a cell for each node id.
func NewNetwork(nodeIDs []string) *Network {
	cells := make(map[string]*Cell, len(nodeIDs))
	for _, id := range nodeIDs {
		cells[id] = NewCell(id)
	}
	return &Network{cells: cells}
}

// Cell looks up a node's cell.
func (n *Network) Cell(id string) (*Cell, bool) {
	c, ok := n.cells[id]
	return c, ok
}

// Dispose drops every subscription so no callback can fire against a torn
// down graph.
func (n *Network) Dispose() {
	for _, c := range n.cells {
		c.subscribers = nil
	}
}
