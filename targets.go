package gesture

import "maps"

type nodeTarget struct {
	node      any
	eventable Eventable
	props     map[string]any
}

// NodeTargets is a Collector that maps nodes to eventables. Register its
// Collect method with Session.OnCollect. A node may be added more than once;
// entries are offered in the order they were added.
type NodeTargets struct {
	entries []nodeTarget
}

// NewNodeTargets creates an empty node table.
func NewNodeTargets() *NodeTargets {
	return &NodeTargets{}
}

// Add attaches ev to node. props are copied onto every event delivered through
// this entry.
func (t *NodeTargets) Add(node any, ev Eventable, props map[string]any) {
	t.entries = append(t.entries, nodeTarget{node: node, eventable: ev, props: maps.Clone(props)})
}

// Listen creates a Listeners with DefaultOptions, attaches it to node, and
// returns it.
func (t *NodeTargets) Listen(node any) *Listeners {
	l := NewListeners(DefaultOptions())
	t.Add(node, l, nil)
	return l
}

// Remove detaches every eventable attached to node.
func (t *NodeTargets) Remove(node any) {
	live := t.entries[:0]
	for _, e := range t.entries {
		if !sameTarget(e.node, node) {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(t.entries); i++ {
		t.entries[i] = nodeTarget{}
	}
	t.entries = live
}

// Len returns the number of attached entries.
func (t *NodeTargets) Len() int {
	return len(t.entries)
}

// Collect appends an entry for each eventable attached to ctx.Node.
func (t *NodeTargets) Collect(ctx *CollectContext) {
	if ctx.Node == nil {
		return
	}
	for _, e := range t.entries {
		if sameTarget(e.node, ctx.Node) {
			ctx.Targets = append(ctx.Targets, TargetEntry{
				Node:      e.node,
				Eventable: e.eventable,
				Props:     e.props,
			})
		}
	}
}
