// Package tree builds and animates procedural trees. Trees are arenas of
// nodes addressed by NodeID; each node records its parent and children by
// index, so there are no pointer cycles and whole trees are cheap to copy
// or convert.
package tree

import (
	"errors"
	"fmt"
	"slices"
)

// NodeID addresses a node within one Tree.
type NodeID int

// NoParent is the parent of the root.
const NoParent NodeID = -1

// ErrNoNode reports an id that does not address a node.
var ErrNoNode = errors.New("no such node")

type node[T any] struct {
	value    T
	parent   NodeID
	depth    int
	children []NodeID
}

// Tree is an arena of nodes with payload T. Node 0 is the root, and a
// child's id is always greater than its parent's.
type Tree[T any] struct {
	nodes []node[T]
}

// New returns a tree holding only root.
func New[T any](root T) *Tree[T] {
	return &Tree[T]{nodes: []node[T]{{value: root, parent: NoParent}}}
}

// Root returns the root id.
func (t *Tree[T]) Root() NodeID { return 0 }

// Len is the number of nodes.
func (t *Tree[T]) Len() int { return len(t.nodes) }

func (t *Tree[T]) valid(id NodeID) bool { return id >= 0 && int(id) < len(t.nodes) }

// AddChild attaches a new node holding v under parent.
func (t *Tree[T]) AddChild(parent NodeID, v T) (NodeID, error) {
	if !t.valid(parent) {
		return NoParent, fmt.Errorf("%w: parent %d", ErrNoNode, parent)
	}
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node[T]{value: v, parent: parent, depth: t.nodes[parent].depth + 1})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id, nil
}

// Value returns the payload of id; the zero value for unknown ids.
func (t *Tree[T]) Value(id NodeID) T {
	if !t.valid(id) {
		var zero T
		return zero
	}
	return t.nodes[id].value
}

// Parent returns the parent of id and false for the root or unknown ids.
func (t *Tree[T]) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.nodes[id].parent == NoParent {
		return NoParent, false
	}
	return t.nodes[id].parent, true
}

// Children returns the child ids of id in insertion order. The slice is
// shared with the tree.
func (t *Tree[T]) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.nodes[id].children
}

// Depth is the number of edges between id and the root.
func (t *Tree[T]) Depth(id NodeID) int {
	if !t.valid(id) {
		return -1
	}
	return t.nodes[id].depth
}

// Height is the greatest node depth.
func (t *Tree[T]) Height() int {
	h := 0
	for _, n := range t.nodes {
		h = max(h, n.depth)
	}
	return h
}

// Leaves counts nodes without children.
func (t *Tree[T]) Leaves() int {
	n := 0
	for _, nd := range t.nodes {
		if len(nd.children) == 0 {
			n++
		}
	}
	return n
}

// Walk visits nodes depth-first, parents before children. Returning false
// from fn skips the node's subtree.
func (t *Tree[T]) Walk(fn func(id NodeID, v T) bool) {
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id, t.nodes[id].value) {
			continue
		}
		kids := t.nodes[id].children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Edges calls fn for every parent/child pair in id order.
func (t *Tree[T]) Edges(fn func(parent, child T)) {
	for _, n := range t.nodes[1:] {
		fn(t.nodes[n.parent].value, n.value)
	}
}

// Convert builds a tree with the same shape whose payloads are fn applied to
// t's payloads.
func Convert[T, U any](t *Tree[T], fn func(T) U) *Tree[U] {
	out, _ := TryConvert(t, func(v T) (U, error) { return fn(v), nil })
	return out
}

// TryConvert is Convert for mappers that can fail; the first error aborts.
func TryConvert[T, U any](t *Tree[T], fn func(T) (U, error)) (*Tree[U], error) {
	rootVal, err := fn(t.nodes[0].value)
	if err != nil {
		return nil, fmt.Errorf("node 0: %w", err)
	}
	out := New(rootVal)
	out.nodes = slices.Grow(out.nodes, len(t.nodes)-1)
	ids := make([]NodeID, len(t.nodes))
	ids[0] = out.Root()
	for i := 1; i < len(t.nodes); i++ {
		v, err := fn(t.nodes[i].value)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		id, err := out.AddChild(ids[t.nodes[i].parent], v)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return out, nil
}
