package syntax

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Position addresses a node by the child indices leading to it from a root.
// The empty Position addresses the root itself.
type Position []int

// Clone returns an independent copy of p.
func (p Position) Clone() Position { return slices.Clone(p) }

// Equal reports whether p and o address the same node.
func (p Position) Equal(o Position) bool { return slices.Equal(p, o) }

// IsAncestorOf reports whether p addresses a proper ancestor of o.
func (p Position) IsAncestorOf(o Position) bool {
	return len(p) < len(o) && slices.Equal(p, o[:len(p)])
}

// Parent returns the position of the parent node. The root has no parent and
// Parent returns nil for it.
func (p Position) Parent() Position {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Index returns the last index of p, i.e. the node's index within its parent,
// or -1 for the root.
func (p Position) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// String formats p like a tuple, e.g. "(0, 2)", or "()" for the root.
func (p Position) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// At returns the node at position p relative to t.
func (t *Tree) At(p Position) (*Tree, error) {
	n := t
	for depth, i := range p {
		if i < 0 || i >= len(n.children) {
			return nil, fmt.Errorf("%v at depth %d: %w", p, depth, ErrPositionOutOfRange)
		}
		n = n.children[i]
	}
	return n, nil
}

// Position returns the position of t relative to its root.
func (t *Tree) Position() Position {
	var p Position
	for n := t; n.parent != nil; n = n.parent {
		p = append(p, n.parent.IndexOf(n))
	}
	slices.Reverse(p)
	return p
}

// ReplaceAt swaps the node at position p for c and returns the detached old
// node. Replacing the empty position is not possible in place; callers that
// need to swap the root should use c directly.
func (t *Tree) ReplaceAt(p Position, c *Tree) (*Tree, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("replace root: %w", ErrPositionOutOfRange)
	}
	parent, err := t.At(p.Parent())
	if err != nil {
		return nil, err
	}
	return parent.Replace(p.Index(), c)
}
