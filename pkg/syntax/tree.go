package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrIndexOutOfRange is returned when a child index does not exist.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrPositionOutOfRange is returned by [Tree.At] when a position does not
	// address a node of the tree.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrAttached is returned when inserting a node that already has a parent.
	// Detach it with [Tree.Remove] or insert a [Tree.Copy] instead.
	ErrAttached = errors.New("node already has a parent")

	// ErrTokenChildren is returned when adding children to a terminal token.
	ErrTokenChildren = errors.New("tokens cannot have children")
)

// Tree is a node of a constituency parse tree.
//
// A constituent has a Label and an ordered list of children. A token
// (terminal) has Text and no children; its Label is always empty.
//
// The zero value is an unlabelled constituent with no children.
// Tree is not safe for concurrent mutation.
type Tree struct {
	Label string // Constituent label, e.g. "NP" (empty for tokens)
	Text  string // Terminal text (tokens only)

	token    bool
	children []*Tree
	parent   *Tree
}

// New creates a constituent with the given label and children.
// Children that are already attached to another tree are deep-copied so the
// new node never steals a child from an existing tree.
func New(label string, children ...*Tree) *Tree {
	t := &Tree{Label: label, children: make([]*Tree, 0, len(children))}
	for _, c := range children {
		if c.parent != nil {
			c = c.Copy()
		}
		c.parent = t
		t.children = append(t.children, c)
	}
	return t
}

// Token creates a terminal node holding text.
func Token(text string) *Tree {
	return &Tree{Text: text, token: true}
}

// IsToken reports whether t is a terminal.
func (t *Tree) IsToken() bool { return t.token }

// Parent returns the node t is attached to, or nil for a root.
func (t *Tree) Parent() *Tree { return t.parent }

// Root walks parent links up to the root of the tree containing t.
func (t *Tree) Root() *Tree {
	for t.parent != nil {
		t = t.parent
	}
	return t
}

// Len returns the number of children.
func (t *Tree) Len() int { return len(t.children) }

// Child returns the i-th child or nil if i is out of range.
func (t *Tree) Child(i int) *Tree {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// Children returns the children of t. The returned slice is a copy; the
// nodes it holds are not.
func (t *Tree) Children() []*Tree { return slices.Clone(t.children) }

// ChildLabels returns the labels of the direct children in order.
// Tokens contribute an empty label.
func (t *Tree) ChildLabels() []string {
	labels := make([]string, len(t.children))
	for i, c := range t.children {
		labels[i] = c.Label
	}
	return labels
}

// IndexOf returns the index of c among t's children, or -1.
func (t *Tree) IndexOf(c *Tree) int {
	for i, x := range t.children {
		if x == c {
			return i
		}
	}
	return -1
}

// Append attaches c as the last child of t.
func (t *Tree) Append(c *Tree) error {
	return t.Insert(len(t.children), c)
}

// Insert attaches c as the i-th child of t, shifting later children right.
// i may equal Len() to append.
func (t *Tree) Insert(i int, c *Tree) error {
	if t.token {
		return ErrTokenChildren
	}
	if c.parent != nil {
		return ErrAttached
	}
	if i < 0 || i > len(t.children) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(t.children), ErrIndexOutOfRange)
	}
	c.parent = t
	t.children = slices.Insert(t.children, i, c)
	return nil
}

// Remove detaches and returns the i-th child.
func (t *Tree) Remove(i int) (*Tree, error) {
	if i < 0 || i >= len(t.children) {
		return nil, fmt.Errorf("remove %d of %d: %w", i, len(t.children), ErrIndexOutOfRange)
	}
	c := t.children[i]
	t.children = slices.Delete(t.children, i, i+1)
	c.parent = nil
	return c, nil
}

// Replace swaps the i-th child for c and returns the detached old child.
// It is equivalent to Remove(i) followed by Insert(i, c).
func (t *Tree) Replace(i int, c *Tree) (*Tree, error) {
	if c.parent != nil {
		return nil, ErrAttached
	}
	old, err := t.Remove(i)
	if err != nil {
		return nil, err
	}
	if err := t.Insert(i, c); err != nil {
		return nil, err
	}
	return old, nil
}

// Height returns the height of t: 1 for a token or a childless constituent,
// 2 for a constituent whose children are all tokens (a preterminal), and one
// more than its tallest child otherwise.
func (t *Tree) Height() int {
	h := 0
	for _, c := range t.children {
		h = max(h, c.Height())
	}
	return h + 1
}

// Size returns the number of nodes in t, tokens included.
func (t *Tree) Size() int {
	n := 1
	for _, c := range t.children {
		n += c.Size()
	}
	return n
}

// Leaves returns the text of all tokens under t, left to right.
func (t *Tree) Leaves() []string {
	var leaves []string
	t.Walk(func(n *Tree, _ Position) bool {
		if n.token {
			leaves = append(leaves, n.Text)
		}
		return true
	})
	return leaves
}

// Copy returns a deep copy of t. The copy is detached: its root has no parent
// even if t has one.
func (t *Tree) Copy() *Tree {
	c := &Tree{Label: t.Label, Text: t.Text, token: t.token}
	if len(t.children) > 0 {
		c.children = make([]*Tree, len(t.children))
		for i, child := range t.children {
			cc := child.Copy()
			cc.parent = c
			c.children[i] = cc
		}
	}
	return c
}

// Equal reports whether t and o have the same shape, labels and tokens.
// Parent links are not compared.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.token != o.token || t.Label != o.Label || t.Text != o.Text || len(t.children) != len(o.children) {
		return false
	}
	for i := range t.children {
		if !t.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

// Walk visits t and its descendants in pre-order. fn receives each node and
// its position relative to t. Returning false skips the node's children.
// The position slice is reused between calls; clone it to keep it.
func (t *Tree) Walk(fn func(n *Tree, pos Position) bool) {
	t.walk(fn, make(Position, 0, 8))
}

func (t *Tree) walk(fn func(*Tree, Position) bool, pos Position) {
	if !fn(t, pos) {
		return
	}
	for i, c := range t.children {
		c.walk(fn, append(pos, i))
	}
}

// String returns t in single-line bracketed notation.
func (t *Tree) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *strings.Builder) {
	if t.token {
		b.WriteString(t.Text)
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Label)
	for _, c := range t.children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}
