package rewrite

import "github.com/Sumatoshi-tech/codemod/pkg/tree"

// Cursor is the path from the root of the tree to the node being visited.
// Values are the nodes as they were before the current pass rewrote them.
// Cursors are immutable apart from their message side-table, which is scoped
// to the visit of one node.
type Cursor struct {
	parent   *Cursor
	value    tree.Node
	messages map[string]any
}

// NewCursor returns a root cursor positioned on root.
func NewCursor(root tree.Node) *Cursor {
	return &Cursor{value: root}
}

// Push returns a child cursor positioned on n.
func (c *Cursor) Push(n tree.Node) *Cursor {
	return &Cursor{parent: c, value: n}
}

// Value returns the node the cursor is positioned on.
func (c *Cursor) Value() tree.Node {
	if c == nil {
		return nil
	}

	return c.value
}

// Parent returns the enclosing cursor, or nil at the root.
func (c *Cursor) Parent() *Cursor {
	if c == nil {
		return nil
	}

	return c.parent
}

// ParentValue returns the parent node, or nil at the root.
func (c *Cursor) ParentValue() tree.Node {
	return c.Parent().Value()
}

// Path returns the nodes from the root down to the cursor's value.
func (c *Cursor) Path() []tree.Node {
	var path []tree.Node

	for cur := c; cur != nil; cur = cur.parent {
		path = append(path, cur.value)
	}

	for left, right := 0, len(path)-1; left < right; left, right = left+1, right-1 {
		path[left], path[right] = path[right], path[left]
	}

	return path
}

// FirstEnclosing returns the nearest node, starting with the cursor's own
// value, that satisfies predicate.
func (c *Cursor) FirstEnclosing(predicate func(tree.Node) bool) tree.Node {
	found := c.DropParentUntil(predicate)
	if found == nil {
		return nil
	}

	return found.value
}

// DropParentUntil returns the nearest cursor, starting with c, whose value
// satisfies predicate, or nil.
func (c *Cursor) DropParentUntil(predicate func(tree.Node) bool) *Cursor {
	for cur := c; cur != nil; cur = cur.parent {
		if predicate(cur.value) {
			return cur
		}
	}

	return nil
}

// PutMessage stores a value on this cursor.
func (c *Cursor) PutMessage(key string, value any) {
	if c.messages == nil {
		c.messages = make(map[string]any)
	}

	c.messages[key] = value
}

// Message returns the value stored under key on this cursor.
func (c *Cursor) Message(key string) (any, bool) {
	value, ok := c.messages[key]

	return value, ok
}

// NearestMessage returns the value stored under key on the nearest cursor,
// starting with c.
func (c *Cursor) NearestMessage(key string) (any, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if value, ok := cur.messages[key]; ok {
			return value, true
		}
	}

	return nil, false
}

// Enclosing returns the nearest node of type T on the cursor path, starting
// with the cursor's own value.
func Enclosing[T tree.Node](c *Cursor) (T, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if typed, ok := cur.value.(T); ok {
			return typed, true
		}
	}

	var zero T

	return zero, false
}
