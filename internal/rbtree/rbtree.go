// Package rbtree implements the ordered map shared by the case registry
// and the type registry.
//
// The tree is a classic red-black tree: self-balancing, O(log n) insert,
// O(n) in-order traversal. Ordering is supplied entirely by the caller's
// comparator, so the same structure serves composite case keys and plain
// type-name keys without modification.
//
// The tree is NOT safe for concurrent use. Both registries are populated
// during the initialization pass and are read-only for the remainder of
// the run, so no locking is required.
package rbtree

import "errors"

// ErrDuplicateKey is returned by Insert when the key already exists.
// The tree is unchanged when this error is returned.
var ErrDuplicateKey = errors.New("rbtree: duplicate key")

// CompareFunc orders two keys.
// Returns a negative value if a sorts before b, zero if the keys are
// equal, and a positive value if a sorts after b.
type CompareFunc func(a, b any) int

type node struct {
	key    any
	value  any
	left   *node
	right  *node
	parent *node
	red    bool
}

// Tree is a red-black ordered map from caller-defined keys to values.
type Tree struct {
	root *node
	cmp  CompareFunc
	size int
}

// New creates an empty tree ordered by cmp.
func New(cmp CompareFunc) *Tree {
	return &Tree{cmp: cmp}
}

// Len returns the number of entries in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds a key/value pair.
//
// Returns ErrDuplicateKey if an entry with an equal key already exists.
// The duplicate check happens before any link is modified, so a failed
// insert leaves the tree exactly as it was.
func (t *Tree) Insert(key, value any) error {
	var parent *node
	cur := t.root
	lastCmp := 0
	for cur != nil {
		parent = cur
		lastCmp = t.cmp(key, cur.key)
		switch {
		case lastCmp < 0:
			cur = cur.left
		case lastCmp > 0:
			cur = cur.right
		default:
			return ErrDuplicateKey
		}
	}

	n := &node{key: key, value: value, parent: parent, red: true}
	switch {
	case parent == nil:
		t.root = n
	case lastCmp < 0:
		parent.left = n
	default:
		parent.right = n
	}
	t.size++
	t.insertFixup(n)
	return nil
}

// Find returns the value stored under key.
// The second return is false if the key is absent.
func (t *Tree) Find(key any) (any, bool) {
	cur := t.root
	for cur != nil {
		c := t.cmp(key, cur.key)
		switch {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur.value, true
		}
	}
	return nil, false
}

// InOrder visits every entry in comparator order.
// Traversal stops early if fn returns false.
func (t *Tree) InOrder(fn func(key, value any) bool) {
	inOrder(t.root, fn)
}

func inOrder(n *node, fn func(key, value any) bool) bool {
	if n == nil {
		return true
	}
	if !inOrder(n.left, fn) {
		return false
	}
	if !fn(n.key, n.value) {
		return false
	}
	return inOrder(n.right, fn)
}

// insertFixup restores the red-black invariants after linking n as a red
// leaf: no red node has a red child, and every root-to-leaf path carries
// the same number of black nodes.
func (t *Tree) insertFixup(n *node) {
	for n.parent != nil && n.parent.red {
		grand := n.parent.parent
		if n.parent == grand.left {
			uncle := grand.right
			if uncle != nil && uncle.red {
				n.parent.red = false
				uncle.red = false
				grand.red = true
				n = grand
				continue
			}
			if n == n.parent.right {
				n = n.parent
				t.rotateLeft(n)
			}
			n.parent.red = false
			grand.red = true
			t.rotateRight(grand)
		} else {
			uncle := grand.left
			if uncle != nil && uncle.red {
				n.parent.red = false
				uncle.red = false
				grand.red = true
				n = grand
				continue
			}
			if n == n.parent.left {
				n = n.parent
				t.rotateRight(n)
			}
			n.parent.red = false
			grand.red = true
			t.rotateLeft(grand)
		}
	}
	t.root.red = false
}

func (t *Tree) rotateLeft(x *node) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree) rotateRight(x *node) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}
