// Package tree implements an arena-backed mutable tree. Nodes are stored in
// an append-only slice and addressed by stable integer handles, so structural
// edits (append, insert-before, detach, reparent) are O(1) pointer rewrites
// with no per-edit list splicing or removal. Storage is never compacted: a
// detached node keeps its slot and stays addressable by handle.
package tree

// NodeID is an opaque handle identifying a node's slot in the arena. It is
// stable for the node's lifetime and doubles as the index into storage.
type NodeID int

// PhantomID marks a node that is not resident in any arena. Phantom nodes
// carry a payload but no structural links and are never yielded by traversal.
const PhantomID NodeID = -1

// none marks an absent link (no parent, no sibling, no children).
const none NodeID = -1

// Node is a single tree node: a payload plus the structural links owned by
// the arena. Links are only mutated through Tree operations so that the
// doubly linked sibling chain and the parent's children span stay consistent.
type Node[T any] struct {
	id   NodeID
	Data T

	parent      NodeID
	firstChild  NodeID
	lastChild   NodeID
	prevSibling NodeID
	nextSibling NodeID
}

func newOrphan[T any](id NodeID, data T) *Node[T] {
	return &Node[T]{
		id:          id,
		Data:        data,
		parent:      none,
		firstChild:  none,
		lastChild:   none,
		prevSibling: none,
		nextSibling: none,
	}
}

// Phantom wraps data in a node that has no arena residency and no links.
func Phantom[T any](data T) *Node[T] {
	return newOrphan(PhantomID, data)
}

// ID returns the node's handle. PhantomID for phantom nodes.
func (n *Node[T]) ID() NodeID { return n.id }

// IsPhantom reports whether the node lives outside any arena.
func (n *Node[T]) IsPhantom() bool { return n.id == PhantomID }

// Parent returns the parent handle, if the node is linked under one.
func (n *Node[T]) Parent() (NodeID, bool) { return n.parent, n.parent != none }

// ChildrenSpan returns the handles of the first and last child. ok is false
// when the node has no children.
func (n *Node[T]) ChildrenSpan() (first, last NodeID, ok bool) {
	return n.firstChild, n.lastChild, n.firstChild != none
}

// PrevSibling returns the preceding sibling handle, if any.
func (n *Node[T]) PrevSibling() (NodeID, bool) { return n.prevSibling, n.prevSibling != none }

// NextSibling returns the following sibling handle, if any.
func (n *Node[T]) NextSibling() (NodeID, bool) { return n.nextSibling, n.nextSibling != none }

// Tree is the arena. Handle 0 is the root, created at construction and never
// removed. All other nodes start as orphans and are linked by AppendChildID,
// InsertIDBefore, or ReparentChildrenAppend.
//
// The tree has a single-writer discipline: mutations must not overlap any
// traversal. This is a usage contract, not a runtime guarantee.
type Tree[T any] struct {
	nodes []*Node[T]
}

// New allocates a tree whose root (handle 0) holds root.
func New[T any](root T) *Tree[T] {
	return &Tree[T]{nodes: []*Node[T]{newOrphan(0, root)}}
}

// Len returns the number of allocated nodes, detached ones included.
func (t *Tree[T]) Len() int { return len(t.nodes) }

// Nodes returns the backing slice in allocation order.
func (t *Tree[T]) Nodes() []*Node[T] { return t.nodes }

// Orphan allocates a new unlinked node holding data and returns it.
func (t *Tree[T]) Orphan(data T) *Node[T] {
	n := newOrphan(NodeID(len(t.nodes)), data)
	t.nodes = append(t.nodes, n)
	return n
}

// Node returns the node for id, or nil if id is out of range or phantom.
func (t *Tree[T]) Node(id NodeID) *Node[T] {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Root returns the root node (handle 0).
func (t *Tree[T]) Root() *Node[T] { return t.nodes[0] }

// Parent returns the parent node of id, or nil if id is invalid or unlinked.
func (t *Tree[T]) Parent(id NodeID) *Node[T] {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Node(n.parent)
}

// PreviousSibling returns the preceding sibling node of id, if any.
func (t *Tree[T]) PreviousSibling(id NodeID) *Node[T] {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.Node(n.prevSibling)
}

// ChildrenSpan returns the first and last child handles of parent.
func (t *Tree[T]) ChildrenSpan(parent NodeID) (first, last NodeID, ok bool) {
	n := t.Node(parent)
	if n == nil {
		return none, none, false
	}
	return n.ChildrenSpan()
}

// AppendChildID links child as the new last child of target, detaching it
// from any previous position first. Returns the child node, or nil if either
// handle is invalid.
func (t *Tree[T]) AppendChildID(target, child NodeID) *Node[T] {
	if t.Node(target) == nil || t.Node(child) == nil {
		return nil
	}

	t.Detach(child)

	childNode := t.Node(child)
	parent := t.Node(target)
	childNode.parent = target

	if parent.firstChild == none {
		childNode.prevSibling = none
		childNode.nextSibling = none
		parent.firstChild = child
		parent.lastChild = child
	} else {
		last := parent.lastChild
		childNode.prevSibling = last
		childNode.nextSibling = none
		t.Node(last).nextSibling = child
		parent.lastChild = child
	}

	return childNode
}

// AppendChild allocates a node for data and appends it as the last child of
// target. Returns the new node, or nil if target is invalid.
func (t *Tree[T]) AppendChild(target NodeID, data T) *Node[T] {
	child := t.Orphan(data).id
	return t.AppendChildID(target, child)
}

// InsertIDBefore splices newSib immediately before node as a previous
// sibling. node must already be linked under a parent. newSib is detached
// from any previous position first. Returns the new sibling node, or nil if
// either handle is invalid or node has no parent.
func (t *Tree[T]) InsertIDBefore(node, newSib NodeID) *Node[T] {
	parent := t.Parent(node)
	if parent == nil || t.Node(newSib) == nil {
		return nil
	}

	t.Detach(newSib)

	cur := t.Node(node)
	oldSib := cur.prevSibling

	sib := t.Node(newSib)
	sib.parent = parent.id
	sib.prevSibling = oldSib
	sib.nextSibling = node
	cur.prevSibling = newSib

	if oldSib != none {
		t.Node(oldSib).nextSibling = newSib
	} else {
		// node was the first child
		parent.firstChild = newSib
	}

	return sib
}

// InsertBefore allocates a node for data and splices it immediately before
// node. Returns the new sibling node, or nil if node is invalid or unlinked.
func (t *Tree[T]) InsertBefore(node NodeID, data T) *Node[T] {
	newSib := t.Orphan(data).id
	return t.InsertIDBefore(node, newSib)
}

// Detach unlinks id from its parent, closing the sibling chain around it and
// repairing the parent's children span. Detaching an already unlinked node is
// a no-op. Returns the node, or nil if id is invalid.
func (t *Tree[T]) Detach(id NodeID) *Node[T] {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	if n.parent == none {
		return n
	}

	parent := t.Node(n.parent)
	prev := n.prevSibling
	next := n.nextSibling

	n.parent = none
	n.prevSibling = none
	n.nextSibling = none

	if prev != none {
		t.Node(prev).nextSibling = next
	}
	if next != none {
		t.Node(next).prevSibling = prev
	}

	switch {
	case parent.firstChild == id && parent.lastChild == id:
		parent.firstChild = none
		parent.lastChild = none
	case parent.firstChild == id:
		parent.firstChild = next
	case parent.lastChild == id:
		parent.lastChild = prev
	}

	return n
}

// ReparentChildrenAppend moves the entire child list of node to become the
// trailing children of newParent, leaving node childless. Reparenting an
// empty child list is a no-op. Returns the new parent node, or nil if either
// handle is invalid.
func (t *Tree[T]) ReparentChildrenAppend(node, newParent NodeID) *Node[T] {
	src := t.Node(node)
	dst := t.Node(newParent)
	if src == nil || dst == nil {
		return nil
	}

	first, last, ok := src.ChildrenSpan()
	if !ok {
		return dst
	}

	for child := first; child != none; {
		c := t.Node(child)
		c.parent = newParent
		child = c.nextSibling
	}

	if dst.firstChild == none {
		dst.firstChild = first
		dst.lastChild = last
	} else {
		oldLast := dst.lastChild
		t.Node(oldLast).nextSibling = first
		t.Node(first).prevSibling = oldLast
		dst.lastChild = last
	}

	src.firstChild = none
	src.lastChild = none

	return dst
}
