package tree

// PreOrderTraverse walks a subtree depth-first in pre-order, starting at and
// including the traversal root. The walk is finite and restartable: build a
// new iterator to walk again. It must not be used concurrently with a
// mutation of the tree.
type PreOrderTraverse[T any] struct {
	tree *Tree[T]
	root *Node[T]
	cur  *Node[T]
}

// NewPreOrderTraverse creates a pre-order iterator rooted at root.
func NewPreOrderTraverse[T any](t *Tree[T], root *Node[T]) *PreOrderTraverse[T] {
	return &PreOrderTraverse[T]{tree: t, root: root, cur: root}
}

// Next returns the next node in pre-order, or false when the walk is done.
func (it *PreOrderTraverse[T]) Next() (*Node[T], bool) {
	cur := it.cur
	if cur == nil {
		return nil, false
	}

	if first, _, ok := cur.ChildrenSpan(); ok {
		it.cur = it.tree.Node(first)
		return cur, true
	}

	// No children: take the next sibling, ascending through parents until
	// one has a sibling. The ascent stops at the traversal root so the walk
	// never escapes the subtree.
	for n := cur; ; {
		if n.id == it.root.id {
			it.cur = nil
			break
		}
		if sib, ok := n.NextSibling(); ok {
			it.cur = it.tree.Node(sib)
			break
		}
		parent, ok := n.Parent()
		if !ok {
			it.cur = nil
			break
		}
		n = it.tree.Node(parent)
	}

	return cur, true
}

// ChildrenTraverse walks the immediate children of a node, forward or in
// reverse sibling order. Restartable and finite, with the same
// no-concurrent-mutation rule as PreOrderTraverse.
type ChildrenTraverse[T any] struct {
	tree     *Tree[T]
	cur      *Node[T]
	reversed bool
}

// NewChildrenTraverse creates a children iterator over parent's child list.
func NewChildrenTraverse[T any](t *Tree[T], parent *Node[T], reversed bool) *ChildrenTraverse[T] {
	it := &ChildrenTraverse[T]{tree: t, reversed: reversed}
	if first, last, ok := parent.ChildrenSpan(); ok {
		if reversed {
			it.cur = t.Node(last)
		} else {
			it.cur = t.Node(first)
		}
	}
	return it
}

// Next returns the next child, or false when the child list is exhausted.
func (it *ChildrenTraverse[T]) Next() (*Node[T], bool) {
	cur := it.cur
	if cur == nil {
		return nil, false
	}

	if it.reversed {
		it.cur = it.tree.Node(cur.prevSibling)
	} else {
		it.cur = it.tree.Node(cur.nextSibling)
	}

	return cur, true
}
