package html

import (
	"strings"

	"github.com/xylonx/hql/dom"
	"github.com/xylonx/hql/tree"
)

// Ref is a reference to a document node flowing through the selector
// pipeline. The set of implementations is closed: ElementRef and TextRef are
// tree-resident, PhantomTextRef carries a synthesized value with no tree
// residency. Traversals yield only Element and Text payloads; all other
// payload kinds are invisible to the query layer.
type Ref interface {
	// String renders the reference: an opening-tag sketch for elements, the
	// raw content for text and phantom text.
	String() string

	// TraverseSubtree returns the pre-order walk of the reference's subtree,
	// the reference itself included. A phantom yields itself alone.
	TraverseSubtree() []Ref

	// TraverseChildren returns the reference's immediate children in forward
	// or reverse sibling order. A phantom yields nothing.
	TraverseChildren(reversed bool) []Ref

	ref() // seals the implementation set
}

// wrap converts a tree node into a reference, or nil for payload kinds the
// query layer does not see.
func wrap(t *tree.Tree[dom.Node], n *tree.Node[dom.Node]) Ref {
	switch n.Data.Kind() {
	case dom.KindElement:
		return ElementRef{tree: t, node: n}
	case dom.KindText:
		return TextRef{tree: t, node: n}
	default:
		return nil
	}
}

// ElementRef is a tree-resident reference. The document and fragment roots
// are also represented as ElementRef so that a query can start from them;
// their element predicates simply never match.
type ElementRef struct {
	tree *tree.Tree[dom.Node]
	node *tree.Node[dom.Node]
}

func (ElementRef) ref() {}

// Node returns the underlying tree node.
func (e ElementRef) Node() *tree.Node[dom.Node] { return e.node }

// TagName returns the element's qualified name, or "" for a non-element
// payload (the document root).
func (e ElementRef) TagName() string {
	el := e.node.Data.AsElement()
	if el == nil {
		return ""
	}
	return el.Name()
}

// Attr returns the value of the named attribute.
func (e ElementRef) Attr(name string) (string, bool) {
	el := e.node.Data.AsElement()
	if el == nil {
		return "", false
	}
	return el.Attr(name)
}

// HasClass reports whether the element carries the class token.
func (e ElementRef) HasClass(class string, caseSensitive bool) bool {
	el := e.node.Data.AsElement()
	return el != nil && el.HasClass(class, caseSensitive)
}

// HasID reports whether the element's id matches.
func (e ElementRef) HasID(id string, caseSensitive bool) bool {
	el := e.node.Data.AsElement()
	return el != nil && el.HasID(id, caseSensitive)
}

// Text concatenates the content of every descendant text node in document
// order.
func (e ElementRef) Text() string {
	var sb strings.Builder
	it := tree.NewPreOrderTraverse(e.tree, e.node)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if t := n.Data.AsText(); t != nil {
			sb.WriteString(t.Text())
		}
	}
	return sb.String()
}

func (e ElementRef) String() string { return e.node.Data.String() }

// TraverseSubtree walks the element's subtree in pre-order, keeping only
// element and text nodes.
func (e ElementRef) TraverseSubtree() []Ref {
	return subtreeRefs(e.tree, e.node)
}

// TraverseChildren walks the element's immediate children, keeping only
// element and text nodes.
func (e ElementRef) TraverseChildren(reversed bool) []Ref {
	return childRefs(e.tree, e.node, reversed)
}

// TextRef is a tree-resident reference to a text node.
type TextRef struct {
	tree *tree.Tree[dom.Node]
	node *tree.Node[dom.Node]
}

func (TextRef) ref() {}

// Node returns the underlying tree node.
func (t TextRef) Node() *tree.Node[dom.Node] { return t.node }

// Text returns the text content.
func (t TextRef) Text() string { return t.node.Data.AsText().Text() }

func (t TextRef) String() string { return t.node.Data.String() }

// TraverseSubtree yields the text node itself; text nodes have no children.
func (t TextRef) TraverseSubtree() []Ref {
	return subtreeRefs(t.tree, t.node)
}

// TraverseChildren yields nothing; text nodes have no children.
func (t TextRef) TraverseChildren(reversed bool) []Ref {
	return childRefs(t.tree, t.node, reversed)
}

// PhantomTextRef carries text synthesized mid-pipeline. It has no tree
// residency and no structural links, and answers no to every structural
// predicate.
type PhantomTextRef struct {
	node *tree.Node[dom.Node]
}

// NewPhantomText wraps text in a phantom reference.
func NewPhantomText(text string) PhantomTextRef {
	return PhantomTextRef{node: tree.Phantom(dom.NewText(text))}
}

func (PhantomTextRef) ref() {}

// Text returns the synthesized content.
func (p PhantomTextRef) Text() string { return p.node.Data.AsText().Text() }

func (p PhantomTextRef) String() string { return p.node.Data.String() }

// TraverseSubtree yields the phantom alone; there is nothing to descend
// into.
func (p PhantomTextRef) TraverseSubtree() []Ref { return []Ref{p} }

// TraverseChildren yields nothing.
func (p PhantomTextRef) TraverseChildren(bool) []Ref { return nil }

func subtreeRefs(t *tree.Tree[dom.Node], root *tree.Node[dom.Node]) []Ref {
	var refs []Ref
	it := tree.NewPreOrderTraverse(t, root)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if r := wrap(t, n); r != nil {
			refs = append(refs, r)
		}
	}
	return refs
}

func childRefs(t *tree.Tree[dom.Node], parent *tree.Node[dom.Node], reversed bool) []Ref {
	var refs []Ref
	it := tree.NewChildrenTraverse(t, parent, reversed)
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if r := wrap(t, n); r != nil {
			refs = append(refs, r)
		}
	}
	return refs
}
