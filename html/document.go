// Package html builds a queryable document tree from HTML source. Parsing
// itself is delegated to golang.org/x/net/html; this package consumes the
// parser's structural events through the construction API in sink.go, stores
// the result in an arena tree of dom payloads, and exposes the node-reference
// layer (ref.go) that the selector pipeline operates on.
package html

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xylonx/hql/dom"
	"github.com/xylonx/hql/tree"
)

// QuirksMode is the rendering-compatibility mode reported by the parser.
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	LimitedQuirks
	Quirks
)

// Document is a parsed document: an arena tree of dom payloads rooted at a
// Document or Fragment node, plus the quirks mode and the accumulated,
// non-fatal parse warnings.
//
// A Document is built single-threaded by the construction API and is
// read-only afterwards; no mutation may overlap a traversal or query.
type Document struct {
	nodes  *tree.Tree[dom.Node]
	quirks QuirksMode
	errors []string

	logger *zap.Logger
}

// NewDocument creates an empty document whose root is a Document payload.
func NewDocument() *Document {
	return &Document{
		nodes:  tree.New(dom.NewDocument()),
		quirks: NoQuirks,
		logger: zap.NewNop(),
	}
}

// NewFragment creates an empty document whose root is a Fragment payload.
func NewFragment() *Document {
	return &Document{
		nodes:  tree.New(dom.NewFragment()),
		quirks: NoQuirks,
		logger: zap.NewNop(),
	}
}

// SetLogger replaces the document's logger. The default is a no-op logger.
func (d *Document) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d.logger = logger
}

// Tree returns the underlying arena tree.
func (d *Document) Tree() *tree.Tree[dom.Node] { return d.nodes }

// Root returns a reference to the document root, the starting working set of
// every query.
func (d *Document) Root() Ref {
	return ElementRef{tree: d.nodes, node: d.nodes.Root()}
}

// QuirksMode returns the quirks mode reported during parsing.
func (d *Document) QuirksMode() QuirksMode { return d.quirks }

// Errors returns the parse warnings accumulated during construction.
func (d *Document) Errors() []string { return d.errors }

// TraverseAll returns every payload in the tree in pre-order.
func (d *Document) TraverseAll() []dom.Node {
	var nodes []dom.Node
	it := tree.NewPreOrderTraverse(d.nodes, d.nodes.Root())
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		nodes = append(nodes, n.Data)
	}
	return nodes
}

// String renders every allocated payload in handle order.
func (d *Document) String() string {
	var sb strings.Builder
	for _, n := range d.nodes.Nodes() {
		sb.WriteString(n.Data.String())
	}
	return sb.String()
}
