package html

import (
	"strings"

	"go.uber.org/zap"

	"github.com/xylonx/hql/dom"
	"github.com/xylonx/hql/tree"
)

// NodeOrText is a construction-event argument carrying either an existing
// node handle or a raw text chunk.
type NodeOrText struct {
	node   tree.NodeID
	text   string
	isNode bool
}

// AppendNode wraps a node handle for a construction event.
func AppendNode(id tree.NodeID) NodeOrText {
	return NodeOrText{node: id, isNode: true}
}

// AppendText wraps a text chunk for a construction event.
func AppendText(text string) NodeOrText {
	return NodeOrText{text: text}
}

// CreateElement allocates an unlinked element node and returns its handle.
// Template elements receive an implicit Fragment child holding their
// contents, addressed via TemplateContents.
func (d *Document) CreateElement(name string, attrs map[string]string) tree.NodeID {
	n := d.nodes.Orphan(dom.NewElement(name, attrs))
	if strings.EqualFold(name, "template") {
		d.nodes.AppendChild(n.ID(), dom.NewFragment())
	}
	return n.ID()
}

// CreateComment allocates an unlinked comment node and returns its handle.
func (d *Document) CreateComment(text string) tree.NodeID {
	return d.nodes.Orphan(dom.NewComment(text)).ID()
}

// CreatePI allocates an unlinked processing-instruction node and returns its
// handle.
func (d *Document) CreatePI(target, data string) tree.NodeID {
	return d.nodes.Orphan(dom.NewProcessingInstruction(target, data)).ID()
}

// Append links child as the last child of parent. A text chunk is coalesced
// into parent's trailing text node when there is one, otherwise it becomes a
// new text node.
func (d *Document) Append(parent tree.NodeID, child NodeOrText) {
	if child.isNode {
		d.nodes.AppendChildID(parent, child.node)
		return
	}

	if _, last, ok := d.nodes.ChildrenSpan(parent); ok {
		if t := d.nodes.Node(last).Data.AsText(); t != nil {
			t.Append(child.text)
			return
		}
	}
	d.nodes.AppendChild(parent, dom.NewText(child.text))
}

// AppendBeforeSibling splices child immediately before sibling. The event is
// ignored when sibling has no parent. A text chunk merges into the preceding
// text sibling when there is one.
func (d *Document) AppendBeforeSibling(sibling tree.NodeID, child NodeOrText) {
	if child.isNode {
		d.nodes.Detach(child.node)
	}

	if d.nodes.Parent(sibling) == nil {
		return
	}

	if child.isNode {
		d.nodes.InsertIDBefore(sibling, child.node)
		return
	}

	if prev := d.nodes.PreviousSibling(sibling); prev != nil {
		if t := prev.Data.AsText(); t != nil {
			t.Append(child.text)
			return
		}
	}
	d.nodes.InsertBefore(sibling, dom.NewText(child.text))
}

// AppendBasedOnParentNode inserts child before element when element already
// has a parent; otherwise it falls back to appending under prevElement. The
// fallback reproduces the external construction protocol exactly and is not
// generalized beyond it.
func (d *Document) AppendBasedOnParentNode(element, prevElement tree.NodeID, child NodeOrText) {
	if d.nodes.Parent(element) != nil {
		d.AppendBeforeSibling(element, child)
		return
	}
	d.Append(prevElement, child)
}

// AppendDoctype appends a doctype node to the document root.
func (d *Document) AppendDoctype(name, publicID, systemID string) {
	d.nodes.AppendChild(d.nodes.Root().ID(), dom.NewDoctype(name, publicID, systemID))
}

// AddAttrsIfMissing merges attrs into the target element without overwriting
// attribute names that already exist. Non-element targets are ignored.
func (d *Document) AddAttrsIfMissing(target tree.NodeID, attrs map[string]string) {
	n := d.nodes.Node(target)
	if n == nil {
		return
	}
	if e := n.Data.AsElement(); e != nil {
		e.AddAttrsIfMissing(attrs)
	}
}

// RemoveFromParent detaches target from its parent. A no-op when target is
// already unlinked.
func (d *Document) RemoveFromParent(target tree.NodeID) {
	d.nodes.Detach(target)
}

// ReparentChildren moves all children of node to become the trailing
// children of newParent.
func (d *Document) ReparentChildren(node, newParent tree.NodeID) {
	d.nodes.ReparentChildrenAppend(node, newParent)
}

// SetQuirksMode records the quirks mode reported by the parser.
func (d *Document) SetQuirksMode(mode QuirksMode) {
	d.quirks = mode
}

// ReportParseError accumulates a recoverable malformed-markup warning.
// Construction is never aborted.
func (d *Document) ReportParseError(msg string) {
	d.logger.Error("parse error", zap.String("msg", msg))
	d.errors = append(d.errors, msg)
}

// SameNode reports whether two handles address the same node.
func (d *Document) SameNode(a, b tree.NodeID) bool { return a == b }

// TemplateContents returns the handle of target's implicit content fragment,
// created by CreateElement for template elements.
func (d *Document) TemplateContents(target tree.NodeID) (tree.NodeID, bool) {
	first, _, ok := d.nodes.ChildrenSpan(target)
	return first, ok
}
