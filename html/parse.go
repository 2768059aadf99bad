package html

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/xylonx/hql/tree"
)

// ParseDocument parses a full HTML document from r. The tokenizer and the
// tree-construction algorithm come from golang.org/x/net/html; its output is
// replayed through the construction API so the resulting tree lives in this
// package's arena.
func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := NewDocument()
	d.replayChildren(d.nodes.Root().ID(), root)
	return d, nil
}

// ParseDocumentString parses a full HTML document from a string.
func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

// ParseFragment parses an HTML fragment in a body context and returns a
// document rooted at a Fragment node holding the parsed content.
func ParseFragment(r io.Reader) (*Document, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, err
	}

	d := NewFragment()
	for _, n := range nodes {
		d.replay(d.nodes.Root().ID(), n)
	}
	return d, nil
}

// ParseFragmentString parses an HTML fragment from a string.
func ParseFragmentString(s string) (*Document, error) {
	return ParseFragment(strings.NewReader(s))
}

// replayChildren replays the children of an external parser node under
// parent.
func (d *Document) replayChildren(parent tree.NodeID, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.replay(parent, c)
	}
}

// replay emits the construction events for one external parser node and its
// subtree.
func (d *Document) replay(parent tree.NodeID, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		d.Append(parent, AppendText(n.Data))
	case html.ElementNode:
		id := d.CreateElement(n.Data, attrMap(n.Attr))
		d.Append(parent, AppendNode(id))

		target := id
		if strings.EqualFold(n.Data, "template") {
			if contents, ok := d.TemplateContents(id); ok {
				target = contents
			}
		}
		d.replayChildren(target, n)
	case html.CommentNode:
		d.Append(parent, AppendNode(d.CreateComment(n.Data)))
	case html.DoctypeNode:
		var publicID, systemID string
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				publicID = a.Val
			case "system":
				systemID = a.Val
			}
		}
		d.AppendDoctype(n.Data, publicID, systemID)
	case html.ErrorNode:
		d.ReportParseError(n.Data)
	}
}

func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		// Namespace-qualified name resolution is out of scope; the local
		// attribute key is the map key.
		if _, ok := m[a.Key]; !ok {
			m[a.Key] = a.Val
		}
	}
	return m
}
