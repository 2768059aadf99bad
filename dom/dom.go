// Package dom defines the payload kinds a document tree carries. The kind
// set is closed: Document, Fragment, Doctype, Element, Text, Comment,
// ProcessingInstruction.
package dom

import (
	"fmt"
	"strings"
)

// Kind identifies a payload variant.
type Kind int

const (
	KindDocument Kind = iota
	KindFragment
	KindDoctype
	KindElement
	KindText
	KindComment
	KindProcessingInstruction
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindFragment:
		return "Fragment"
	case KindDoctype:
		return "Doctype"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindProcessingInstruction:
		return "ProcessingInstruction"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one payload value. Exactly the variant matching its kind is
// populated; the accessor for every other variant returns nil.
type Node struct {
	kind Kind

	doctype *Doctype
	element *Element
	text    *Text
	comment *Comment
	pi      *ProcessingInstruction
}

// NewDocument creates a document payload.
func NewDocument() Node {
	return Node{kind: KindDocument}
}

// NewFragment creates a fragment payload.
func NewFragment() Node {
	return Node{kind: KindFragment}
}

// NewDoctype creates a doctype payload.
func NewDoctype(name, publicID, systemID string) Node {
	return Node{kind: KindDoctype, doctype: &Doctype{name: name, publicID: publicID, systemID: systemID}}
}

// NewElement creates an element payload. attrs may be nil.
func NewElement(name string, attrs map[string]string) Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return Node{kind: KindElement, element: &Element{name: name, attrs: attrs}}
}

// NewText creates a text payload.
func NewText(text string) Node {
	return Node{kind: KindText, text: &Text{text: text}}
}

// NewComment creates a comment payload.
func NewComment(text string) Node {
	return Node{kind: KindComment, comment: &Comment{text: text}}
}

// NewProcessingInstruction creates a processing-instruction payload.
func NewProcessingInstruction(target, data string) Node {
	return Node{kind: KindProcessingInstruction, pi: &ProcessingInstruction{target: target, data: data}}
}

// Kind returns the payload variant.
func (n Node) Kind() Kind { return n.kind }

// IsDocument reports whether the payload is a document.
func (n Node) IsDocument() bool { return n.kind == KindDocument }

// IsFragment reports whether the payload is a fragment.
func (n Node) IsFragment() bool { return n.kind == KindFragment }

// AsDoctype returns the doctype variant, or nil for any other kind.
func (n Node) AsDoctype() *Doctype { return n.doctype }

// AsElement returns the element variant, or nil for any other kind.
func (n Node) AsElement() *Element { return n.element }

// AsText returns the text variant, or nil for any other kind.
func (n Node) AsText() *Text { return n.text }

// String renders the payload: the kind name for documents and fragments, an
// opening-tag sketch for elements, the raw content for text.
func (n Node) String() string {
	switch n.kind {
	case KindDoctype:
		return n.doctype.String()
	case KindElement:
		return n.element.String()
	case KindText:
		return n.text.Text()
	case KindComment:
		return fmt.Sprintf("<!-- %s -->", n.comment.text)
	case KindProcessingInstruction:
		return fmt.Sprintf("<? %s %s ?>", n.pi.target, n.pi.data)
	default:
		return n.kind.String()
	}
}

// Doctype is a document type declaration.
type Doctype struct {
	name     string
	publicID string
	systemID string
}

// Name returns the doctype name.
func (d *Doctype) Name() string { return d.name }

// PublicID returns the public identifier.
func (d *Doctype) PublicID() string { return d.publicID }

// SystemID returns the system identifier.
func (d *Doctype) SystemID() string { return d.systemID }

func (d *Doctype) String() string {
	return fmt.Sprintf("<!DOCTYPE %s PUBLIC %s %s>", d.name, d.publicID, d.systemID)
}

// Element is a named element with attributes. The id value and the class
// token set are computed from the attribute map on first use and cached;
// attributes are only mutated during construction, before any lookup runs.
type Element struct {
	name  string
	attrs map[string]string

	idComputed bool
	id         string
	hasID      bool

	classes map[string]struct{}
}

// Name returns the element's name.
func (e *Element) Name() string { return e.name }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Attrs returns the attribute map.
func (e *Element) Attrs() map[string]string { return e.attrs }

// ID returns the element's id. The attribute-name lookup is
// case-insensitive.
func (e *Element) ID() (string, bool) {
	if !e.idComputed {
		e.idComputed = true
		for k, v := range e.attrs {
			if strings.EqualFold(k, "id") {
				e.id, e.hasID = v, true
				break
			}
		}
	}
	return e.id, e.hasID
}

// HasID reports whether the element's id equals id, honoring the
// case-sensitivity flag. An element without an id attribute never matches.
func (e *Element) HasID(id string, caseSensitive bool) bool {
	v, ok := e.ID()
	if !ok {
		return false
	}
	if caseSensitive {
		return v == id
	}
	return strings.EqualFold(v, id)
}

// Classes returns the element's class tokens, split on whitespace.
func (e *Element) Classes() map[string]struct{} {
	if e.classes == nil {
		e.classes = make(map[string]struct{})
		for _, c := range strings.Fields(e.attrs["class"]) {
			e.classes[c] = struct{}{}
		}
	}
	return e.classes
}

// HasClass reports whether the element carries the class token, honoring the
// case-sensitivity flag.
func (e *Element) HasClass(class string, caseSensitive bool) bool {
	classes := e.Classes()
	if caseSensitive {
		_, ok := classes[class]
		return ok
	}
	for c := range classes {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

// AddAttrsIfMissing adds every attribute whose key is not already present.
// Existing attributes keep their value.
func (e *Element) AddAttrsIfMissing(attrs map[string]string) {
	for k, v := range attrs {
		if _, ok := e.attrs[k]; !ok {
			e.attrs[k] = v
		}
	}
}

func (e *Element) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(e.name)
	sb.WriteByte(' ')
	for k, v := range e.attrs {
		fmt.Fprintf(&sb, "%s=%s ", k, v)
	}
	sb.WriteByte('>')
	return sb.String()
}

// Text is a run of character data.
type Text struct {
	text string
}

// Text returns the content.
func (t *Text) Text() string { return t.text }

// Append appends more content, used when adjacent text chunks coalesce.
func (t *Text) Append(s string) {
	t.text += s
}

// Comment is a comment node.
type Comment struct {
	text string
}

// ProcessingInstruction is a processing-instruction node.
type ProcessingInstruction struct {
	target string
	data   string
}
