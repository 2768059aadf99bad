package selector

import (
	"strings"

	"github.com/xylonx/hql/html"
)

// AttrSelector keeps element references that carry the named attribute and,
// when a value is required, whose value matches it case-insensitively.
// Non-element references never match.
type AttrSelector struct {
	name     string
	value    string
	hasValue bool
}

// NewAttrSelector creates a presence filter: the attribute must exist, any
// value.
func NewAttrSelector(name string) *AttrSelector {
	return &AttrSelector{name: name}
}

// NewAttrValueSelector creates a value filter: the attribute must exist and
// its value must equal value case-insensitively.
func NewAttrValueSelector(name, value string) *AttrSelector {
	return &AttrSelector{name: name, value: value, hasValue: true}
}

func (s *AttrSelector) Select(node html.Ref) []html.Ref {
	e, ok := node.(html.ElementRef)
	if !ok {
		return nil
	}
	v, ok := e.Attr(s.name)
	if !ok {
		return nil
	}
	if s.hasValue && !strings.EqualFold(v, s.value) {
		return nil
	}
	return []html.Ref{node}
}

// IDSelector keeps element references whose id matches, honoring the
// case-sensitivity flag.
type IDSelector struct {
	id            string
	caseSensitive bool
}

// NewIDSelector creates an id filter.
func NewIDSelector(id string, caseSensitive bool) *IDSelector {
	return &IDSelector{id: id, caseSensitive: caseSensitive}
}

func (s *IDSelector) Select(node html.Ref) []html.Ref {
	if e, ok := node.(html.ElementRef); ok && e.HasID(s.id, s.caseSensitive) {
		return []html.Ref{node}
	}
	return nil
}

// ClassSelector keeps element references carrying the class token, honoring
// the case-sensitivity flag.
type ClassSelector struct {
	class         string
	caseSensitive bool
}

// NewClassSelector creates a class filter.
func NewClassSelector(class string, caseSensitive bool) *ClassSelector {
	return &ClassSelector{class: class, caseSensitive: caseSensitive}
}

func (s *ClassSelector) Select(node html.Ref) []html.Ref {
	if e, ok := node.(html.ElementRef); ok && e.HasClass(s.class, s.caseSensitive) {
		return []html.Ref{node}
	}
	return nil
}

// ExtractAttrSelector replaces an element reference with a phantom text
// reference holding the named attribute's value. Elements without the
// attribute, and non-element references, are dropped.
type ExtractAttrSelector struct {
	name string
}

// NewExtractAttrSelector creates an attribute-value extractor.
func NewExtractAttrSelector(name string) *ExtractAttrSelector {
	return &ExtractAttrSelector{name: name}
}

func (s *ExtractAttrSelector) Select(node html.Ref) []html.Ref {
	e, ok := node.(html.ElementRef)
	if !ok {
		return nil
	}
	v, ok := e.Attr(s.name)
	if !ok {
		return nil
	}
	return []html.Ref{html.NewPhantomText(v)}
}
