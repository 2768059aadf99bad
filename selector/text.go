package selector

import (
	"strings"

	"github.com/xylonx/hql/html"
)

// TextSelector replaces an element reference with one phantom text reference
// holding the concatenation of all descendant text, in document order.
// Non-element references pass through unchanged.
type TextSelector struct{}

// NewTextSelector creates a text extractor.
func NewTextSelector() *TextSelector { return &TextSelector{} }

func (s *TextSelector) Select(node html.Ref) []html.Ref {
	if e, ok := node.(html.ElementRef); ok {
		return []html.Ref{html.NewPhantomText(e.Text())}
	}
	return []html.Ref{node}
}

// refText returns the text content of a text or phantom-text reference.
func refText(node html.Ref) (string, bool) {
	switch v := node.(type) {
	case html.TextRef:
		return v.Text(), true
	case html.PhantomTextRef:
		return v.Text(), true
	default:
		return "", false
	}
}

// TrimSelector strips leading and trailing whitespace from text and
// phantom-text references, producing a new phantom. Element references pass
// through unchanged.
type TrimSelector struct{}

// NewTrimSelector creates a whitespace trimmer.
func NewTrimSelector() *TrimSelector { return &TrimSelector{} }

func (s *TrimSelector) Select(node html.Ref) []html.Ref {
	if text, ok := refText(node); ok {
		return []html.Ref{html.NewPhantomText(strings.TrimSpace(text))}
	}
	return []html.Ref{node}
}

// TrimPrefixSelector strips a literal prefix from text and phantom-text
// references. Element references pass through unchanged.
type TrimPrefixSelector struct {
	prefix string
}

// NewTrimPrefixSelector creates a prefix trimmer.
func NewTrimPrefixSelector(prefix string) *TrimPrefixSelector {
	return &TrimPrefixSelector{prefix: prefix}
}

func (s *TrimPrefixSelector) Select(node html.Ref) []html.Ref {
	if text, ok := refText(node); ok {
		return []html.Ref{html.NewPhantomText(strings.TrimPrefix(text, s.prefix))}
	}
	return []html.Ref{node}
}

// TrimSuffixSelector strips a literal suffix from text and phantom-text
// references. Element references pass through unchanged.
type TrimSuffixSelector struct {
	suffix string
}

// NewTrimSuffixSelector creates a suffix trimmer.
func NewTrimSuffixSelector(suffix string) *TrimSuffixSelector {
	return &TrimSuffixSelector{suffix: suffix}
}

func (s *TrimSuffixSelector) Select(node html.Ref) []html.Ref {
	if text, ok := refText(node); ok {
		return []html.Ref{html.NewPhantomText(strings.TrimSuffix(text, s.suffix))}
	}
	return []html.Ref{node}
}

// NthChildSelector replaces an element reference with its n-th visible child,
// counted forward or from the end. The element is dropped when it has no such
// child; non-element references are always dropped.
type NthChildSelector struct {
	n        int
	reversed bool
}

// NewNthChildSelector creates an nth-child selector. n is zero-based; with
// reversed set it counts from the last child backwards.
func NewNthChildSelector(n int, reversed bool) *NthChildSelector {
	return &NthChildSelector{n: n, reversed: reversed}
}

func (s *NthChildSelector) Select(node html.Ref) []html.Ref {
	e, ok := node.(html.ElementRef)
	if !ok {
		return nil
	}
	children := e.TraverseChildren(s.reversed)
	if s.n >= len(children) {
		return nil
	}
	return []html.Ref{children[s.n]}
}
