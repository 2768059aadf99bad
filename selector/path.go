package selector

import (
	"strings"

	"github.com/xylonx/hql/html"
)

// PathKind distinguishes the two step forms of a path expression.
type PathKind int

const (
	// PathSingle matches among the immediate children only.
	PathSingle PathKind = iota
	// PathTravel matches anywhere in the subtree.
	PathTravel
)

// PathStep is one (kind, tag) pair of a path expression.
type PathStep struct {
	Kind PathKind
	Tag  string
}

// PathSelector navigates a /-separated path: each step narrows the working
// set to children (single step) or the whole subtree (travel step) whose tag
// matches case-insensitively.
type PathSelector struct {
	steps []PathStep
}

// NewPathSelector creates a path selector from its steps.
func NewPathSelector(steps []PathStep) *PathSelector {
	return &PathSelector{steps: steps}
}

// Steps returns the compiled steps.
func (s *PathSelector) Steps() []PathStep { return s.steps }

func (s *PathSelector) Select(node html.Ref) []html.Ref {
	nodes := []html.Ref{node}
	for _, step := range s.steps {
		var next []html.Ref
		for _, n := range nodes {
			var candidates []html.Ref
			switch step.Kind {
			case PathSingle:
				candidates = n.TraverseChildren(false)
			case PathTravel:
				candidates = n.TraverseSubtree()
			}
			for _, c := range candidates {
				if e, ok := c.(html.ElementRef); ok && strings.EqualFold(e.TagName(), step.Tag) {
					next = append(next, c)
				}
			}
		}
		nodes = next
	}
	return nodes
}

// FlatSelector expands a reference into its whole subtree in pre-order.
type FlatSelector struct{}

// NewFlatSelector creates a flatten selector.
func NewFlatSelector() *FlatSelector { return &FlatSelector{} }

func (s *FlatSelector) Select(node html.Ref) []html.Ref {
	return node.TraverseSubtree()
}
