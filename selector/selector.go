// Package selector implements the pipeline stages of the query language and
// the compiler that turns query source text into them.
//
// A Selector consumes one node reference and produces zero or more. The set
// of implementations is closed and grammar-enumerable; stages carry no
// mutable state, so a compiled pipeline can be reused across documents.
//
// Stages come in two groups, mirrored by the grammar's keyword prefixes:
// filters and generators over document structure (@path, @attr, @id, @class,
// @flat, @child) and text manipulation (#text, #trim, #trimPrefix,
// #trimSuffix, #extractAttr).
package selector

import (
	"github.com/xylonx/hql/html"
)

// Selector is one pipeline stage: a pure function from one node reference to
// its (possibly empty) replacement in the working set.
type Selector interface {
	Select(node html.Ref) []html.Ref
}
