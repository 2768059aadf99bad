// Package querier runs compiled selector pipelines against parsed documents.
package querier

import (
	"go.uber.org/zap"

	"github.com/xylonx/hql/html"
	"github.com/xylonx/hql/selector"
)

// Querier holds an ordered selector pipeline and executes it over documents.
// The zero number of selectors is valid: the query then returns the document
// root unchanged.
type Querier struct {
	selectors []selector.Selector
	logger    *zap.Logger
}

// TryParse compiles query source text into a Querier. The error is a
// *selector.GrammarError when the text does not match the grammar.
func TryParse(query string) (*Querier, error) {
	selectors, err := selector.Parse(query)
	if err != nil {
		return nil, err
	}
	return New(selectors...), nil
}

// New creates a Querier from already-compiled selectors.
func New(selectors ...selector.Selector) *Querier {
	return &Querier{selectors: selectors, logger: zap.NewNop()}
}

// AddSelector appends a stage to the end of the pipeline.
func (q *Querier) AddSelector(s selector.Selector) *Querier {
	q.selectors = append(q.selectors, s)
	return q
}

// Selectors returns the pipeline stages in order.
func (q *Querier) Selectors() []selector.Selector { return q.selectors }

// SetLogger replaces the querier's logger. The default is a no-op logger.
func (q *Querier) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	q.logger = logger
}

// QueryDocument runs the pipeline over doc. The working set starts as the
// document root; each stage maps every reference independently and the
// concatenated outputs, in order, feed the next stage. An empty working set
// short-circuits to an empty result.
func (q *Querier) QueryDocument(doc *html.Document) []html.Ref {
	nodes := []html.Ref{doc.Root()}
	for i, s := range q.selectors {
		var next []html.Ref
		for _, n := range nodes {
			next = append(next, s.Select(n)...)
		}
		q.logger.Debug("apply selector",
			zap.Int("stage", i),
			zap.Int("in", len(nodes)),
			zap.Int("out", len(next)),
		)
		if len(next) == 0 {
			return nil
		}
		nodes = next
	}
	return nodes
}
