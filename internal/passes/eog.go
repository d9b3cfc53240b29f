package passes

import (
	"context"
	"sort"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// EvaluationOrderGraph links statement-level nodes within the same scope
// in the order their identities were allocated, which — since frontends
// assign identity while walking a translation unit depth-first — is also
// source order. This is a coarse EOG: it orders nodes one level of a
// scope at a time rather than modeling per-statement control flow
// (branches, short-circuit evaluation), which the §9 design notes leave
// to dedicated passes outside this core's budget.
type EvaluationOrderGraph struct{}

func (EvaluationOrderGraph) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameEvaluationOrderGraph,
		HardDeps: []string{NameSymbolResolver},
	}
}

var eogKinds = map[cpgnode.Kind]bool{
	cpgnode.KindCallExpr:      true,
	cpgnode.KindIfStmt:        true,
	cpgnode.KindLoopStmt:      true,
	cpgnode.KindReturnStmt:    true,
	cpgnode.KindVariableDecl:  true,
	cpgnode.KindReferenceExpr: true,
}

func (EvaluationOrderGraph) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	byScope := make(map[cpgnode.Identity][]*cpgnode.Node)
	for _, n := range tc.Arena().All() {
		if eogKinds[n.Kind] {
			byScope[n.ScopeID] = append(byScope[n.ScopeID], n)
		}
	}
	for _, nodes := range byScope {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
		for i := 0; i+1 < len(nodes); i++ {
			nodes[i].AddEdge(cpgnode.EdgeEOG, nodes[i+1].ID)
		}
	}
	return nil
}
