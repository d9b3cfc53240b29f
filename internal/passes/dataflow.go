package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// DataFlowGraph connects a CallExpr's arguments to the declarations they
// reference: each name in the call's "argNames" property is resolved from
// the call's scope, and for every hit a DFG edge from that declaration to
// the call site is added. This is an approximation of real def-use analysis, scoped to
// what the generic node model exposes without a dedicated IR.
type DataFlowGraph struct{}

func (DataFlowGraph) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameDataFlowGraph,
		HardDeps: []string{NameSymbolResolver},
	}
}

func (DataFlowGraph) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	arena := tc.Arena()
	for _, n := range arena.All() {
		if n.Kind != cpgnode.KindCallExpr {
			continue
		}
		args, _ := n.Properties["argNames"].([]string)
		for _, arg := range args {
			decl, ok := tc.Resolve(arg, n.ScopeID)
			if !ok {
				continue
			}
			decl.AddEdge(cpgnode.EdgeDFG, n.ID)
		}
	}
	return nil
}
