package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// SymbolResolver resolves CallExpr nodes to the declaration their callee
// name refers to, walking the scope chain from the call site via
// TranslationContext.Resolve (spec.md §4.B "innermost declaration").
type SymbolResolver struct{}

func (SymbolResolver) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameSymbolResolver,
		HardDeps: []string{NameImportResolver},
	}
}

func (SymbolResolver) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	for _, n := range tc.Arena().All() {
		if n.Kind != cpgnode.KindCallExpr {
			continue
		}
		callee, _ := n.Properties["callee"].(string)
		if callee == "" {
			callee = n.Name
		}
		decl, ok := tc.Resolve(callee, n.ScopeID)
		if !ok {
			tc.ReportDiagnostic(corectx.Diagnostic{
				Severity:  corectx.SeverityInfo,
				Component: NameSymbolResolver,
				Message:   (&cpgerr.ResolutionError{Name: callee, Reason: "no visible declaration"}).Error(),
				File:      n.Location.File,
			})
			continue
		}
		n.AddEdge(cpgnode.EdgeInvoke, decl.ID)
	}
	return nil
}
