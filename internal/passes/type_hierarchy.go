package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// TypeHierarchyResolver wires EXTENDS edges between RecordDecl nodes,
// using the "bases" property a frontend may have populated (the
// base/interface names as written in source). Interfaces are not told
// apart from base classes: no IMPLEMENTS edge is emitted. A frontend
// that never populates it leaves record declarations with no hierarchy
// edges — passes must tolerate partial input, per spec.md §4.G.
type TypeHierarchyResolver struct{}

func (TypeHierarchyResolver) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{Name: NameTypeHierarchyResolver}
}

func (TypeHierarchyResolver) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	records := make(map[string]*cpgnode.Node)
	for _, n := range tc.Arena().All() {
		if n.Kind == cpgnode.KindRecordDecl {
			records[n.Name] = n
		}
	}

	for _, n := range tc.Arena().All() {
		if n.Kind != cpgnode.KindRecordDecl {
			continue
		}
		bases, _ := n.Properties["bases"].([]string)
		for _, baseName := range bases {
			base, ok := records[baseName]
			if !ok {
				tc.ReportDiagnostic(corectx.Diagnostic{
					Severity:  corectx.SeverityInfo,
					Component: NameTypeHierarchyResolver,
					Message:   "unresolved base type " + baseName + " for " + n.Name,
					File:      n.Location.File,
				})
				continue
			}
			n.AddEdge(cpgnode.EdgeExtends, base.ID)
		}
	}
	return nil
}
