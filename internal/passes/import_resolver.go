package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// ImportResolver links each ImportDecl to the TranslationUnit it names,
// when that unit is part of the same translation (a local import), by
// matching the ImportDecl's Name against every unit's recorded qualified
// name or bare module name. Imports of external packages never resolve
// and are left alone — that is the expected, non-fatal outcome (spec.md
// §7 "resolution errors ... never fatal").
type ImportResolver struct{}

func (ImportResolver) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameImportResolver,
		HardDeps: []string{NameTypeHierarchyResolver},
	}
}

func (ImportResolver) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	units := make(map[string]*cpgnode.Node)
	for _, n := range tc.Arena().All() {
		if n.Kind == cpgnode.KindTranslationUnit {
			units[n.Name] = n
			if qn, ok := n.Properties["qualifiedName"].(string); ok {
				units[qn] = n
			}
		}
	}

	for _, n := range tc.Arena().All() {
		if n.Kind != cpgnode.KindImportDecl {
			continue
		}
		target, ok := units[n.Name]
		if !ok {
			continue
		}
		n.AddEdge(cpgnode.EdgeReferences, target.ID)
	}
	return nil
}
