package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// TypeResolver interns a canonical Type node for every variable, parameter
// or field declaration that carries a "typeName" property and records it
// on TypeID, USES_TYPE edge included. No builtin frontend sets "typeName"
// today. A declaration without one is left unresolved when inference is
// off; with inference on it is bound to a placeholder "<inferred>" Type of
// its language. No diagnostic is reported either way.
type TypeResolver struct{}

func (TypeResolver) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameTypeResolver,
		HardDeps: []string{NameTypeHierarchyResolver},
	}
}

var typedKinds = map[cpgnode.Kind]bool{
	cpgnode.KindVariableDecl: true,
	cpgnode.KindParamDecl:    true,
	cpgnode.KindFieldDecl:    true,
}

func (TypeResolver) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	for _, n := range tc.Arena().All() {
		if !typedKinds[n.Kind] {
			continue
		}
		typeName, _ := n.Properties["typeName"].(string)
		if typeName == "" {
			if tc.InferenceEnabled() {
				typeName = "<inferred>"
			} else {
				continue
			}
		}
		typ := tc.RegisterType(corectx.TypeDescriptor{Name: typeName, Language: n.Language})
		n.TypeID = typ.ID
		n.AddEdge(cpgnode.EdgeUsesType, typ.ID)
	}
	return nil
}
