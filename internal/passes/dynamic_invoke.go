package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// DynamicInvokeResolver marks call sites the Symbol Resolver could not
// statically bind as candidates for virtual/dynamic dispatch — e.g. an
// interface method call, a function value, a reflection-based
// invocation — rather than leaving them indistinguishable from a genuine
// resolution failure. It only runs after SymbolResolver if that pass was
// registered (soft dependency): a pipeline that never runs symbol
// resolution has nothing for this pass to double-check.
type DynamicInvokeResolver struct{}

func (DynamicInvokeResolver) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameDynamicInvokeResolver,
		SoftDeps: []string{NameSymbolResolver},
	}
}

func (DynamicInvokeResolver) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	for _, n := range tc.Arena().All() {
		if n.Kind != cpgnode.KindCallExpr {
			continue
		}
		if len(n.Edges(cpgnode.EdgeInvoke)) == 0 {
			n.Properties["dynamicInvoke"] = true
		}
	}
	return nil
}
