package passes

import (
	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/symtab"
)

// testContext is a real, minimal corectx.TranslationContext backed by the
// actual Scope & Type Manager, for exercising default passes against a
// hand-built graph without a full Translation Manager.
type testContext struct {
	arena  *cpgnode.Arena
	scopes *symtab.ScopeManager
	types  *symtab.TypeManager
	diags  []corectx.Diagnostic
}

func newTestContext() *testContext {
	arena := cpgnode.NewArena()
	return &testContext{
		arena:  arena,
		scopes: symtab.NewScopeManager(arena),
		types:  symtab.NewTypeManager(arena),
	}
}

func (tc *testContext) Arena() *cpgnode.Arena { return tc.arena }

func (tc *testContext) NewScope(parent cpgnode.Identity) *cpgnode.Node {
	return tc.scopes.NewScope(parent)
}

func (tc *testContext) NewScopeCursor() corectx.ScopeCursor { return tc.scopes.NewCursor() }

func (tc *testContext) Declare(scope cpgnode.Identity, name string, decl cpgnode.Identity) {
	tc.scopes.Declare(scope, name, decl)
}

func (tc *testContext) Resolve(name string, scope cpgnode.Identity) (*cpgnode.Node, bool) {
	id, ok := tc.scopes.Resolve(scope, name)
	if !ok {
		return nil, false
	}
	return tc.arena.Get(id), true
}

func (tc *testContext) RegisterType(d corectx.TypeDescriptor) *cpgnode.Node {
	return tc.types.RegisterType(d)
}

func (tc *testContext) ReportDiagnostic(d corectx.Diagnostic) { tc.diags = append(tc.diags, d) }
func (tc *testContext) Cancelled() bool                       { return false }
func (tc *testContext) CodeInNodes() bool                     { return false }
func (tc *testContext) FailOnError() bool                     { return false }
func (tc *testContext) InferenceEnabled() bool                { return false }

func (tc *testContext) newNode(kind cpgnode.Kind, name string, scope cpgnode.Identity) *cpgnode.Node {
	n := cpgnode.NewNode(tc.arena.NextID(), kind, name, "go", cpgnode.Location{})
	n.ScopeID = scope
	tc.arena.Add(n)
	return n
}
