package frontend

import (
	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/symtab"
)

// fakeContext is a minimal corectx.TranslationContext for exercising a
// frontend's Parse method in isolation, without a full translation.Manager.
type fakeContext struct {
	arena  *cpgnode.Arena
	scopes *symtab.ScopeManager
	types  *symtab.TypeManager
	diags  []corectx.Diagnostic

	codeInNodes bool
	failOnError bool
	inference   bool
}

func newFakeContext() *fakeContext {
	arena := cpgnode.NewArena()
	return &fakeContext{
		arena:  arena,
		scopes: symtab.NewScopeManager(arena),
		types:  symtab.NewTypeManager(arena),
	}
}

func (c *fakeContext) Arena() *cpgnode.Arena { return c.arena }

func (c *fakeContext) NewScope(parent cpgnode.Identity) *cpgnode.Node {
	return c.scopes.NewScope(parent)
}

func (c *fakeContext) NewScopeCursor() corectx.ScopeCursor { return c.scopes.NewCursor() }

func (c *fakeContext) Declare(scope cpgnode.Identity, name string, decl cpgnode.Identity) {
	c.scopes.Declare(scope, name, decl)
}

func (c *fakeContext) Resolve(name string, scope cpgnode.Identity) (*cpgnode.Node, bool) {
	id, ok := c.scopes.Resolve(scope, name)
	if !ok {
		return nil, false
	}
	return c.arena.Get(id), true
}

func (c *fakeContext) RegisterType(d corectx.TypeDescriptor) *cpgnode.Node {
	return c.types.RegisterType(d)
}

func (c *fakeContext) ReportDiagnostic(d corectx.Diagnostic) { c.diags = append(c.diags, d) }

func (c *fakeContext) Cancelled() bool { return false }

func (c *fakeContext) CodeInNodes() bool { return c.codeInNodes }

func (c *fakeContext) FailOnError() bool { return c.failOnError }

func (c *fakeContext) InferenceEnabled() bool { return c.inference }
