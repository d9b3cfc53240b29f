package translation

import (
	"sync/atomic"

	"github.com/cpgkit/cpgkit/internal/config"
	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/symtab"
)

// Context is the concrete corectx.TranslationContext for one translation.
// It is shared, read-only after construction except for its internal
// managers' own synchronization, by every frontend and pass the
// Translation Manager drives (spec.md §3 "TranslationContext").
type Context struct {
	cfg    *config.TranslationConfiguration
	result *TranslationResult
	scopes *symtab.ScopeManager
	types  *symtab.TypeManager

	cancelled atomic.Bool
}

func newContext(cfg *config.TranslationConfiguration, result *TranslationResult, scopes *symtab.ScopeManager, types *symtab.TypeManager) *Context {
	return &Context{cfg: cfg, result: result, scopes: scopes, types: types}
}

func (c *Context) Arena() *cpgnode.Arena { return c.result.Arena }

func (c *Context) NewScope(parent cpgnode.Identity) *cpgnode.Node {
	return c.scopes.NewScope(parent)
}

func (c *Context) NewScopeCursor() corectx.ScopeCursor {
	return c.scopes.NewCursor()
}

func (c *Context) Declare(scope cpgnode.Identity, name string, decl cpgnode.Identity) {
	c.scopes.Declare(scope, name, decl)
}

func (c *Context) Resolve(name string, scope cpgnode.Identity) (*cpgnode.Node, bool) {
	id, ok := c.scopes.Resolve(scope, name)
	if !ok {
		return nil, false
	}
	return c.result.Arena.Get(id), true
}

func (c *Context) RegisterType(d corectx.TypeDescriptor) *cpgnode.Node {
	return c.types.RegisterType(d)
}

func (c *Context) ReportDiagnostic(d corectx.Diagnostic) {
	c.result.addDiagnostic(d)
}

func (c *Context) Cancel() { c.cancelled.Store(true) }

func (c *Context) Cancelled() bool { return c.cancelled.Load() }

func (c *Context) CodeInNodes() bool { return c.cfg.Flags.CodeInNodes }

func (c *Context) FailOnError() bool { return c.cfg.Flags.FailOnError }

func (c *Context) InferenceEnabled() bool { return c.cfg.Inference.Enabled }
