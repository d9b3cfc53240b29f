// Package symtab implements the Scope & Type Manager (spec.md §4.B):
// per-translation scope-tree bookkeeping, name resolution, and structural
// type interning. Both managers are created fresh at the start of a
// Translation and torn down with it unless disableCleanup is set
// (spec.md SPEC_FULL §1 "translation-scoped services").
package symtab

import (
	"fmt"
	"sync"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

// scopeEntry is one node in the scope tree: its symbol table and a lock
// guarding it, since sibling scopes may be populated by concurrent
// frontends (spec.md §5 UseParallelFrontends).
type scopeEntry struct {
	mu      sync.RWMutex
	parent  cpgnode.Identity
	symbols map[string]cpgnode.Identity
}

// ScopeManager owns the scope tree and symbol tables for one translation.
// The tree itself (parent pointers) is append-only and built under a
// single mutex; the per-scope symbol tables are guarded independently so
// that resolving a name in one scope never blocks declaring a name in
// another.
type ScopeManager struct {
	arena *cpgnode.Arena

	mu     sync.Mutex
	scopes map[cpgnode.Identity]*scopeEntry
}

// NewScopeManager returns an empty manager backed by arena.
func NewScopeManager(arena *cpgnode.Arena) *ScopeManager {
	return &ScopeManager{
		arena:  arena,
		scopes: make(map[cpgnode.Identity]*scopeEntry),
	}
}

// NewScope creates a Scope node with parent as its lexical parent
// (cpgnode.InvalidIdentity for a root scope) and
// registers an empty symbol table for it.
func (m *ScopeManager) NewScope(parent cpgnode.Identity) *cpgnode.Node {
	n := cpgnode.NewNode(m.arena.NextID(), cpgnode.KindScope, "", "", cpgnode.Location{})
	m.arena.Add(n)

	m.mu.Lock()
	m.scopes[n.ID] = &scopeEntry{parent: parent, symbols: make(map[string]cpgnode.Identity)}
	m.mu.Unlock()
	return n
}

func (m *ScopeManager) entry(id cpgnode.Identity) *scopeEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scopes[id]
}

// Declare registers decl under name in scope's local symbol table. A
// second declaration of the same name shadows the first, matching how the
// original engine's "last write wins" scope population behaves for
// re-declared locals.
func (m *ScopeManager) Declare(scope cpgnode.Identity, name string, decl cpgnode.Identity) {
	e := m.entry(scope)
	if e == nil {
		return
	}
	e.mu.Lock()
	e.symbols[name] = decl
	e.mu.Unlock()
}

// Resolve walks scope and its ancestors looking for name, stopping at the
// first (innermost) match (spec.md §4.B "innermost declaration").
func (m *ScopeManager) Resolve(scope cpgnode.Identity, name string) (cpgnode.Identity, bool) {
	cur := scope
	for cur != cpgnode.InvalidIdentity {
		e := m.entry(cur)
		if e == nil {
			return cpgnode.InvalidIdentity, false
		}
		e.mu.RLock()
		id, ok := e.symbols[name]
		parent := e.parent
		e.mu.RUnlock()
		if ok {
			return id, true
		}
		cur = parent
	}
	return cpgnode.InvalidIdentity, false
}

// cursor implements corectx.ScopeCursor. It is a plain slice stack: each
// frontend/pass owns exactly one and never shares it, so no locking is
// needed here — only the ScopeManager it delegates to is concurrent-safe.
type cursor struct {
	stack []*cpgnode.Node
}

// NewCursor returns a fresh, empty stack-discipline cursor over this
// manager's scope tree.
func (m *ScopeManager) NewCursor() corectx.ScopeCursor {
	return &cursor{}
}

func (c *cursor) Enter(scope *cpgnode.Node) *cpgnode.Node {
	c.stack = append(c.stack, scope)
	return scope
}

func (c *cursor) Leave(scope *cpgnode.Node) error {
	if len(c.stack) == 0 {
		return &cpgerr.InternalError{
			Component: "symtab.ScopeManager",
			Reason:    fmt.Sprintf("leaveScope(%d): cursor is empty", scope.ID),
		}
	}
	top := c.stack[len(c.stack)-1]
	if top.ID != scope.ID {
		return &cpgerr.InternalError{
			Component: "symtab.ScopeManager",
			Reason:    fmt.Sprintf("leaveScope(%d): not the top scope (top is %d)", scope.ID, top.ID),
		}
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

func (c *cursor) Current() *cpgnode.Node {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Close drops the per-scope symbol tables (spec.md §4.B "cleanup()"). The
// Scope nodes already added to the arena are unaffected; only the
// resolution structure backing Declare/Resolve is released.
func (m *ScopeManager) Close() {
	m.mu.Lock()
	m.scopes = nil
	m.mu.Unlock()
}
