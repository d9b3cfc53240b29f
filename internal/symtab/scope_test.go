package symtab

import (
	"errors"
	"sync"
	"testing"

	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestResolveWalksAncestors(t *testing.T) {
	arena := cpgnode.NewArena()
	sm := NewScopeManager(arena)

	root := sm.NewScope(cpgnode.InvalidIdentity)
	child := sm.NewScope(root.ID)

	decl := cpgnode.NewNode(arena.NextID(), cpgnode.KindVariableDecl, "x", "go", cpgnode.Location{})
	arena.Add(decl)
	sm.Declare(root.ID, "x", decl.ID)

	got, ok := sm.Resolve(child.ID, "x")
	if !ok || got != decl.ID {
		t.Fatalf("Resolve(child, x) = %v, %v; want %v, true", got, ok, decl.ID)
	}
}

func TestResolveInnermostShadows(t *testing.T) {
	arena := cpgnode.NewArena()
	sm := NewScopeManager(arena)

	root := sm.NewScope(cpgnode.InvalidIdentity)
	child := sm.NewScope(root.ID)

	outer := cpgnode.NewNode(arena.NextID(), cpgnode.KindVariableDecl, "x", "go", cpgnode.Location{})
	inner := cpgnode.NewNode(arena.NextID(), cpgnode.KindVariableDecl, "x", "go", cpgnode.Location{})
	arena.Add(outer)
	arena.Add(inner)
	sm.Declare(root.ID, "x", outer.ID)
	sm.Declare(child.ID, "x", inner.ID)

	got, ok := sm.Resolve(child.ID, "x")
	if !ok || got != inner.ID {
		t.Fatalf("Resolve(child, x) = %v; want innermost %v", got, inner.ID)
	}
}

func TestResolveMissingReturnsFalse(t *testing.T) {
	arena := cpgnode.NewArena()
	sm := NewScopeManager(arena)
	root := sm.NewScope(cpgnode.InvalidIdentity)

	if _, ok := sm.Resolve(root.ID, "nope"); ok {
		t.Fatal("Resolve of undeclared name should fail")
	}
}

func TestCursorLeaveWrongTopFails(t *testing.T) {
	arena := cpgnode.NewArena()
	sm := NewScopeManager(arena)
	a := sm.NewScope(cpgnode.InvalidIdentity)
	b := sm.NewScope(a.ID)

	c := sm.NewCursor()
	c.Enter(a)
	c.Enter(b)

	err := c.Leave(a)
	if err == nil {
		t.Fatal("Leave(a) should fail while b is on top")
	}
	var internalErr *cpgerr.InternalError
	if !errors.As(err, &internalErr) {
		t.Fatalf("Leave(a) error = %v (%T), want *cpgerr.InternalError", err, err)
	}
	if internalErr.Component != "symtab.ScopeManager" {
		t.Fatalf("InternalError.Component = %q, want %q", internalErr.Component, "symtab.ScopeManager")
	}
	if err := c.Leave(b); err != nil {
		t.Fatalf("Leave(b) = %v, want nil", err)
	}
	if err := c.Leave(a); err != nil {
		t.Fatalf("Leave(a) = %v, want nil", err)
	}
}

func TestCursorsAreIndependent(t *testing.T) {
	arena := cpgnode.NewArena()
	sm := NewScopeManager(arena)
	root := sm.NewScope(cpgnode.InvalidIdentity)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := sm.NewCursor()
			child := sm.NewScope(root.ID)
			c.Enter(child)
			sm.Declare(child.ID, "local", cpgnode.Identity(i+1))
			if _, ok := sm.Resolve(child.ID, "local"); !ok {
				t.Error("own declaration should resolve")
			}
			if err := c.Leave(child); err != nil {
				t.Errorf("Leave failed: %v", err)
			}
		}(i)
	}
	wg.Wait()
}
