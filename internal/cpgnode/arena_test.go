package cpgnode

import (
	"sync"
	"testing"
)

func TestArenaAddAndGet(t *testing.T) {
	a := NewArena()
	id := a.NextID()
	n := NewNode(id, KindFunctionDecl, "main", "go", Location{File: "main.go", StartLine: 1})
	a.Add(n)

	got := a.Get(id)
	if got == nil || got.Name != "main" {
		t.Fatalf("Get(%d) = %v, want node named main", id, got)
	}
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}
}

func TestArenaFreezePanics(t *testing.T) {
	a := NewArena()
	a.Freeze()
	if !a.Frozen() {
		t.Fatal("Frozen() = false after Freeze()")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Add after Freeze did not panic")
		}
	}()
	a.Add(NewNode(a.NextID(), KindVariableDecl, "x", "go", Location{}))
}

func TestArenaDuplicateIdentityPanics(t *testing.T) {
	a := NewArena()
	id := a.NextID()
	a.Add(NewNode(id, KindVariableDecl, "x", "go", Location{}))

	defer func() {
		if recover() == nil {
			t.Fatal("Add with duplicate identity did not panic")
		}
	}()
	a.Add(NewNode(id, KindVariableDecl, "y", "go", Location{}))
}

func TestArenaConcurrentNextID(t *testing.T) {
	a := NewArena()
	var wg sync.WaitGroup
	seen := make(chan Identity, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- a.NextID()
		}()
	}
	wg.Wait()
	close(seen)

	ids := make(map[Identity]bool)
	for id := range seen {
		if ids[id] {
			t.Fatalf("duplicate identity %d handed out under concurrent NextID", id)
		}
		ids[id] = true
	}
	if len(ids) != 100 {
		t.Fatalf("got %d unique identities, want 100", len(ids))
	}
}

func TestNodeAddEdgeRespectsTaxonomy(t *testing.T) {
	n := NewNode(1, KindCallExpr, "foo", "go", Location{})
	if !n.AddEdge(EdgeInvoke, 2) {
		t.Fatal("CallExpr should allow INVOKES edge")
	}
	if n.AddEdge(EdgeExtends, 2) {
		t.Fatal("CallExpr should not allow EXTENDS edge")
	}
	if got := n.Edges(EdgeInvoke); len(got) != 1 || got[0] != 2 {
		t.Fatalf("Edges(INVOKES) = %v, want [2]", got)
	}
}
