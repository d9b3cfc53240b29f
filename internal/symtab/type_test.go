package symtab

import (
	"sync"
	"testing"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestRegisterTypeInterns(t *testing.T) {
	arena := cpgnode.NewArena()
	tm := NewTypeManager(arena)

	d := corectx.TypeDescriptor{Name: "string", Language: "go"}
	a := tm.RegisterType(d)
	b := tm.RegisterType(d)
	if a.ID != b.ID {
		t.Fatalf("same descriptor interned to different nodes: %d != %d", a.ID, b.ID)
	}
	if tm.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tm.Len())
	}
}

func TestRegisterTypeDistinguishesQualifier(t *testing.T) {
	arena := cpgnode.NewArena()
	tm := NewTypeManager(arena)

	a := tm.RegisterType(corectx.TypeDescriptor{Name: "Reader", Language: "go", Qualifier: "io"})
	b := tm.RegisterType(corectx.TypeDescriptor{Name: "Reader", Language: "go", Qualifier: "bufio"})
	if a.ID == b.ID {
		t.Fatal("types with different qualifiers must not share a node")
	}
}

func TestRegisterTypeConcurrentSameDescriptor(t *testing.T) {
	arena := cpgnode.NewArena()
	tm := NewTypeManager(arena)
	d := corectx.TypeDescriptor{Name: "int", Language: "go"}

	ids := make([]cpgnode.Identity, 100)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = tm.RegisterType(d).ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] {
			t.Fatal("concurrent RegisterType of equal descriptor produced divergent nodes")
		}
	}
}
