package scheduler

import (
	"context"
	"testing"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

type stubPass struct {
	d passdesc.Descriptor
}

func (s stubPass) Descriptor() passdesc.Descriptor { return s.d }
func (s stubPass) Accept(context.Context, corectx.TranslationContext) error { return nil }

func names(g Group) []string {
	out := make([]string, len(g))
	for i, p := range g {
		out[i] = p.Descriptor().Name
	}
	return out
}

func noResolver(string) (passdesc.Pass, bool) { return nil, false }

func TestMinimalSchedule(t *testing.T) {
	a := stubPass{passdesc.Descriptor{Name: "A"}}
	b := stubPass{passdesc.Descriptor{Name: "B", HardDeps: []string{"A"}}}

	groups, err := Schedule([]passdesc.Pass{a, b}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 2 || names(groups[0])[0] != "A" || names(groups[1])[0] != "B" {
		t.Fatalf("got %v, want [[A] [B]]", groups)
	}
}

func TestMissingHardDepInjected(t *testing.T) {
	b := stubPass{passdesc.Descriptor{Name: "B", HardDeps: []string{"A"}}}
	resolve := func(name string) (passdesc.Pass, bool) {
		if name == "A" {
			return stubPass{passdesc.Descriptor{Name: "A"}}, true
		}
		return nil, false
	}

	groups, err := Schedule([]passdesc.Pass{b}, resolve)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 2 || names(groups[0])[0] != "A" || names(groups[1])[0] != "B" {
		t.Fatalf("got %v, want [[A] [B]]", groups)
	}
}

func TestMissingHardDepUnresolvableFails(t *testing.T) {
	b := stubPass{passdesc.Descriptor{Name: "B", HardDeps: []string{"A"}}}
	if _, err := Schedule([]passdesc.Pass{b}, noResolver); err == nil {
		t.Fatal("expected ConfigurationError for unresolvable hard dep")
	}
}

func TestCycleFails(t *testing.T) {
	a := stubPass{passdesc.Descriptor{Name: "A", HardDeps: []string{"B"}}}
	b := stubPass{passdesc.Descriptor{Name: "B", HardDeps: []string{"A"}}}

	_, err := Schedule([]passdesc.Pass{a, b}, noResolver)
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if err.Error() != "configuration error: failed to satisfy ordering requirements" {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestTwoFirstPassesFails(t *testing.T) {
	a := stubPass{passdesc.Descriptor{Name: "A", First: true}}
	b := stubPass{passdesc.Descriptor{Name: "B", First: true}}

	_, err := Schedule([]passdesc.Pass{a, b}, noResolver)
	if err == nil {
		t.Fatal("expected too-many-first-passes error")
	}
	if err.Error() != "configuration error: too many first passes" {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestTwoLastPassesFails(t *testing.T) {
	a := stubPass{passdesc.Descriptor{Name: "A", Last: true}}
	b := stubPass{passdesc.Descriptor{Name: "B", Last: true}}

	_, err := Schedule([]passdesc.Pass{a, b}, noResolver)
	if err == nil {
		t.Fatal("expected too-many-last-passes error")
	}
}

func TestParallelGroup(t *testing.T) {
	a := stubPass{passdesc.Descriptor{Name: "A"}}
	b := stubPass{passdesc.Descriptor{Name: "B"}}
	c := stubPass{passdesc.Descriptor{Name: "C"}}

	groups, err := Schedule([]passdesc.Pass{a, b, c}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0]) != 3 {
		t.Fatalf("got %v, want a single group of 3", groups)
	}
}

func TestReplacementRewiresDeps(t *testing.T) {
	aPrime := stubPass{passdesc.Descriptor{Name: "A'"}}
	b := stubPass{passdesc.Descriptor{Name: "B", HardDeps: []string{"A'"}}}

	groups, err := Schedule([]passdesc.Pass{aPrime, b}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 2 || names(groups[0])[0] != "A'" || names(groups[1])[0] != "B" {
		t.Fatalf("got %v, want [[A'] [B]]", groups)
	}
}

func TestExecuteFirstAndLastBookendGroups(t *testing.T) {
	first := stubPass{passdesc.Descriptor{Name: "First", First: true}}
	last := stubPass{passdesc.Descriptor{Name: "Last", Last: true}}
	mid := stubPass{passdesc.Descriptor{Name: "Mid"}}

	groups, err := Schedule([]passdesc.Pass{mid, last, first}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if names(groups[0])[0] != "First" {
		t.Fatalf("group 0 = %v, want [First]", groups[0])
	}
	if names(groups[2])[0] != "Last" {
		t.Fatalf("last group = %v, want [Last]", groups[2])
	}
}

func TestExecuteBeforeInstallsSoftEdgeOnTarget(t *testing.T) {
	// "this" declares Before: "Q" -- Q must run after "this".
	this := stubPass{passdesc.Descriptor{Name: "This", Before: []string{"Q"}}}
	q := stubPass{passdesc.Descriptor{Name: "Q"}}

	groups, err := Schedule([]passdesc.Pass{q, this}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 2 || names(groups[0])[0] != "This" || names(groups[1])[0] != "Q" {
		t.Fatalf("got %v, want [[This] [Q]]", groups)
	}
}

func TestSoftDepIgnoredWhenAbsent(t *testing.T) {
	b := stubPass{passdesc.Descriptor{Name: "B", SoftDeps: []string{"A"}}}

	groups, err := Schedule([]passdesc.Pass{b}, noResolver)
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0]) != 1 {
		t.Fatalf("got %v, want a single group with just B (A never injected for a soft dep)", groups)
	}
}
