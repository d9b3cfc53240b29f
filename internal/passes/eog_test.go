package passes

import (
	"context"
	"testing"

	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestEvaluationOrderGraphChainsNodesWithinScope(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)

	first := tc.newNode(cpgnode.KindVariableDecl, "a", root.ID)
	second := tc.newNode(cpgnode.KindCallExpr, "helper", root.ID)
	third := tc.newNode(cpgnode.KindReturnStmt, "", root.ID)

	if err := (EvaluationOrderGraph{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if edges := first.Edges(cpgnode.EdgeEOG); len(edges) != 1 || edges[0] != second.ID {
		t.Fatalf("first.EOG = %v, want [%d]", edges, second.ID)
	}
	if edges := second.Edges(cpgnode.EdgeEOG); len(edges) != 1 || edges[0] != third.ID {
		t.Fatalf("second.EOG = %v, want [%d]", edges, third.ID)
	}
	if len(third.Edges(cpgnode.EdgeEOG)) != 0 {
		t.Fatalf("the last node in a scope must have no outgoing EOG edge")
	}
}

func TestEvaluationOrderGraphDoesNotCrossScopes(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)
	inner := tc.NewScope(root.ID)

	a := tc.newNode(cpgnode.KindVariableDecl, "a", root.ID)
	b := tc.newNode(cpgnode.KindVariableDecl, "b", inner.ID)

	if err := (EvaluationOrderGraph{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(a.Edges(cpgnode.EdgeEOG)) != 0 || len(b.Edges(cpgnode.EdgeEOG)) != 0 {
		t.Fatalf("nodes in different scopes must not be chained together")
	}
}
