package passes

import (
	"context"
	"testing"

	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestControlFlowSensitiveDataFlowFlagsOutOfOrderEdge(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)

	call := tc.newNode(cpgnode.KindCallExpr, "helper", root.ID)
	decl := tc.newNode(cpgnode.KindVariableDecl, "x", root.ID)

	// EOG says decl executes after call; the DFG edge nonetheless claims
	// call consumes decl's value, which is impossible in that order.
	call.AddEdge(cpgnode.EdgeEOG, decl.ID)
	decl.AddEdge(cpgnode.EdgeDFG, call.ID)

	if err := (ControlFlowSensitiveDataFlow{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	v, ok := decl.Properties["dfgOrderViolations"].(int)
	if !ok || v != 1 {
		t.Fatalf("expected dfgOrderViolations=1, got %v (ok=%v)", v, ok)
	}
}

func TestControlFlowSensitiveDataFlowLeavesOrderedEdgesAlone(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)

	decl := tc.newNode(cpgnode.KindVariableDecl, "x", root.ID)
	call := tc.newNode(cpgnode.KindCallExpr, "helper", root.ID)

	decl.AddEdge(cpgnode.EdgeEOG, call.ID)
	decl.AddEdge(cpgnode.EdgeDFG, call.ID)

	if err := (ControlFlowSensitiveDataFlow{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, ok := decl.Properties["dfgOrderViolations"]; ok {
		t.Fatalf("a DFG edge that follows evaluation order must not be flagged")
	}
}

func TestControlFlowSensitiveDataFlowNoopWithoutEOG(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)
	decl := tc.newNode(cpgnode.KindVariableDecl, "x", root.ID)
	call := tc.newNode(cpgnode.KindCallExpr, "helper", root.ID)
	decl.AddEdge(cpgnode.EdgeDFG, call.ID)

	if err := (ControlFlowSensitiveDataFlow{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, ok := decl.Properties["dfgOrderViolations"]; ok {
		t.Fatalf("without an EOG, this pass has nothing to check order against")
	}
}
