package passes

import (
	"context"
	"testing"

	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestDynamicInvokeResolverFlagsUnresolvedCalls(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)
	call := tc.newNode(cpgnode.KindCallExpr, "ghost", root.ID)

	if err := (DynamicInvokeResolver{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if v, _ := call.Properties["dynamicInvoke"].(bool); !v {
		t.Fatalf("expected dynamicInvoke=true on a call with no INVOKES edge")
	}
}

func TestDynamicInvokeResolverLeavesResolvedCallsAlone(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)
	fn := tc.newNode(cpgnode.KindFunctionDecl, "helper", root.ID)
	call := tc.newNode(cpgnode.KindCallExpr, "helper", root.ID)
	call.AddEdge(cpgnode.EdgeInvoke, fn.ID)

	if err := (DynamicInvokeResolver{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, ok := call.Properties["dynamicInvoke"]; ok {
		t.Fatalf("a statically resolved call must not be flagged dynamic")
	}
}
