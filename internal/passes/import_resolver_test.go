package passes

import (
	"context"
	"testing"

	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

func TestImportResolverLinksLocalImport(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)

	other := tc.newNode(cpgnode.KindTranslationUnit, "util", root.ID)
	imp := tc.newNode(cpgnode.KindImportDecl, "util", root.ID)

	if err := (ImportResolver{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	edges := imp.Edges(cpgnode.EdgeReferences)
	if len(edges) != 1 || edges[0] != other.ID {
		t.Fatalf("REFERENCES edges = %v, want [%d]", edges, other.ID)
	}
}

func TestImportResolverLeavesExternalImportUnresolved(t *testing.T) {
	tc := newTestContext()
	root := tc.NewScope(cpgnode.InvalidIdentity)
	imp := tc.newNode(cpgnode.KindImportDecl, "github.com/external/pkg", root.ID)

	if err := (ImportResolver{}).Accept(context.Background(), tc); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(imp.Edges(cpgnode.EdgeReferences)) != 0 {
		t.Fatalf("an import with no matching unit must stay unresolved")
	}
}
