package cpgnode

import "fmt"

// Identity is a node's stable identity within one translation. It is
// assigned at construction time by a monotonic counter scoped to the
// TranslationResult that owns the node (spec.md §4.A); it is never reused
// and never recomputed.
type Identity int64

// Location is the source-location record every node carries: file,
// start/end line and column, and an optional code snippet (populated only
// when TranslationConfiguration.CodeInNodes is set).
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Code      string // empty unless CodeInNodes
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.File, l.StartLine, l.StartCol, l.EndLine, l.EndCol)
}

// Node is a single graph element. Nodes are owned by the TranslationResult
// that created them; edges reference nodes by Identity rather than by
// pointer so that cyclic graphs (recursion, loops) never become ownership
// cycles (spec.md §9 "cyclic node graph").
type Node struct {
	ID       Identity
	Kind     Kind
	Name     string // possibly qualified
	Language string // language display name, back-reference
	Location Location

	ScopeID Identity // enclosing Scope node, 0 (InvalidIdentity) for the root
	TypeID  Identity // resolved Type node, 0 if unresolved

	// Properties carries kind-specific data (branch condition, argument
	// index, literal value, ...) that does not warrant its own field on
	// every node kind. Passes read/write it by convention key.
	Properties map[string]any

	outgoing map[EdgeKind][]Identity
}

// InvalidIdentity is the zero value; no real node ever receives it.
const InvalidIdentity Identity = 0

// NewNode constructs a node with empty edge sets and property map. Callers
// obtain the ID from the owning TranslationResult's allocator, never from
// a package-level counter, so identity is always scoped to one translation.
func NewNode(id Identity, kind Kind, name, language string, loc Location) *Node {
	return &Node{
		ID:         id,
		Kind:       kind,
		Name:       name,
		Language:   language,
		Location:   loc,
		Properties: make(map[string]any),
		outgoing:   make(map[EdgeKind][]Identity),
	}
}

// AddEdge records an outgoing edge of the given kind to target. It is a
// no-op (recorded as a broken invariant via the returned bool) if the node
// kind does not allow that edge label.
func (n *Node) AddEdge(kind EdgeKind, target Identity) bool {
	if !AllowsEdge(n.Kind, kind) {
		return false
	}
	n.outgoing[kind] = append(n.outgoing[kind], target)
	return true
}

// Edges returns the targets of outgoing edges of the given kind, in
// insertion order.
func (n *Node) Edges(kind EdgeKind) []Identity {
	return n.outgoing[kind]
}

// EdgeKinds returns every edge kind this node currently has at least one
// outgoing edge for.
func (n *Node) EdgeKinds() []EdgeKind {
	kinds := make([]EdgeKind, 0, len(n.outgoing))
	for k := range n.outgoing {
		kinds = append(kinds, k)
	}
	return kinds
}
