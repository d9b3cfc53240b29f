package cpgnode

import "sync"

// Arena is the single owning store of nodes for one translation. It hands
// out monotonic identities and is safe for concurrent use by parallel
// frontends (spec.md §5 "TranslationResult.nodes: append-only from
// frontends during the parsing phase"). After Freeze, Add panics rather
// than silently dropping a node. The Translation Manager freezes the arena
// only after the passes have run, since passes add Type nodes.
type Arena struct {
	mu     sync.Mutex
	nodes  []*Node
	byID   map[Identity]*Node
	nextID Identity
	frozen bool
}

// NewArena returns an empty, unfrozen arena.
func NewArena() *Arena {
	return &Arena{byID: make(map[Identity]*Node)}
}

// NextID reserves the next identity without creating a node. Frontends use
// this to assign an ID before a node's fields (e.g. its Location) are fully
// known, then call Add once the Node value is built.
func (a *Arena) NextID() Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	return a.nextID
}

// Add inserts a node, keyed by its own ID. Panics if the arena is frozen or
// the ID is already present — both are invariant violations, not recoverable
// errors (spec.md §7 InternalError).
func (a *Arena) Add(n *Node) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.frozen {
		panic("cpgnode: Add called on a frozen arena")
	}
	if _, exists := a.byID[n.ID]; exists {
		panic("cpgnode: duplicate node identity")
	}
	a.nodes = append(a.nodes, n)
	a.byID[n.ID] = n
}

// Get returns the node for id, or nil if absent.
func (a *Arena) Get(id Identity) *Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.byID[id]
}

// Freeze forbids further Add calls. Passes may still mutate edges on
// existing nodes (spec.md §5: "passes mutate edges, not the node set").
func (a *Arena) Freeze() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frozen = true
}

// Frozen reports whether Freeze has been called.
func (a *Arena) Frozen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frozen
}

// Len returns the number of nodes currently owned by the arena.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.nodes)
}

// All returns a snapshot slice of every node, in insertion order. The slice
// is a copy; callers may not observe later Add calls through it.
func (a *Arena) All() []*Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Node, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Sort reorders the arena's node listing (not identities) by the given
// less function. The Translation Manager does not call it: it orders
// translation units through TranslationResult's own unit list instead.
func (a *Arena) Sort(less func(i, j *Node) bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// insertion sort: quadratic in the number of nodes.
	for i := 1; i < len(a.nodes); i++ {
		for j := i; j > 0 && less(a.nodes[j], a.nodes[j-1]); j-- {
			a.nodes[j], a.nodes[j-1] = a.nodes[j-1], a.nodes[j]
		}
	}
}
