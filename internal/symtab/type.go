package symtab

import (
	"strconv"
	"sync"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/zeebo/xxh3"
)

// TypeManager interns TypeDescriptors into canonical Type nodes (spec.md
// §4.B "de-duplicates by structural key"). The key is an xxh3 hash of the
// descriptor's fields rather than the struct itself, so two descriptors
// built by unrelated frontends intern to the same node without ever
// comparing Go values directly.
type TypeManager struct {
	arena *cpgnode.Arena

	mu    sync.Mutex
	byKey map[uint64]*cpgnode.Node
}

// NewTypeManager returns an empty manager backed by arena.
func NewTypeManager(arena *cpgnode.Arena) *TypeManager {
	return &TypeManager{arena: arena, byKey: make(map[uint64]*cpgnode.Node)}
}

func descriptorKey(d corectx.TypeDescriptor) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(d.Name)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(d.Language)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(d.Qualifier)
	return h.Sum64()
}

// RegisterType returns the canonical Type node for d, creating it on first
// sight. Concurrent calls with an equal descriptor always return the same
// node, even across frontends racing on the same type.
func (m *TypeManager) RegisterType(d corectx.TypeDescriptor) *cpgnode.Node {
	key := descriptorKey(d)

	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.byKey[key]; ok {
		return n
	}
	n := cpgnode.NewNode(m.arena.NextID(), cpgnode.KindType, d.Name, d.Language, cpgnode.Location{})
	n.Properties["qualifier"] = d.Qualifier
	n.Properties["structuralKey"] = strconv.FormatUint(key, 16)
	m.arena.Add(n)
	m.byKey[key] = n
	return n
}

// Len reports how many distinct types have been interned.
func (m *TypeManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byKey)
}

// Close drops the interning table (spec.md §4.B "cleanup()"). The Type
// nodes already added to the arena are unaffected — only the lookup
// structure that let RegisterType de-duplicate further calls is released.
func (m *TypeManager) Close() {
	m.mu.Lock()
	m.byKey = nil
	m.mu.Unlock()
}
