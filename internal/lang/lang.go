// Package lang implements the Language Registry (spec.md §4.C): the
// mapping from file extension to frontend factory, plus each language's
// frontend-declared extra passes and per-language pass replacements.
//
// Two registries exist at different scopes, deliberately: a package-level
// map of builtin factories (populated by each language's init(), the
// string-keyed equivalent of the source system's "load frontend by class
// name" reflection — spec.md §9 design note), and an instance Registry
// type that a TranslationConfiguration.Builder owns. Only the latter is
// ever consulted while building a configuration, so two concurrent
// translations with different registered languages never interfere —
// there is no mutable global translation state (spec.md §9 "Global
// singletons").
package lang

import (
	"context"
	"sync"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

// Frontend parses one file into a TranslationUnit subgraph (spec.md §6
// "Frontend contract"). Implementations must tolerate concurrent
// TranslationContext access: the Frontend Runner may invoke Parse for many
// files of the same language concurrently when UseParallelFrontends is set.
type Frontend interface {
	Parse(ctx context.Context, tc corectx.TranslationContext, file string) (*cpgnode.Node, error)
	Cleanup() error
}

// FrontendFactory builds a fresh Frontend instance for one Language. The
// Frontend Runner calls it once per (language, software component) pair.
type FrontendFactory func(l *Language) (Frontend, error)

// PassReplacement rewires pass Old to pass New for files of one language
// (spec.md §4.D step 2, §6 "@ReplacePass").
type PassReplacement struct {
	Old string
	New string
}

// Language is a registered source language (spec.md §3 "Language").
type Language struct {
	Name               string // display name, e.g. "Go"
	FileExtensions     []string
	NamespaceSeparator string // e.g. "." for Go/Java, "::" for C++/Rust
	BuiltinTypes       []string

	// ExtraPasses are applied to the pass set only when the builder was
	// seeded with DefaultPasses (spec.md §4.D step 1 "prevents opinionated
	// additions to bespoke pipelines").
	ExtraPasses []string
	// ReplacePasses are applied unconditionally, before scheduling
	// (spec.md §4.D step 2).
	ReplacePasses []PassReplacement

	NewFrontend FrontendFactory

	// Spec carries the tree-sitter node-kind tables the generic
	// tree-sitter frontend (internal/frontend) needs. Languages with a
	// bespoke, non-tree-sitter frontend (e.g. Go's native-AST path) leave
	// this nil.
	Spec *NodeTypeSpec
}

// Registry is the set of languages one TranslationConfiguration.Builder
// has registered. It is never a package-level global: each builder gets
// its own, so two configurations built concurrently cannot see each
// other's registrations (spec.md §9 "Global singletons").
type Registry struct {
	mu    sync.Mutex
	all   []*Language
	byExt map[string]*Language
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]*Language)}
}

// Register appends l. Later-registered languages take precedence on
// extension conflict: this resolves spec.md §9 open question (a) as
// last-wins, the natural behavior of a map keyed by extension and the
// simplest to specify and test.
func (r *Registry) Register(l *Language) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, l)
	for _, ext := range l.FileExtensions {
		r.byExt[ext] = l
	}
}

// Unregister removes every registered Language with the given Name and
// rebuilds the extension index (an unregistered language may have shared
// an extension with one still registered).
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.all[:0]
	for _, l := range r.all {
		if l.Name != name {
			kept = append(kept, l)
		}
	}
	r.all = kept
	r.byExt = make(map[string]*Language)
	for _, l := range r.all {
		for _, ext := range l.FileExtensions {
			r.byExt[ext] = l
		}
	}
}

// RegisterByName looks up a builtin language by its registry key (e.g.
// "go", "python") and registers it, failing with a ConfigurationError if
// no such builtin is known — the "class cannot be instantiated" case of
// spec.md §4.C.
func (r *Registry) RegisterByName(name string) error {
	l, ok := Lookup(name)
	if !ok {
		return cpgerr.NewConfigurationError("language %q is not a known builtin", name)
	}
	r.Register(l)
	return nil
}

// RegisterByNameOptional behaves like RegisterByName but swallows an
// unknown name, returning false instead of an error (spec.md §4.C
// "'optional' variant swallows errors").
func (r *Registry) RegisterByNameOptional(name string) bool {
	l, ok := Lookup(name)
	if !ok {
		return false
	}
	r.Register(l)
	return true
}

// ForExtension returns the Language registered for a file extension
// (including the leading dot, e.g. ".go"), and whether one was found.
func (r *Registry) ForExtension(ext string) (*Language, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byExt[ext]
	return l, ok
}

// All returns every registered language, in registration order.
func (r *Registry) All() []*Language {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Language, len(r.all))
	copy(out, r.all)
	return out
}

// Len reports how many languages are registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.all)
}
