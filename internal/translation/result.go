// Package translation implements the Translation Manager (spec.md §4.H):
// the end-to-end coordinator that validates a TranslationConfiguration,
// drives the Frontend Runner and Pass Runner, and assembles a
// TranslationResult.
package translation

import (
	"sync"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
)

// TranslationResult is the top-level graph handle returned by Translate.
// It owns the node arena (Type nodes included), the scope tree root, and
// the accumulated diagnostics, exposed even on success (spec.md §7). The
// type-interning table stays with the TypeManager and is not part of it.
type TranslationResult struct {
	Arena     *cpgnode.Arena
	RootScope *cpgnode.Node

	mu          sync.Mutex
	diagnostics []corectx.Diagnostic

	// units, in deterministic post-join order (spec.md §5 "post-join
	// sort"), not the order frontends happened to finish in.
	units []*cpgnode.Node
}

func newResult(arena *cpgnode.Arena, root *cpgnode.Node) *TranslationResult {
	return &TranslationResult{Arena: arena, RootScope: root}
}

func (r *TranslationResult) addDiagnostic(d corectx.Diagnostic) {
	r.mu.Lock()
	r.diagnostics = append(r.diagnostics, d)
	r.mu.Unlock()
}

// Diagnostics returns every diagnostic recorded so far, in recording order.
func (r *TranslationResult) Diagnostics() []corectx.Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]corectx.Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

func (r *TranslationResult) addUnit(u *cpgnode.Node) {
	r.mu.Lock()
	r.units = append(r.units, u)
	r.mu.Unlock()
}

// AddUnit records a parsed TranslationUnit. It implements
// frontend.ResultSink so the Frontend Runner can append units without
// importing internal/translation.
func (r *TranslationResult) AddUnit(u *cpgnode.Node) { r.addUnit(u) }

// Units returns the TranslationUnit nodes produced so far.
func (r *TranslationResult) Units() []*cpgnode.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*cpgnode.Node, len(r.units))
	copy(out, r.units)
	return out
}

// sortUnitsByFile imposes the deterministic post-join order of spec.md §5,
// whether or not useParallelFrontends is set: translation units sorted by
// source file path, independent of completion order.
func (r *TranslationResult) sortUnitsByFile() {
	r.mu.Lock()
	defer r.mu.Unlock()
	units := r.units
	for i := 1; i < len(units); i++ {
		for j := i; j > 0 && units[j-1].Location.File > units[j].Location.File; j-- {
			units[j-1], units[j] = units[j], units[j-1]
		}
	}
}
