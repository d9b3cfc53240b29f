// Package passdesc defines the Pass contract (spec.md §3 "Pass", §4.E
// "Pass Scheduler"). It depends only on internal/corectx so that passes,
// the scheduler, and internal/translation can all import it without
// forming a cycle through the concrete TranslationContext implementation.
package passdesc

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
)

// Pass transforms or annotates the graph built so far. A pass's Descriptor
// is fixed at construction and consulted by the Pass Scheduler before
// Accept is ever called.
type Pass interface {
	Descriptor() Descriptor
	Accept(ctx context.Context, tc corectx.TranslationContext) error
}

// Descriptor declares a pass's identity and its ordering relationship to
// other passes (spec.md §4.E). Name is the key other passes reference in
// HardDeps/SoftDeps/Before and that TranslationConfiguration replacement
// rules match against.
type Descriptor struct {
	Name string

	// HardDeps must run, and run before this pass, even if the caller never
	// registered them explicitly — the scheduler injects them transitively
	// (spec.md §4.E "hard dependency auto-injection").
	HardDeps []string
	// SoftDeps order this pass after the named pass only if that pass is
	// already present in the configuration; a missing soft dependency is
	// never injected (spec.md §4.E).
	SoftDeps []string
	// Before lists passes that must run after this one, the inverse
	// direction of a dependency edge (spec.md §6 "executeBefore").
	Before []string

	// First requests placement in the single executeFirst group, run alone
	// before every other group. At most one pass in a configuration may set
	// this (spec.md §4.E "too many first/last passes").
	First bool
	// Last requests placement in the single executeLast group, run alone
	// after every other group. At most one pass in a configuration may set
	// this.
	Last bool
}
