// Package corectx defines the minimal interfaces that frontends and passes
// depend on to read/write the shared translation state (spec.md §3
// TranslationContext, §4.B Scope & Type Manager). It exists purely to break
// an import cycle: internal/lang and internal/passdesc need a context type
// to pass to Frontend.Parse / Pass.Accept, but the concrete context
// (internal/translation.Context) in turn needs to know about languages and
// passes to build the configuration. Depending on an interface defined at
// the bottom of the graph — the same shape as database/sql's driver
// package — lets both sides depend downward only.
package corectx

import "github.com/cpgkit/cpgkit/internal/cpgnode"

// Severity classifies a Diagnostic (spec.md §7).
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is one reported issue: a parse failure, a resolution miss, or
// an informational note. TranslationResult accumulates these even on
// overall success (spec.md §7).
type Diagnostic struct {
	Severity  Severity
	Component string // "frontend:go", "pass:symbol-resolver", ...
	Message   string
	File      string
}

// TypeDescriptor is the structural key the Type Manager interns types by.
// Two descriptors with equal fields resolve to the same canonical Type node
// (spec.md §4.B "de-duplicates by structural key").
type TypeDescriptor struct {
	Name     string
	Language string
	// Qualifier disambiguates otherwise-same-named types across packages
	// or modules (e.g. a fully qualified import path).
	Qualifier string
}

// ScopeCursor is a private stack-discipline handle onto the shared scope
// tree (spec.md §4.B "enterScope/leaveScope"). It is not itself
// goroutine-safe — a cursor belongs to exactly one frontend invocation or
// one pass, never shared across goroutines — which is what lets many
// cursors walk the same scope tree concurrently without a global lock
// guarding the stack itself.
type ScopeCursor interface {
	// Enter pushes scope and returns it for convenience.
	Enter(scope *cpgnode.Node) *cpgnode.Node
	// Leave pops the top of this cursor's stack. It fails if scope is not
	// the current top (spec.md §4.B "fails if leaving a non-top scope").
	Leave(scope *cpgnode.Node) error
	// Current returns the innermost entered scope, or nil if the cursor's
	// stack is empty.
	Current() *cpgnode.Node
}

// TranslationContext is the bag every frontend and pass receives. One
// instance exists per translation and is shared by all concurrent
// frontends/passes; implementations must be safe for concurrent use
// (spec.md §5).
type TranslationContext interface {
	// Arena is the node store for the current translation.
	Arena() *cpgnode.Arena

	// NewScope creates a Scope node as a child of parent (InvalidIdentity
	// for the root) and registers its (initially empty) symbol table.
	NewScope(parent cpgnode.Identity) *cpgnode.Node

	// NewScopeCursor returns a fresh, unshared stack-discipline cursor
	// (spec.md §4.B "enterScope/leaveScope"). Each frontend invocation and
	// each pass obtains its own cursor, so concurrent frontends/passes
	// never contend on a single global scope stack — only the underlying
	// per-scope symbol tables are shared, and those are independently
	// locked (spec.md §5).
	NewScopeCursor() ScopeCursor

	// Declare registers decl under scope's local symbol table.
	Declare(scope cpgnode.Identity, name string, decl cpgnode.Identity)

	// Resolve returns the innermost declaration named `name` visible from
	// `scope`, or ok=false if none is found.
	Resolve(name string, scope cpgnode.Identity) (decl *cpgnode.Node, ok bool)

	// RegisterType interns a type descriptor, returning the canonical
	// Type node (creating one on first sight).
	RegisterType(d TypeDescriptor) *cpgnode.Node

	// ReportDiagnostic records a Diagnostic on the TranslationResult.
	ReportDiagnostic(d Diagnostic)

	// Cancelled reports whether the cooperative cancellation token has
	// been set. Frontends check it between files; the Pass Runner checks
	// it between groups and between passes within a group (spec.md §5).
	Cancelled() bool

	// CodeInNodes reports the TranslationConfiguration.CodeInNodes flag,
	// so frontends know whether to populate Location.Code.
	CodeInNodes() bool

	// FailOnError reports the TranslationConfiguration.FailOnError flag.
	FailOnError() bool

	// InferenceEnabled reports whether InferenceConfiguration.Enabled is
	// set, consulted by Resolve/RegisterType callers that want to decide
	// whether a miss should trigger inference (spec.md SPEC_FULL §3).
	InferenceEnabled() bool
}
