// Package config implements the Translation Configuration (spec.md §4.D):
// an immutable configuration object constructed only through a builder.
package config

import (
	"github.com/cpgkit/cpgkit/internal/lang"
	"github.com/cpgkit/cpgkit/internal/scheduler"
)

// InferenceConfiguration controls inference for unresolved types. Only
// Enabled is read, by the TypeResolver pass: with it set, a declaration
// with no type name is bound to a placeholder "<inferred>" Type. The other
// three fields are carried but read by nothing, and no declaration is
// ever synthesized.
type InferenceConfiguration struct {
	Enabled                   bool
	InferRecordDeclaration    bool
	InferFunctionDeclaration  bool
	GuessCastExpressions      bool
}

// Flags bundles the boolean toggles of spec.md §3.
type Flags struct {
	DebugParser          bool
	FailOnError           bool
	CodeInNodes           bool
	ProcessAnnotations    bool
	UseUnityBuild         bool
	UseParallelFrontends  bool
	UseParallelPasses     bool
	MatchCommentsToNodes  bool
	AddIncludesToGraph    bool
	DisableCleanup        bool
}

// TranslationConfiguration is immutable once returned by Builder.Build.
type TranslationConfiguration struct {
	SymbolMacros map[string]string

	// SoftwareComponents maps a component name to its ordered file list.
	// ComponentOrder preserves the builder's registration order, which the
	// Frontend Runner processes components in (spec.md §4.F).
	SoftwareComponents map[string][]string
	ComponentOrder     []string
	TopLevel           string

	IncludePaths  []string
	IncludeWhitelist []string
	IncludeBlocklist []string
	LoadIncludes     bool

	Schedule []scheduler.Group

	Languages []*lang.Language

	// PassConfig is opaque per-pass configuration, validated against an
	// optional JSON Schema the pass declares (internal/config/schema.go).
	PassConfig map[string]map[string]any

	Flags     Flags
	Inference InferenceConfiguration
}

// CompilationDatabase optionally maps a C/C++ source file to its include
// directives (spec.md §6 "Compilation database"), consumed only by the
// C/C++ frontend.
type CompilationDatabase map[string][]string
