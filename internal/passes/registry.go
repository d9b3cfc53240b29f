// Package passes implements the canonical default pass set (spec.md §4.D):
// type-hierarchy resolver -> import resolver -> symbol resolver ->
// data-flow graph -> dynamic-invoke resolver -> evaluation-order graph ->
// type resolver -> control-flow-sensitive data-flow -> filename mapper.
// Order here is declared via HardDeps metadata, not list position — actual
// execution order is whatever internal/scheduler computes from it.
package passes

import "github.com/cpgkit/cpgkit/internal/passdesc"

// Names of the canonical default passes, exported so callers (the
// TranslationManager, config.Builder.SeedDefaultPasses, test code) can
// reference them without constructing instances directly.
const (
	NameTypeHierarchyResolver      = "type-hierarchy resolver"
	NameImportResolver             = "import resolver"
	NameSymbolResolver             = "symbol resolver"
	NameDataFlowGraph              = "data-flow graph"
	NameDynamicInvokeResolver      = "dynamic-invoke resolver"
	NameEvaluationOrderGraph       = "evaluation-order graph"
	NameTypeResolver               = "type resolver"
	NameControlFlowSensitiveDataFlow = "control-flow-sensitive data-flow"
	NameFilenameMapper             = "filename mapper"
)

// DefaultNames is the canonical declared sequence (spec.md §4.D), suitable
// for config.Builder.SeedDefaultPasses(passes.DefaultNames...).
var DefaultNames = []string{
	NameTypeHierarchyResolver,
	NameImportResolver,
	NameSymbolResolver,
	NameDataFlowGraph,
	NameDynamicInvokeResolver,
	NameEvaluationOrderGraph,
	NameTypeResolver,
	NameControlFlowSensitiveDataFlow,
	NameFilenameMapper,
}

// Resolve constructs the default pass registered under name, for use as a
// config.PassResolver / scheduler.Resolver. Each call returns a fresh
// instance; FilenameMapper, the one pass holding state (DefaultProject),
// gets it only later through Configure.
func Resolve(name string) (passdesc.Pass, bool) {
	switch name {
	case NameTypeHierarchyResolver:
		return TypeHierarchyResolver{}, true
	case NameImportResolver:
		return ImportResolver{}, true
	case NameSymbolResolver:
		return SymbolResolver{}, true
	case NameDataFlowGraph:
		return DataFlowGraph{}, true
	case NameDynamicInvokeResolver:
		return DynamicInvokeResolver{}, true
	case NameEvaluationOrderGraph:
		return EvaluationOrderGraph{}, true
	case NameTypeResolver:
		return TypeResolver{}, true
	case NameControlFlowSensitiveDataFlow:
		return ControlFlowSensitiveDataFlow{}, true
	case NameFilenameMapper:
		return &FilenameMapper{}, true
	default:
		return nil, false
	}
}
