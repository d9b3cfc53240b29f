// Package cpgnode defines the graph node and edge taxonomy shared by every
// frontend and pass: a closed set of node kinds, a labeled edge set, and the
// source-location record attached to each node. Nothing in this package
// knows about languages, passes, or scheduling — it is the leaf of the
// dependency graph.
package cpgnode

// Kind is the closed taxonomy of graph node kinds. New kinds require a
// deliberate addition here; frontends and passes dispatch on Kind via a
// switch, never via type assertions on a class hierarchy.
type Kind string

const (
	KindTranslationUnit Kind = "TranslationUnit"
	KindNamespaceDecl    Kind = "NamespaceDecl"
	KindFunctionDecl     Kind = "FunctionDecl"
	KindMethodDecl       Kind = "MethodDecl"
	KindVariableDecl     Kind = "VariableDecl"
	KindParamDecl        Kind = "ParamDecl"
	KindRecordDecl       Kind = "RecordDecl" // class / struct / interface / enum
	KindFieldDecl        Kind = "FieldDecl"
	KindType             Kind = "Type"
	KindScope            Kind = "Scope"
	KindCallExpr         Kind = "CallExpr"
	KindLiteralExpr      Kind = "LiteralExpr"
	KindReferenceExpr    Kind = "ReferenceExpr"
	KindBinaryOp         Kind = "BinaryOp"
	KindUnaryOp          Kind = "UnaryOp"
	KindIfStmt           Kind = "IfStmt"
	KindLoopStmt         Kind = "LoopStmt"
	KindReturnStmt       Kind = "ReturnStmt"
	KindBlockStmt        Kind = "BlockStmt"
	KindImportDecl       Kind = "ImportDecl"
	KindUnknown          Kind = "Unknown"
)

// EdgeKind is the closed taxonomy of labeled, directed relations between
// nodes.
type EdgeKind string

const (
	EdgeAST        EdgeKind = "AST"        // structural containment, parent -> child
	EdgeEOG        EdgeKind = "EOG"        // evaluation-order graph, execution predecessor -> successor
	EdgeDFG        EdgeKind = "DFG"        // data-flow graph, value producer -> consumer
	EdgeInvoke     EdgeKind = "INVOKES"    // call site -> resolved callee
	EdgeUsesType   EdgeKind = "USES_TYPE"  // declaration/expression -> type
	EdgeExtends    EdgeKind = "EXTENDS"    // record -> base record (type hierarchy)
	EdgeImplements EdgeKind = "IMPLEMENTS" // record -> interface
	EdgeDeclares   EdgeKind = "DECLARES"   // scope -> declaration owned by it
	EdgeReferences EdgeKind = "REFERENCES" // usage -> declaration it resolves to
	EdgeImports    EdgeKind = "IMPORTS"    // translation unit -> imported module
)

// allowedOutgoing restricts which edge kinds a node kind may originate,
// matching spec.md §4.A ("each kind declares its allowed outgoing edge
// labels"). Lookups not present here are treated as unrestricted (true) —
// the taxonomy purposefully does not try to model every dialect of every
// supported language to the byte.
var allowedOutgoing = map[Kind]map[EdgeKind]bool{
	KindCallExpr: {
		EdgeAST: true, EdgeEOG: true, EdgeDFG: true, EdgeInvoke: true,
	},
	KindRecordDecl: {
		EdgeAST: true, EdgeDeclares: true, EdgeExtends: true, EdgeImplements: true, EdgeUsesType: true,
	},
	KindReferenceExpr: {
		EdgeAST: true, EdgeEOG: true, EdgeDFG: true, EdgeReferences: true,
	},
}

// AllowsEdge reports whether a node of the given kind may originate an edge
// of the given kind. Kinds with no explicit entry allow any edge: the
// taxonomy only constrains the node kinds where over-linking would be a
// clear graph-shape bug.
func AllowsEdge(from Kind, edge EdgeKind) bool {
	allowed, ok := allowedOutgoing[from]
	if !ok {
		return true
	}
	return allowed[edge]
}
