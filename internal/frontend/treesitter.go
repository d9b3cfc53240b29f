package frontend

import (
	"context"
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/lang"
)

// TreeSitterFrontend is the generic LanguageFrontend (spec.md §6) for any
// Language carrying a *lang.NodeTypeSpec: it walks the parsed tree once
// and classifies every node purely by tree-sitter kind lookups into the
// spec's tables. There is no per-language Go code here — only the tables
// each builtin language file supplies.
type TreeSitterFrontend struct {
	language *lang.Language
	pool     *parserPool
}

// NewTreeSitterFrontend builds a Frontend for l backed by tsLanguage. Each
// builtin language's registration file supplies this as its
// lang.FrontendFactory.
func NewTreeSitterFrontend(l *lang.Language, tsLanguage *tree_sitter.Language) (lang.Frontend, error) {
	if l.Spec == nil {
		return nil, cpgerr.NewConfigurationError("language %q has no NodeTypeSpec for the generic tree-sitter frontend", l.Name)
	}
	return &TreeSitterFrontend{language: l, pool: newParserPool(tsLanguage)}, nil
}

// Parse implements lang.Frontend.
func (f *TreeSitterFrontend) Parse(ctx context.Context, tc corectx.TranslationContext, file string) (*cpgnode.Node, error) {
	source, err := os.ReadFile(file)
	if err != nil {
		return nil, &cpgerr.ParseError{File: file, Reason: err.Error()}
	}

	tree, err := f.pool.parse(source)
	if err != nil {
		return nil, &cpgerr.ParseError{File: file, Reason: err.Error()}
	}
	defer tree.Close()

	root := tc.NewScope(cpgnode.InvalidIdentity)
	cursor := tc.NewScopeCursor()
	cursor.Enter(root)
	defer cursor.Leave(root)

	unit := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindTranslationUnit, file, f.language.Name, cpgnode.Location{File: file})
	unit.ScopeID = root.ID
	tc.Arena().Add(unit)

	w := &walker{f: f, tc: tc, source: source, file: file, unit: unit, cursor: cursor}
	w.walkChildren(tree.RootNode())

	return unit, nil
}

// Cleanup implements lang.Frontend; the tree-sitter parser pool has
// nothing translation-scoped to release.
func (f *TreeSitterFrontend) Cleanup() error { return nil }

// walker carries the per-Parse-call state the recursive descent needs:
// the source bytes for text extraction, the running scope cursor, and the
// translation unit node. Every classified node gets its one AST parent
// (spec.md §3 invariant 2) directly: the unit, or for a field its record.
type walker struct {
	f      *TreeSitterFrontend
	tc     corectx.TranslationContext
	source []byte
	file   string
	unit   *cpgnode.Node
	cursor corectx.ScopeCursor
}

func (w *walker) spec() *lang.NodeTypeSpec { return w.f.language.Spec }

func (w *walker) location(n *tree_sitter.Node) cpgnode.Location {
	loc := cpgnode.Location{
		File:      w.file,
		StartLine: int(n.StartPosition().Row) + 1,
		StartCol:  int(n.StartPosition().Column) + 1,
		EndLine:   int(n.EndPosition().Row) + 1,
		EndCol:    int(n.EndPosition().Column) + 1,
	}
	if w.tc.CodeInNodes() {
		loc.Code = nodeText(n, w.source)
	}
	return loc
}

// walkChildren recurses over n's children, attaching an AST edge from the
// translation unit to every node it classifies and recursing into
// declarations with their own scope.
func (w *walker) walkChildren(n *tree_sitter.Node) {
	spec := w.spec()
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		switch {
		case toSet(spec.FunctionNodeTypes)[kind]:
			w.emitFunction(child)
		case toSet(spec.ClassNodeTypes)[kind]:
			w.emitRecord(child)
		case toSet(spec.CallNodeTypes)[kind]:
			w.emitCall(child)
			w.walkChildren(child)
		case toSet(spec.ImportNodeTypes)[kind]:
			w.emitImport(child)
		case toSet(spec.VariableNodeTypes)[kind]:
			w.emitVariable(child)
			w.walkChildren(child)
		default:
			w.walkChildren(child)
		}
	}
}

func (w *walker) emitFunction(n *tree_sitter.Node) {
	name := w.declName(n)
	fn := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindFunctionDecl, name, w.f.language.Name, w.location(n))
	fn.ScopeID = w.cursor.Current().ID
	fn.Properties["complexity"] = w.countBranching(n)
	w.tc.Arena().Add(fn)
	w.unit.AddEdge(cpgnode.EdgeAST, fn.ID)
	w.tc.Declare(fn.ScopeID, name, fn.ID)

	scope := w.tc.NewScope(fn.ScopeID)
	w.cursor.Enter(scope)
	fn.AddEdge(cpgnode.EdgeAST, scope.ID)
	w.walkChildren(n)
	_ = w.cursor.Leave(scope)
}

func (w *walker) emitRecord(n *tree_sitter.Node) {
	name := w.declName(n)
	rec := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindRecordDecl, name, w.f.language.Name, w.location(n))
	rec.ScopeID = w.cursor.Current().ID
	w.tc.Arena().Add(rec)
	w.unit.AddEdge(cpgnode.EdgeAST, rec.ID)
	w.tc.Declare(rec.ScopeID, name, rec.ID)

	scope := w.tc.NewScope(rec.ScopeID)
	w.cursor.Enter(scope)
	rec.AddEdge(cpgnode.EdgeAST, scope.ID)

	spec := w.spec()
	fields := toSet(spec.FieldNodeTypes)
	nested := toSet(append(append([]string{}, spec.FunctionNodeTypes...), spec.ClassNodeTypes...))
	walk(n, func(child *tree_sitter.Node) bool {
		if child.Id() == n.Id() {
			return true
		}
		if nested[child.Kind()] {
			return false
		}
		if fields[child.Kind()] {
			w.emitField(rec, child)
			return false
		}
		return true
	})
	w.walkChildren(n)
	_ = w.cursor.Leave(scope)
}

func (w *walker) emitField(rec *cpgnode.Node, n *tree_sitter.Node) {
	name := w.declName(n)
	field := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindFieldDecl, name, w.f.language.Name, w.location(n))
	field.ScopeID = rec.ScopeID
	w.tc.Arena().Add(field)
	rec.AddEdge(cpgnode.EdgeAST, field.ID)
}

func (w *walker) emitCall(n *tree_sitter.Node) {
	call := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindCallExpr, nodeText(n, w.source), w.f.language.Name, w.location(n))
	call.ScopeID = w.cursor.Current().ID
	w.tc.Arena().Add(call)
	w.unit.AddEdge(cpgnode.EdgeAST, call.ID)
}

func (w *walker) emitImport(n *tree_sitter.Node) {
	imp := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindImportDecl, nodeText(n, w.source), w.f.language.Name, w.location(n))
	imp.ScopeID = w.cursor.Current().ID
	w.tc.Arena().Add(imp)
	w.unit.AddEdge(cpgnode.EdgeImports, imp.ID)
}

func (w *walker) emitVariable(n *tree_sitter.Node) {
	name := w.declName(n)
	if n.ChildByFieldName("name") == nil {
		for i := uint(0); i < n.NamedChildCount(); i++ {
			if nameNode := n.NamedChild(i).ChildByFieldName("name"); nameNode != nil {
				name = nodeText(nameNode, w.source)
				break
			}
		}
	}
	v := cpgnode.NewNode(w.tc.Arena().NextID(), cpgnode.KindVariableDecl, name, w.f.language.Name, w.location(n))
	v.ScopeID = w.cursor.Current().ID
	w.tc.Arena().Add(v)
	w.unit.AddEdge(cpgnode.EdgeAST, v.ID)
	if name != "" {
		w.tc.Declare(v.ScopeID, name, v.ID)
	}
}

// declName extracts a declaration's name via tree-sitter's "name" field,
// falling back to the raw node text for grammars that expose it
// differently.
func (w *walker) declName(n *tree_sitter.Node) string {
	if nameNode := n.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, w.source)
	}
	return nodeText(n, w.source)
}

// countBranching counts branching AST nodes inside a declaration body, a
// cyclomatic-complexity proxy, matching the teacher's
// countBranchingNodes.
func (w *walker) countBranching(n *tree_sitter.Node) int {
	branching := toSet(w.spec().BranchingNodeTypes)
	count := 0
	walk(n, func(child *tree_sitter.Node) bool {
		if child.Id() == n.Id() {
			return true
		}
		if branching[child.Kind()] {
			count++
		}
		return true
	})
	return count
}
