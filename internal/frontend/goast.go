package frontend

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/lang"
)

// GoASTFrontend parses Go source with go/parser instead of tree-sitter,
// the second implementation of the "Go" language alongside
// TreeSitterFrontend — a realistic instance of §5's "multi-frontend
// coordination across heterogeneous... implementations of the same
// language". It uses astutil to normalize import groups before walking,
// so renamed/dot imports resolve to the same ImportDecl shape regardless
// of how the source grouped them.
type GoASTFrontend struct {
	language *lang.Language
	fset     *token.FileSet
}

// NewGoASTFrontend builds the native-AST Go frontend.
func NewGoASTFrontend(l *lang.Language) (lang.Frontend, error) {
	return &GoASTFrontend{language: l, fset: token.NewFileSet()}, nil
}

func (f *GoASTFrontend) Parse(ctx context.Context, tc corectx.TranslationContext, file string) (*cpgnode.Node, error) {
	mode := parser.ParseComments
	fileAST, err := parser.ParseFile(f.fset, file, nil, mode)
	if err != nil {
		return nil, &cpgerr.ParseError{File: file, Reason: err.Error()}
	}

	root := tc.NewScope(cpgnode.InvalidIdentity)
	cursor := tc.NewScopeCursor()
	cursor.Enter(root)
	defer cursor.Leave(root)

	unit := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindTranslationUnit, file, f.language.Name, f.nodeLocation(file, fileAST))
	unit.ScopeID = root.ID
	unit.Name = fileAST.Name.Name
	tc.Arena().Add(unit)

	// astutil.Imports groups imports the way goimports would, so two
	// files with differently-ordered import blocks still produce the
	// same ImportDecl set.
	for _, group := range astutil.Imports(f.fset, fileAST) {
		for _, spec := range group {
			path := ""
			if spec.Path != nil {
				path = spec.Path.Value
			}
			imp := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindImportDecl, path, f.language.Name, f.nodeLocation(file, spec))
			imp.ScopeID = root.ID
			tc.Arena().Add(imp)
			unit.AddEdge(cpgnode.EdgeImports, imp.ID)
		}
	}

	for _, decl := range fileAST.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			f.emitFunc(tc, unit, cursor, root, d)
		case *ast.GenDecl:
			f.emitGenDecl(tc, unit, root, d)
		}
	}

	return unit, nil
}

func (f *GoASTFrontend) emitFunc(tc corectx.TranslationContext, unit *cpgnode.Node, cursor corectx.ScopeCursor, parentScope *cpgnode.Node, d *ast.FuncDecl) {
	kind := cpgnode.KindFunctionDecl
	if d.Recv != nil {
		kind = cpgnode.KindMethodDecl
	}
	fn := cpgnode.NewNode(tc.Arena().NextID(), kind, d.Name.Name, f.language.Name, f.nodeLocation(unit.Location.File, d))
	fn.ScopeID = parentScope.ID
	fn.Properties["complexity"] = countBranchesGo(d.Body)
	tc.Arena().Add(fn)
	unit.AddEdge(cpgnode.EdgeAST, fn.ID)
	tc.Declare(fn.ScopeID, d.Name.Name, fn.ID)

	scope := tc.NewScope(fn.ScopeID)
	fn.AddEdge(cpgnode.EdgeAST, scope.ID)
	cursor.Enter(scope)
	for _, field := range d.Type.Params.List {
		for _, name := range field.Names {
			param := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindParamDecl, name.Name, f.language.Name, f.nodeLocation(unit.Location.File, name))
			param.ScopeID = scope.ID
			tc.Arena().Add(param)
			fn.AddEdge(cpgnode.EdgeAST, param.ID)
			tc.Declare(scope.ID, name.Name, param.ID)
		}
	}
	_ = cursor.Leave(scope)
}

func (f *GoASTFrontend) emitGenDecl(tc corectx.TranslationContext, unit *cpgnode.Node, scope *cpgnode.Node, d *ast.GenDecl) {
	if d.Tok != token.VAR && d.Tok != token.CONST && d.Tok != token.TYPE {
		return
	}
	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.ValueSpec:
			for _, name := range s.Names {
				v := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindVariableDecl, name.Name, f.language.Name, f.nodeLocation(unit.Location.File, name))
				v.ScopeID = scope.ID
				tc.Arena().Add(v)
				unit.AddEdge(cpgnode.EdgeAST, v.ID)
				tc.Declare(scope.ID, name.Name, v.ID)
			}
		case *ast.TypeSpec:
			rec := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindRecordDecl, s.Name.Name, f.language.Name, f.nodeLocation(unit.Location.File, s))
			rec.ScopeID = scope.ID
			tc.Arena().Add(rec)
			unit.AddEdge(cpgnode.EdgeAST, rec.ID)
			tc.Declare(scope.ID, s.Name.Name, rec.ID)
			if st, ok := s.Type.(*ast.StructType); ok {
				f.emitFields(tc, rec, st)
			}
		}
	}
}

func (f *GoASTFrontend) emitFields(tc corectx.TranslationContext, rec *cpgnode.Node, st *ast.StructType) {
	if st.Fields == nil {
		return
	}
	for _, field := range st.Fields.List {
		for _, name := range field.Names {
			fieldNode := cpgnode.NewNode(tc.Arena().NextID(), cpgnode.KindFieldDecl, name.Name, f.language.Name, f.nodeLocation(rec.Location.File, name))
			fieldNode.ScopeID = rec.ScopeID
			tc.Arena().Add(fieldNode)
			rec.AddEdge(cpgnode.EdgeAST, fieldNode.ID)
		}
	}
}

func (f *GoASTFrontend) nodeLocation(file string, n ast.Node) cpgnode.Location {
	start := f.fset.Position(n.Pos())
	end := f.fset.Position(n.End())
	return cpgnode.Location{
		File:      file,
		StartLine: start.Line,
		StartCol:  start.Column,
		EndLine:   end.Line,
		EndCol:    end.Column,
	}
}

func (f *GoASTFrontend) Cleanup() error { return nil }

// countBranchesGo is the native-AST equivalent of the tree-sitter
// frontend's branching-node count, used as the same cyclomatic-complexity
// proxy over *ast.BlockStmt instead of tree-sitter nodes.
func countBranchesGo(body *ast.BlockStmt) int {
	if body == nil {
		return 0
	}
	count := 0
	ast.Inspect(body, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt, *ast.CaseClause, *ast.CommClause:
			count++
		}
		return true
	})
	return count
}

func init() {
	l := &lang.Language{
		Name:               "Go",
		FileExtensions:     []string{".go"},
		NamespaceSeparator: ".",
		BuiltinTypes:       []string{"bool", "string", "int", "int64", "float64", "byte", "rune", "error"},
	}
	l.NewFrontend = func(*lang.Language) (lang.Frontend, error) { return NewGoASTFrontend(l) }
	lang.RegisterBuiltin("go", func() *lang.Language { return l })
}
