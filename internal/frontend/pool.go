// Package frontend implements the Frontend Runner (spec.md §4.F) plus the
// concrete LanguageFrontend bodies: a generic tree-sitter-backed frontend
// driven by lang.NodeTypeSpec tables, and a native go/parser path for Go.
package frontend

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// parserPool pools tree_sitter.Parser instances for one grammar, exactly
// the pattern the teacher's internal/parser/parser.go uses to avoid a
// per-file parser allocation.
type parserPool struct {
	tsLanguage *tree_sitter.Language
	pool       sync.Pool
}

func newParserPool(tsLanguage *tree_sitter.Language) *parserPool {
	p := &parserPool{tsLanguage: tsLanguage}
	p.pool.New = func() any {
		parser := tree_sitter.NewParser()
		if err := parser.SetLanguage(tsLanguage); err != nil {
			panic(fmt.Sprintf("frontend: set language: %v", err))
		}
		return parser
	}
	return p
}

// parse parses source and returns the resulting tree. Callers must call
// tree.Close() when done.
func (p *parserPool) parse(source []byte) (*tree_sitter.Tree, error) {
	parser, _ := p.pool.Get().(*tree_sitter.Parser)
	if parser == nil {
		return nil, fmt.Errorf("frontend: failed to acquire parser")
	}
	tree := parser.Parse(source, nil)
	p.pool.Put(parser)
	if tree == nil {
		return nil, fmt.Errorf("frontend: parse returned nil tree")
	}
	return tree, nil
}

// walk traverses an AST in depth-first order, matching
// internal/parser.Walk's contract: returning false from fn skips children.
func walk(node *tree_sitter.Node, fn func(*tree_sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			walk(child, fn)
		}
	}
}

func nodeText(n *tree_sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

func toSet(vals []string) map[string]bool {
	set := make(map[string]bool, len(vals))
	for _, v := range vals {
		set[v] = true
	}
	return set
}
