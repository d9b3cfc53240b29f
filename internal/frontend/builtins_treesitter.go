package frontend

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"

	"github.com/cpgkit/cpgkit/internal/lang"
)

// Per-language node-kind tables below are carried over from the
// multi-language indexer this module was adapted from — real
// tree-sitter grammar knowledge, independent of the orchestration engine
// sitting on top of it.
func init() {
	register("go-treesitter", &lang.Language{
		Name:               "Go",
		FileExtensions:     []string{".go"},
		NamespaceSeparator:  ".",
		BuiltinTypes:        []string{"bool", "string", "int", "int64", "float64", "byte", "rune", "error"},
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes:   []string{"function_declaration", "method_declaration"},
			ClassNodeTypes:      []string{"type_spec", "type_alias"},
			FieldNodeTypes:      []string{"field_declaration"},
			ModuleNodeTypes:     []string{"source_file"},
			CallNodeTypes:       []string{"call_expression"},
			ImportNodeTypes:     []string{"import_declaration"},
			VariableNodeTypes:   []string{"var_declaration", "const_declaration"},
			AssignmentNodeTypes: []string{"assignment_statement", "short_var_declaration"},
			BranchingNodeTypes: []string{
				"if_statement", "for_statement", "switch_expression",
				"select_statement", "case_clause", "default_clause",
			},
		},
	}, tree_sitter.NewLanguage(tree_sitter_go.Language()))

	register("python", &lang.Language{
		Name:               "Python",
		FileExtensions:     []string{".py"},
		NamespaceSeparator: ".",
		BuiltinTypes:       []string{"int", "float", "str", "bool", "bytes", "list", "dict", "tuple", "set"},
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_definition"},
			ClassNodeTypes:    []string{"class_definition"},
			ModuleNodeTypes:   []string{"module"},
			CallNodeTypes:     []string{"call", "with_statement"},
			ImportNodeTypes:   []string{"import_statement", "import_from_statement"},
			PackageIndicators: []string{"__init__.py"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_python.Language()))

	register("javascript", &lang.Language{
		Name:               "JavaScript",
		FileExtensions:     []string{".js", ".jsx"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"function_declaration", "generator_function_declaration",
				"function_expression", "arrow_function", "method_definition",
			},
			ClassNodeTypes:  []string{"class_declaration", "class"},
			ModuleNodeTypes: []string{"program"},
			CallNodeTypes:   []string{"call_expression"},
			ImportNodeTypes: []string{"import_statement", "lexical_declaration", "export_statement"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_javascript.Language()))

	register("typescript", &lang.Language{
		Name:               "TypeScript",
		FileExtensions:     []string{".ts"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"function_declaration", "generator_function_declaration", "function_expression",
				"arrow_function", "method_definition", "function_signature",
			},
			ClassNodeTypes: []string{
				"class_declaration", "class", "abstract_class_declaration",
				"enum_declaration", "interface_declaration", "type_alias_declaration", "internal_module",
			},
			ModuleNodeTypes: []string{"program"},
			CallNodeTypes:   []string{"call_expression"},
			ImportNodeTypes: []string{"import_statement", "lexical_declaration", "export_statement"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()))

	register("tsx", &lang.Language{
		Name:               "TSX",
		FileExtensions:     []string{".tsx"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"function_declaration", "generator_function_declaration", "function_expression",
				"arrow_function", "method_definition", "function_signature",
			},
			ClassNodeTypes: []string{
				"class_declaration", "class", "abstract_class_declaration",
				"enum_declaration", "interface_declaration", "type_alias_declaration", "internal_module",
			},
			ModuleNodeTypes:   []string{"program"},
			CallNodeTypes:     []string{"call_expression"},
			ImportNodeTypes:   []string{"import_statement", "lexical_declaration", "export_statement"},
			VariableNodeTypes: []string{"lexical_declaration", "variable_declaration"},
			BranchingNodeTypes: []string{
				"if_statement", "for_statement", "for_in_statement", "while_statement",
				"switch_statement", "case_clause", "try_statement", "catch_clause",
			},
		},
	}, tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()))

	register("java", &lang.Language{
		Name:               "Java",
		FileExtensions:     []string{".java"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"method_declaration", "constructor_declaration"},
			ClassNodeTypes: []string{
				"class_declaration", "interface_declaration", "enum_declaration",
				"annotation_type_declaration", "record_declaration",
			},
			FieldNodeTypes:  []string{"field_declaration"},
			ModuleNodeTypes: []string{"program"},
			CallNodeTypes:   []string{"method_invocation"},
			ImportNodeTypes: []string{"import_declaration"},
			BranchingNodeTypes: []string{
				"if_statement", "for_statement", "enhanced_for_statement", "while_statement",
				"switch_expression", "switch_block_statement_group", "try_statement", "catch_clause",
			},
			AssignmentNodeTypes: []string{"assignment_expression"},
			ThrowNodeTypes:      []string{"throw_statement"},
			DecoratorNodeTypes:  []string{"marker_annotation", "annotation"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_java.Language()))

	register("cpp", &lang.Language{
		Name:               "C++",
		FileExtensions:     []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh", ".ixx", ".cppm", ".ccm"},
		NamespaceSeparator: "::",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"function_definition", "declaration", "field_declaration",
				"template_declaration", "lambda_expression",
			},
			ClassNodeTypes:  []string{"class_specifier", "struct_specifier", "union_specifier", "enum_specifier"},
			FieldNodeTypes:  []string{"field_declaration"},
			ModuleNodeTypes: []string{"translation_unit", "namespace_definition", "linkage_specification", "declaration"},
			CallNodeTypes:   []string{"call_expression", "field_expression", "subscript_expression"},
			ImportNodeTypes: []string{"preproc_include"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_cpp.Language()))

	register("c", &lang.Language{
		Name:               "C",
		FileExtensions:     []string{".c"},
		NamespaceSeparator: "::",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_definition"},
			ClassNodeTypes:    []string{"struct_specifier", "enum_specifier", "union_specifier"},
			FieldNodeTypes:    []string{"field_declaration"},
			ModuleNodeTypes:   []string{"translation_unit"},
			CallNodeTypes:     []string{"call_expression"},
			ImportNodeTypes:   []string{"preproc_include"},
			BranchingNodeTypes: []string{
				"if_statement", "for_statement", "while_statement",
				"do_statement", "switch_statement", "case_statement",
			},
			VariableNodeTypes:   []string{"declaration"},
			AssignmentNodeTypes: []string{"assignment_expression"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_c.Language()))

	register("csharp", &lang.Language{
		Name:               "C#",
		FileExtensions:     []string{".cs"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"destructor_declaration", "local_function_statement", "function_pointer_type",
				"constructor_declaration", "anonymous_method_expression", "lambda_expression", "method_declaration",
			},
			ClassNodeTypes:  []string{"class_declaration", "struct_declaration", "enum_declaration", "interface_declaration"},
			ModuleNodeTypes: []string{"compilation_unit"},
			CallNodeTypes:   []string{"invocation_expression"},
			ImportNodeTypes: []string{"using_directive"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_c_sharp.Language()))

	register("php", &lang.Language{
		Name:               "PHP",
		FileExtensions:     []string{".php"},
		NamespaceSeparator: "\\",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{
				"function_static_declaration", "anonymous_function",
				"function_definition", "arrow_function", "method_declaration",
			},
			ClassNodeTypes:  []string{"trait_declaration", "enum_declaration", "interface_declaration", "class_declaration"},
			ModuleNodeTypes: []string{"program"},
			CallNodeTypes: []string{
				"member_call_expression", "scoped_call_expression",
				"function_call_expression", "nullsafe_member_call_expression",
			},
			BranchingNodeTypes: []string{
				"if_statement", "for_statement", "foreach_statement", "while_statement",
				"switch_statement", "case_statement", "try_statement", "catch_clause",
			},
			VariableNodeTypes:   []string{"expression_statement"},
			AssignmentNodeTypes: []string{"assignment_expression"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_php.LanguagePHPOnly()))

	register("lua", &lang.Language{
		Name:               "Lua",
		FileExtensions:     []string{".lua"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_declaration", "function_definition"},
			ModuleNodeTypes:   []string{"chunk"},
			CallNodeTypes:     []string{"function_call"},
			ImportNodeTypes:   []string{"function_call"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_lua.Language()))

	register("scala", &lang.Language{
		Name:               "Scala",
		FileExtensions:     []string{".scala", ".sc"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_definition", "function_declaration"},
			ClassNodeTypes:    []string{"class_definition", "object_definition", "trait_definition"},
			ModuleNodeTypes:   []string{"compilation_unit"},
			CallNodeTypes:     []string{"call_expression", "generic_function", "field_expression", "infix_expression"},
			ImportNodeTypes:   []string{"import_declaration"},
			BranchingNodeTypes: []string{
				"if_expression", "for_expression", "while_expression",
				"match_expression", "case_clause", "try_expression", "catch_clause",
			},
			VariableNodeTypes:   []string{"val_definition", "var_definition", "val_declaration", "var_declaration"},
			AssignmentNodeTypes: []string{"assignment_expression"},
			ThrowNodeTypes:      []string{"throw_expression"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_scala.Language()))

	register("rust", &lang.Language{
		Name:               "Rust",
		FileExtensions:     []string{".rs"},
		NamespaceSeparator: "::",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_item", "function_signature_item", "closure_expression"},
			ClassNodeTypes: []string{
				"struct_item", "enum_item", "union_item", "trait_item", "impl_item", "type_item",
			},
			ModuleNodeTypes:   []string{"source_file", "mod_item"},
			CallNodeTypes:     []string{"call_expression", "macro_invocation"},
			ImportNodeTypes:   []string{"use_declaration", "extern_crate_declaration"},
			PackageIndicators: []string{"Cargo.toml"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_rust.Language()))

	register("kotlin", &lang.Language{
		Name:               "Kotlin",
		FileExtensions:     []string{".kt", ".kts"},
		NamespaceSeparator: ".",
		Spec: &lang.NodeTypeSpec{
			FunctionNodeTypes: []string{"function_declaration", "secondary_constructor", "anonymous_function"},
			ClassNodeTypes:    []string{"class_declaration", "object_declaration", "companion_object"},
			ModuleNodeTypes:   []string{"source_file"},
			CallNodeTypes:     []string{"call_expression", "navigation_expression"},
			ImportNodeTypes:   []string{"import"},
		},
	}, tree_sitter.NewLanguage(tree_sitter_kotlin.Language()))
}

// register binds a builtin Language to a tree-sitter grammar via its
// NewFrontend factory and adds it to the process-wide builtin catalog
// (internal/lang.RegisterBuiltin).
func register(name string, l *lang.Language, tsLanguage *tree_sitter.Language) {
	l.NewFrontend = func(*lang.Language) (lang.Frontend, error) {
		return NewTreeSitterFrontend(l, tsLanguage)
	}
	lang.RegisterBuiltin(name, func() *lang.Language { return l })
}
