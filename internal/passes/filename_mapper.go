package passes

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// FilenameMapper stamps each TranslationUnit with its qualified name:
// project.dotted.path, with a trailing __init__ (Python package marker) or
// index (JS/TS module marker) path segment dropped so the package itself,
// not its entry file, owns the name. It has no dependencies, so it is safe
// to run first.
//
// DefaultProject is the fallback used for units with no "project" property
// of their own; it is set via Configure from the "defaultProject"
// PassConfig entry, validated against ConfigSchema at Builder.Build time.
type FilenameMapper struct {
	DefaultProject string
}

func (FilenameMapper) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{Name: NameFilenameMapper}
}

// ConfigSchema implements config.SchemaProvider.
func (FilenameMapper) ConfigSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"defaultProject": {Type: "string"},
		},
	}
}

// Configure implements config.Configurable.
func (m *FilenameMapper) Configure(cfg map[string]any) {
	if v, ok := cfg["defaultProject"].(string); ok {
		m.DefaultProject = v
	}
}

func (m FilenameMapper) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	fallback := m.DefaultProject
	if fallback == "" {
		fallback = "root"
	}
	for _, n := range tc.Arena().All() {
		if n.Kind != cpgnode.KindTranslationUnit {
			continue
		}
		project, _ := n.Properties["project"].(string)
		if project == "" {
			project = fallback
		}
		n.Properties["qualifiedName"] = moduleQualifiedName(project, n)
	}
	return nil
}

// moduleQualifiedName derives a TranslationUnit's qualified name from its
// own Location, not a raw path string: project, followed by its source
// path with the extension and path separators turned into dots, with a
// trailing __init__ or index segment dropped so a package's entry file
// resolves to the package's own name.
func moduleQualifiedName(project string, unit *cpgnode.Node) string {
	rel := strings.TrimSuffix(unit.Location.File, filepath.Ext(unit.Location.File))
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if last := len(parts) - 1; last >= 0 && (parts[last] == "__init__" || parts[last] == "index") {
		parts = parts[:last]
	}
	return strings.Join(append([]string{project}, parts...), ".")
}
