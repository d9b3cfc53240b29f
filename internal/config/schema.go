package config

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// SchemaProvider is an optional interface a Pass may implement to declare
// the shape of its per-pass configuration map. Build validates
// PassConfig[name] against it, the way the jsonschema-go package is used
// elsewhere in the corpus to validate tool-call arguments before they
// reach handler code.
type SchemaProvider interface {
	ConfigSchema() *jsonschema.Schema
}

// Configurable is an optional interface a Pass may implement to receive its
// validated PassConfig entry before the Pass Runner ever calls Accept. A
// pass with no PassConfig entry is never configured, so its zero value
// (the default a scheduler.Resolver constructs) stays in effect.
type Configurable interface {
	Configure(cfg map[string]any)
}

// validateSchemas checks every registered pass's config against its
// declared schema, if any. A pass with no declared schema and a pass with
// no supplied config are both untouched — schemas are opt-in.
func validateSchemas(passes map[string]passdesc.Pass, cfg map[string]map[string]any) error {
	for name, p := range passes {
		provider, ok := p.(SchemaProvider)
		if !ok {
			continue
		}
		schema := provider.ConfigSchema()
		if schema == nil {
			continue
		}
		instance, hasConfig := cfg[name]
		if !hasConfig {
			continue
		}
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return cpgerr.NewConfigurationError("pass %q declares an invalid config schema: %v", name, err)
		}
		if err := resolved.Validate(instance); err != nil {
			return cpgerr.NewConfigurationError("pass %q config failed schema validation: %v", name, err)
		}
	}
	return nil
}
