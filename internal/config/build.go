package config

import (
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/passdesc"
	"github.com/cpgkit/cpgkit/internal/scheduler"
)

// Build performs the four steps of spec.md §4.D, then freezes the result.
func (b *Builder) Build() (*TranslationConfiguration, error) {
	if len(b.components) == 0 {
		return nil, cpgerr.NewConfigurationError("no source files registered")
	}
	if b.languages.Len() == 0 {
		return nil, cpgerr.NewConfigurationError("no language registered")
	}

	// Step 1: apply each language's declared extra passes, but only if
	// this builder was seeded with the canonical default sequence —
	// otherwise a bespoke pipeline would silently gain passes it never
	// asked for (spec.md §4.D step 1).
	if b.seededDefaults {
		for _, l := range b.languages.All() {
			for _, name := range l.ExtraPasses {
				if _, already := b.passes[name]; already {
					continue
				}
				p, ok := b.resolve(name)
				if !ok {
					return nil, cpgerr.NewConfigurationError(
						"language %q declares extra pass %q with no known builtin", l.Name, name)
				}
				if err := b.RegisterPass(p); err != nil {
					return nil, err
				}
			}
		}
	}

	// Step 2: apply each language's declared replace-pass rules, before
	// scheduling, so dependents are rewritten onto the replacement.
	for _, l := range b.languages.All() {
		for _, rule := range l.ReplacePasses {
			if _, has := b.passes[rule.Old]; !has {
				continue
			}
			p, ok := b.resolve(rule.New)
			if !ok {
				return nil, cpgerr.NewConfigurationError(
					"language %q replaces pass %q with unknown %q", l.Name, rule.Old, rule.New)
			}
			b.ReplacePass(rule.Old, p)
		}
	}

	if err := validateSchemas(b.passes, b.passConfig); err != nil {
		return nil, err
	}

	ordered := make([]passdesc.Pass, 0, len(b.passOrder))
	for _, name := range b.passOrder {
		if p, ok := b.passes[name]; ok {
			ordered = append(ordered, p)
		}
	}

	schedule, err := scheduler.Schedule(ordered, scheduler.Resolver(b.resolve))
	if err != nil {
		return nil, err
	}

	cfg := &TranslationConfiguration{
		SymbolMacros:       copyStringMap(b.symbolMacros),
		SoftwareComponents: copyComponents(b.components, b.componentOrder),
		ComponentOrder:     append([]string{}, b.componentOrder...),
		TopLevel:           b.topLevel,
		IncludePaths:       append([]string{}, b.includePaths...),
		IncludeWhitelist:   append([]string{}, b.includeWhitelist...),
		IncludeBlocklist:   append([]string{}, b.includeBlocklist...),
		LoadIncludes:       b.loadIncludes,
		Schedule:           schedule,
		Languages:          b.languages.All(),
		PassConfig:         copyPassConfig(b.passConfig),
		Flags:              b.flags,
		Inference:          b.inference,
	}
	return cfg, nil
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyComponents(m map[string][]string, order []string) map[string][]string {
	out := make(map[string][]string, len(m))
	for _, name := range order {
		files := m[name]
		cp := make([]string, len(files))
		copy(cp, files)
		out[name] = cp
	}
	return out
}

func copyPassConfig(m map[string]map[string]any) map[string]map[string]any {
	out := make(map[string]map[string]any, len(m))
	for k, v := range m {
		inner := make(map[string]any, len(v))
		for ik, iv := range v {
			inner[ik] = iv
		}
		out[k] = inner
	}
	return out
}
