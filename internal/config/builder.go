package config

import (
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/lang"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// PassResolver constructs a pass by its registered name. A Builder needs
// one whenever it has to instantiate a pass it was not handed directly:
// a missing hard dependency (scheduler.Resolver), or a language's
// declared extra-pass / replace-pass name.
type PassResolver func(name string) (passdesc.Pass, bool)

// Builder accumulates pass classes, replacement rules, languages, flags
// and include lists. TranslationConfiguration is reachable only through
// Builder.Build (spec.md §4.D "constructed only through a builder").
type Builder struct {
	resolve PassResolver

	passes       map[string]passdesc.Pass
	passOrder    []string
	seededDefaults bool

	languages *lang.Registry

	symbolMacros map[string]string
	components   map[string][]string
	componentOrder []string
	topLevel     string

	includePaths     []string
	includeWhitelist []string
	includeBlocklist []string
	loadIncludes     bool

	passConfig map[string]map[string]any

	flags     Flags
	inference InferenceConfiguration
}

// NewBuilder returns an empty builder. resolve is consulted for
// missing-hard-dependency injection (spec.md §4.E step 2) and for
// language-declared extra/replace pass names; pass nil if the caller
// intends to register every pass explicitly.
func NewBuilder(resolve PassResolver) *Builder {
	if resolve == nil {
		resolve = func(string) (passdesc.Pass, bool) { return nil, false }
	}
	return &Builder{
		resolve:      resolve,
		passes:       make(map[string]passdesc.Pass),
		languages:    lang.NewRegistry(),
		symbolMacros: make(map[string]string),
		components:   make(map[string][]string),
		passConfig:   make(map[string]map[string]any),
	}
}

// RegisterPass adds p to the pass set. Re-registering a pass under the
// same name is idempotent (spec.md §4.D "duplicate pass registration is
// idempotent"); the later registration wins, matching Registry.Register's
// last-wins rule.
func (b *Builder) RegisterPass(p passdesc.Pass) error {
	d := p.Descriptor()
	for _, dep := range d.HardDeps {
		if dep == d.Name {
			return cpgerr.NewConfigurationError("pass %q depends on itself", d.Name)
		}
	}
	for _, dep := range d.SoftDeps {
		if dep == d.Name {
			return cpgerr.NewConfigurationError("pass %q depends on itself", d.Name)
		}
	}
	if _, dup := b.passes[d.Name]; !dup {
		b.passOrder = append(b.passOrder, d.Name)
	}
	b.passes[d.Name] = p
	return nil
}

// SeedDefaultPasses registers the canonical default pass sequence
// (spec.md §4.D, resolved via the builder's PassResolver) and marks this
// builder as default-seeded, which is what gates whether languages' extra
// passes get applied in Build (spec.md §4.D step 1).
func (b *Builder) SeedDefaultPasses(names ...string) error {
	b.seededDefaults = true
	for _, name := range names {
		p, ok := b.resolve(name)
		if !ok {
			return cpgerr.NewConfigurationError("default pass %q has no known builtin", name)
		}
		if err := b.RegisterPass(p); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLanguage adds l to the builder's language registry.
func (b *Builder) RegisterLanguage(l *lang.Language) {
	b.languages.Register(l)
}

// RegisterLanguageByName registers a builtin language by its registry key.
func (b *Builder) RegisterLanguageByName(name string) error {
	return b.languages.RegisterByName(name)
}

// WithSymbolMacro adds one entry to the symbol macro map.
func (b *Builder) WithSymbolMacro(symbol, replacement string) *Builder {
	b.symbolMacros[symbol] = replacement
	return b
}

// WithSoftwareComponent registers a named component and its ordered file
// list, preserving first-registration order across components (spec.md
// §4.F "for each software component in insertion order").
func (b *Builder) WithSoftwareComponent(name string, files []string) *Builder {
	if _, exists := b.components[name]; !exists {
		b.componentOrder = append(b.componentOrder, name)
	}
	b.components[name] = files
	return b
}

// WithTopLevel sets the top-level analysis directory.
func (b *Builder) WithTopLevel(dir string) *Builder {
	b.topLevel = dir
	return b
}

// WithIncludePaths / WithIncludeWhitelist / WithIncludeBlocklist /
// WithLoadIncludes set the include-graph policy (spec.md §3, §4.F).
func (b *Builder) WithIncludePaths(paths ...string) *Builder {
	b.includePaths = append(b.includePaths, paths...)
	return b
}

func (b *Builder) WithIncludeWhitelist(patterns ...string) *Builder {
	b.includeWhitelist = append(b.includeWhitelist, patterns...)
	return b
}

func (b *Builder) WithIncludeBlocklist(patterns ...string) *Builder {
	b.includeBlocklist = append(b.includeBlocklist, patterns...)
	return b
}

func (b *Builder) WithLoadIncludes(v bool) *Builder {
	b.loadIncludes = v
	return b
}

// WithPassConfig attaches opaque configuration for one pass, validated
// against that pass's optional JSON Schema at Build time (schema.go).
func (b *Builder) WithPassConfig(passName string, cfg map[string]any) *Builder {
	b.passConfig[passName] = cfg
	return b
}

// WithFlags replaces the flag bundle.
func (b *Builder) WithFlags(f Flags) *Builder {
	b.flags = f
	return b
}

// WithInference replaces the inference configuration.
func (b *Builder) WithInference(i InferenceConfiguration) *Builder {
	b.inference = i
	return b
}

// ReplacePass rewires old to new across the entire pass set, independent
// of any per-language declaration: every remaining pass's HardDeps,
// SoftDeps and Before entries naming old are rewritten to name new
// (spec.md §4.D edge case "replacement happens before scheduling so
// dependencies declared on the replaced class are rewritten").
func (b *Builder) ReplacePass(old string, new passdesc.Pass) {
	delete(b.passes, old)
	name := new.Descriptor().Name
	if _, dup := b.passes[name]; !dup {
		b.passOrder = append(b.passOrder, name)
	}
	b.passes[name] = new
	b.rewriteDeps(old, name)
}

func (b *Builder) rewriteDeps(old, new string) {
	for key, p := range b.passes {
		d := p.Descriptor()
		changed := false
		replaceIn := func(s []string) []string {
			for i, v := range s {
				if v == old {
					s[i] = new
					changed = true
				}
			}
			return s
		}
		d.HardDeps = replaceIn(append([]string{}, d.HardDeps...))
		d.SoftDeps = replaceIn(append([]string{}, d.SoftDeps...))
		d.Before = replaceIn(append([]string{}, d.Before...))
		if changed {
			b.passes[key] = rewiredPass{Pass: p, descriptor: d}
		}
	}
}

// rewiredPass overrides Descriptor() on an existing pass after a
// ReplacePass rewrite touched its dependency lists, without disturbing
// Accept's behavior.
type rewiredPass struct {
	passdesc.Pass
	descriptor passdesc.Descriptor
}

func (r rewiredPass) Descriptor() passdesc.Descriptor { return r.descriptor }
