package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cpgkit/cpgkit/internal/cpgerr"
)

// builderSeed is the on-disk shape LoadBuilderSeed reads. It covers the
// subset of builder state that plausibly lives in a project file: symbol
// macros, include policy, and flags. Passes, languages and software
// components are still wired in Go, by the CLI or caller — spec.md §6
// explicitly defers "configuration file / environment" to the wrapper
// outside this core, so this loader only ever seeds a Builder the caller
// already has, never constructs a TranslationConfiguration on its own.
type builderSeed struct {
	SymbolMacros     map[string]string `yaml:"symbolMacros"`
	IncludePaths     []string          `yaml:"includePaths"`
	IncludeWhitelist []string          `yaml:"includeWhitelist"`
	IncludeBlocklist []string          `yaml:"includeBlocklist"`
	LoadIncludes     bool              `yaml:"loadIncludes"`
	Flags            Flags             `yaml:"flags"`
}

// LoadBuilderSeed reads a YAML project file and applies its contents to
// b, returning b for chaining. It is optional: nothing in the core ever
// calls it implicitly.
func LoadBuilderSeed(b *Builder, path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cpgerr.NewConfigurationError("reading builder seed %q: %v", path, err)
	}
	var seed builderSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, cpgerr.NewConfigurationError("parsing builder seed %q: %v", path, err)
	}

	for k, v := range seed.SymbolMacros {
		b.WithSymbolMacro(k, v)
	}
	b.WithIncludePaths(seed.IncludePaths...)
	b.WithIncludeWhitelist(seed.IncludeWhitelist...)
	b.WithIncludeBlocklist(seed.IncludeBlocklist...)
	b.WithLoadIncludes(seed.LoadIncludes)
	b.WithFlags(seed.Flags)
	return b, nil
}
