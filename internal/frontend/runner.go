package frontend

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cpgkit/cpgkit/internal/config"
	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/lang"
)

// ResultSink is the subset of TranslationResult the Frontend Runner
// writes to. Defined here, implemented there, so this package need not
// import internal/translation.
type ResultSink interface {
	AddUnit(u *cpgnode.Node)
}

// assignment is one (language, files) pair produced by partitioning a
// software component's file list (spec.md §4.F step 2).
type assignment struct {
	language *lang.Language
	files    []string
}

// Run drives every registered frontend over cfg's software components, in
// component insertion order (spec.md §4.F). It expands directories,
// applies the include whitelist/blocklist, partitions by language, orders
// C/C++ files by path when unity build is set (see unityMerge), and parses — concurrently across
// files when cfg.Flags.UseParallelFrontends is set.
func Run(ctx context.Context, cfg *config.TranslationConfiguration, registry *lang.Registry, tc corectx.TranslationContext, sink ResultSink) error {
	for _, name := range cfg.ComponentOrder {
		if tc.Cancelled() {
			return cpgerr.ErrCancelled
		}
		files, err := expand(cfg.SoftwareComponents[name], cfg)
		if err != nil {
			return err
		}
		for _, f := range files {
			if _, ok := longestMatch(f, registry); !ok {
				tc.ReportDiagnostic(corectx.Diagnostic{
					Severity:  corectx.SeverityInfo,
					Component: "frontend",
					Message:   "no registered language matches this file; skipped",
					File:      f,
				})
			}
		}
		for _, a := range partition(files, registry) {
			if cfg.Flags.UseUnityBuild {
				a.files = unityMerge(a)
			}
			if err := driveFrontend(ctx, a, tc, sink, cfg.Flags.UseParallelFrontends, cfg.Flags.FailOnError); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipDirs names directories a directory walk never descends into, even
// before the include whitelist/blocklist is consulted: build output and
// vendored dependencies are never source the caller meant to analyze.
var skipDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true, "bower_components": true,
	".venv": true, "venv": true, "__pycache__": true,
	"build": true, "dist": true, "out": true, "bin": true, "obj": true, "target": true,
	".idea": true, ".vscode": true, ".gradle": true,
}

// expand resolves each configured path to a concrete file list: a
// directory is walked recursively, a file is taken as-is. The include
// whitelist/blocklist is a filepath.Match glob policy, checked against
// the path relative to cfg.TopLevel when set.
func expand(paths []string, cfg *config.TranslationConfiguration) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, &cpgerr.ParseError{File: p, Reason: err.Error()}
		}
		if !info.IsDir() {
			if included(p, cfg) {
				out = append(out, p)
			}
			continue
		}
		err = filepath.Walk(p, func(path string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if fi.IsDir() {
				if path != p && skipDirs[fi.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if included(path, cfg) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, &cpgerr.ParseError{File: p, Reason: err.Error()}
		}
	}
	return out, nil
}

func included(path string, cfg *config.TranslationConfiguration) bool {
	rel := path
	if cfg.TopLevel != "" {
		if r, err := filepath.Rel(cfg.TopLevel, path); err == nil {
			rel = r
		}
	}
	for _, pattern := range cfg.IncludeBlocklist {
		if matched, _ := filepath.Match(pattern, rel); matched {
			return false
		}
	}
	if len(cfg.IncludeWhitelist) == 0 {
		return true
	}
	for _, pattern := range cfg.IncludeWhitelist {
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// partition groups files by the longest matching registered extension
// (spec.md §4.C), dropping files with no match. Run reports each such
// file as an info diagnostic before partitioning, since only it holds a
// TranslationContext.
func partition(files []string, registry *lang.Registry) []assignment {
	byLang := make(map[string]*assignment)
	var order []string
	for _, f := range files {
		l, ok := longestMatch(f, registry)
		if !ok {
			continue
		}
		a, seen := byLang[l.Name]
		if !seen {
			a = &assignment{language: l}
			byLang[l.Name] = a
			order = append(order, l.Name)
		}
		a.files = append(a.files, f)
	}
	out := make([]assignment, 0, len(order))
	for _, name := range order {
		out = append(out, *byLang[name])
	}
	return out
}

// longestMatch picks the registered language whose extension is the
// longest suffix of file. Ties (two languages with an equal-length
// matching extension) go to the later-registered language, matching
// Registry.Register's documented precedence rule: the >= lets a later
// entry in registry.All()'s registration-order slice overwrite an
// earlier one of the same length.
func longestMatch(file string, registry *lang.Registry) (*lang.Language, bool) {
	var best *lang.Language
	bestLen := -1
	for _, l := range registry.All() {
		for _, ext := range l.FileExtensions {
			if len(ext) >= bestLen && hasSuffixFold(file, ext) {
				best, bestLen = l, len(ext)
			}
		}
	}
	return best, best != nil
}

func hasSuffixFold(s, suffix string) bool {
	if len(suffix) > len(s) {
		return false
	}
	return s[len(s)-len(suffix):] == suffix
}

// unityMerge orders a C/C++ assignment's files by path and returns other
// languages' file lists unchanged. It does not concatenate anything: each
// file is still parsed into its own translation unit, and #include edges
// are not consulted.
func unityMerge(a assignment) []string {
	if a.language.Name != "C" && a.language.Name != "C++" {
		return a.files
	}
	merged := append([]string{}, a.files...)
	sort.Strings(merged)
	return merged
}

func driveFrontend(ctx context.Context, a assignment, tc corectx.TranslationContext, sink ResultSink, parallel, failOnError bool) error {
	fe, err := a.language.NewFrontend(a.language)
	if err != nil {
		return err
	}
	defer fe.Cleanup()

	if parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, file := range a.files {
			file := file
			g.Go(func() error {
				if tc.Cancelled() {
					return cpgerr.ErrCancelled
				}
				return parseOne(gctx, fe, tc, sink, file, failOnError)
			})
		}
		return g.Wait()
	}

	for _, file := range a.files {
		if tc.Cancelled() {
			return cpgerr.ErrCancelled
		}
		if err := parseOne(ctx, fe, tc, sink, file, failOnError); err != nil {
			return err
		}
	}
	return nil
}

func parseOne(ctx context.Context, fe lang.Frontend, tc corectx.TranslationContext, sink ResultSink, file string, failOnError bool) error {
	unit, err := fe.Parse(ctx, tc, file)
	if err != nil {
		if failOnError {
			return err
		}
		tc.ReportDiagnostic(corectx.Diagnostic{
			Severity:  corectx.SeverityWarning,
			Component: "frontend",
			Message:   err.Error(),
			File:      file,
		})
		slog.Warn("frontend.parse.failed", "file", file, "error", err)
		return nil
	}
	sink.AddUnit(unit)
	return nil
}
