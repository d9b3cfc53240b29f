package frontend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpgkit/cpgkit/internal/config"
	"github.com/cpgkit/cpgkit/internal/lang"
)

func testRegistry() *lang.Registry {
	r := lang.NewRegistry()
	r.Register(&lang.Language{Name: "Go", FileExtensions: []string{".go"}})
	r.Register(&lang.Language{Name: "C", FileExtensions: []string{".c", ".h"}})
	r.Register(&lang.Language{Name: "C++", FileExtensions: []string{".cpp", ".hpp"}})
	return r
}

func TestPartitionGroupsByLongestExtension(t *testing.T) {
	r := lang.NewRegistry()
	r.Register(&lang.Language{Name: "C", FileExtensions: []string{".c"}})
	r.Register(&lang.Language{Name: "CUDA-C", FileExtensions: []string{".cu.c"}})

	files := []string{"a.c", "b.cu.c", "c.c"}
	assignments := partition(files, r)
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assignments))
	}
	byName := map[string][]string{}
	for _, a := range assignments {
		byName[a.language.Name] = a.files
	}
	if got := byName["CUDA-C"]; len(got) != 1 || got[0] != "b.cu.c" {
		t.Fatalf("expected b.cu.c assigned to the longer-suffix language, got %v", got)
	}
	if got := byName["C"]; len(got) != 2 {
		t.Fatalf("expected 2 files assigned to C, got %v", got)
	}
}

func TestPartitionDropsUnmatchedFiles(t *testing.T) {
	r := testRegistry()
	assignments := partition([]string{"a.go", "readme.txt"}, r)
	if len(assignments) != 1 || assignments[0].language.Name != "Go" {
		t.Fatalf("expected only the .go file to be assigned, got %+v", assignments)
	}
}

func TestLongestMatchPicksLongerExtensionOverShorter(t *testing.T) {
	r := lang.NewRegistry()
	r.Register(&lang.Language{Name: "Header", FileExtensions: []string{".h"}})
	r.Register(&lang.Language{Name: "TestHeader", FileExtensions: []string{"_test.h"}})

	l, ok := longestMatch("widget_test.h", r)
	if !ok || l.Name != "TestHeader" {
		t.Fatalf("longestMatch = %v, want TestHeader", l)
	}
}

func TestLongestMatchSameLengthExtensionTieGoesToLastRegistered(t *testing.T) {
	r := lang.NewRegistry()
	r.Register(&lang.Language{Name: "Proto2", FileExtensions: []string{".proto"}})
	r.Register(&lang.Language{Name: "Proto3", FileExtensions: []string{".proto"}})

	l, ok := longestMatch("service.proto", r)
	if !ok || l.Name != "Proto3" {
		t.Fatalf("longestMatch = %v, want Proto3 (last-registered wins a same-length tie)", l)
	}
}

func TestUnityMergeOnlyAffectsCAndCpp(t *testing.T) {
	goAssignment := assignment{
		language: &lang.Language{Name: "Go"},
		files:    []string{"b.go", "a.go"},
	}
	if got := unityMerge(goAssignment); got[0] != "b.go" || got[1] != "a.go" {
		t.Fatalf("unityMerge must leave non-C/C++ file order untouched, got %v", got)
	}

	cAssignment := assignment{
		language: &lang.Language{Name: "C"},
		files:    []string{"z.c", "a.c", "m.c"},
	}
	merged := unityMerge(cAssignment)
	want := []string{"a.c", "m.c", "z.c"}
	for i, w := range want {
		if merged[i] != w {
			t.Fatalf("unityMerge(C) = %v, want sorted %v", merged, want)
		}
	}
}

func TestExpandWalksDirectoriesAndAppliesIncludePolicy(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "keep.go"), "package x")
	mustWrite(t, filepath.Join(dir, "skip.go"), "package x")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	mustWrite(t, filepath.Join(sub, "nested.go"), "package x")

	cfg := &config.TranslationConfiguration{
		TopLevel:         dir,
		IncludeBlocklist: []string{"skip.go"},
	}
	files, err := expand([]string{dir}, cfg)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files after excluding skip.go, got %v", files)
	}
	for _, f := range files {
		if filepath.Base(f) == "skip.go" {
			t.Fatalf("skip.go should have been excluded: %v", files)
		}
	}
}

func TestExpandWhitelistRestrictsToMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.go"), "package x")
	mustWrite(t, filepath.Join(dir, "a_test.go"), "package x")

	cfg := &config.TranslationConfiguration{
		TopLevel:         dir,
		IncludeWhitelist: []string{"*_test.go"},
	}
	files, err := expand([]string{dir}, cfg)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a_test.go" {
		t.Fatalf("expected only a_test.go to survive the whitelist, got %v", files)
	}
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
