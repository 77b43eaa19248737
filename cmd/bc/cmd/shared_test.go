package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BJZR/B-lang/config"
)

func TestAsExitErrorRejectsNonExitErrors(t *testing.T) {
	if _, ok := asExitError(errors.New("not an exit error")); ok {
		t.Fatal("expected ok=false for a plain error")
	}
}

func TestResolveImportFileFallsBackToUnitSearchPaths(t *testing.T) {
	dir := t.TempDir()
	unitsDir := filepath.Join(dir, "units")
	if err := os.Mkdir(unitsDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(unitsDir, "lib.b"), []byte("func helper() { return 1 }"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCfg := cfg
	cfg = &config.Config{UnitSearchPaths: []string{unitsDir}}
	defer func() { cfg = oldCfg }()

	data, err := resolveImportFile("lib.b")
	if err != nil {
		t.Fatalf("resolveImportFile() error: %v", err)
	}
	if string(data) != "func helper() { return 1 }" {
		t.Fatalf("resolveImportFile() = %q, want the units/lib.b contents", data)
	}
}

func TestResolveImportFileVerbatimPathWinsOverSearchPaths(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.b"), []byte("func helper() { return 2 }"), 0644); err != nil {
		t.Fatal(err)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	oldCfg := cfg
	cfg = &config.Config{UnitSearchPaths: []string{"/nonexistent"}}
	defer func() { cfg = oldCfg }()

	data, err := resolveImportFile("lib.b")
	if err != nil {
		t.Fatalf("resolveImportFile() error: %v", err)
	}
	if string(data) != "func helper() { return 2 }" {
		t.Fatalf("resolveImportFile() = %q, want the verbatim-path contents", data)
	}
}
