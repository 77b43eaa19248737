package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsNotExist(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadFrom(filepath.Join(dir, "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error reading a nonexistent file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
	if cfg != nil {
		t.Fatal("expected a nil Config on a not-exist error")
	}
}

func TestLoadFromParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bcrc.yaml")
	body := "color: false\nnasm_path: /opt/nasm/bin/nasm\nld_path: /usr/bin/ld\nunit_search_paths:\n  - ./units\n  - ../shared\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.Color == nil || *cfg.Color != false {
		t.Errorf("Color = %v, want false", cfg.Color)
	}
	if cfg.NasmPath != "/opt/nasm/bin/nasm" {
		t.Errorf("NasmPath = %q, want /opt/nasm/bin/nasm", cfg.NasmPath)
	}
	if len(cfg.UnitSearchPaths) != 2 || cfg.UnitSearchPaths[0] != "./units" {
		t.Errorf("UnitSearchPaths = %v, want [./units ../shared]", cfg.UnitSearchPaths)
	}
}

func TestLoadFromRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bcrc.yaml")
	if err := os.WriteFile(path, []byte("color: [this is not a bool"), 0644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}
	if _, err := loadFrom(path); err == nil {
		t.Fatal("expected an error parsing malformed YAML")
	}
}

func TestLoadFallsBackToZeroConfigWhenNothingExists(t *testing.T) {
	dir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldWd)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.NasmPath != "" || cfg.Color != nil {
		t.Fatalf("expected a zero Config, got %+v", cfg)
	}
}
