package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := DefaultBuildConfig()
	if cfg.Build != want {
		t.Fatalf("expected defaults, got %+v", cfg.Build)
	}
	if cfg.Build.OutputDir != "docusaurus" || cfg.Build.DocfxDir != "_site" ||
		cfg.Build.SiteURL != "http://localhost:8080" {
		t.Fatalf("documented defaults drifted: %+v", cfg.Build)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pkgdocs.yml")
	content := `
build:
  site_url: https://docs.example.com
  skip_docusaurus: true
log_file: pkgdocs.log
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Build.SiteURL != "https://docs.example.com" {
		t.Fatalf("site_url not applied: %q", cfg.Build.SiteURL)
	}
	if !cfg.Build.SkipDocusaurus {
		t.Fatalf("skip_docusaurus not applied")
	}
	if cfg.Build.OutputDir != "docusaurus" {
		t.Fatalf("unset field lost its default: %q", cfg.Build.OutputDir)
	}
	if cfg.LogFile != "pkgdocs.log" {
		t.Fatalf("log_file not applied: %q", cfg.LogFile)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pkgdocs.yml")
	if err := os.WriteFile(path, []byte("build: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
