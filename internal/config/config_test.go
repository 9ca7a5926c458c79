package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsValidateAfterNormalize(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.OutputDir) {
		t.Errorf("output dir not expanded: %q", cfg.Paths.OutputDir)
	}
	if !filepath.IsAbs(cfg.Paths.LibraryDB) {
		t.Errorf("library db not expanded: %q", cfg.Paths.LibraryDB)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, path, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if exists {
		t.Fatal("file should be reported as missing")
	}
	if path != missing {
		t.Errorf("resolved path %q, want %q", path, missing)
	}
	if cfg.Console.Manufacturer != "Behringer" || cfg.Console.Model != "X32" {
		t.Errorf("defaults not applied: %+v", cfg.Console)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"

[console]
manufacturer = "Yamaha"
model = "QL1"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !exists {
		t.Fatal("file should be reported as found")
	}
	if cfg.Console.Manufacturer != "Yamaha" || cfg.Console.Model != "QL1" {
		t.Errorf("console override lost: %+v", cfg.Console)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging values not lowercased: %+v", cfg.Logging)
	}
	// Untouched sections keep defaults.
	if cfg.Deploy.MountDir == "" || !cfg.Deploy.RequireFAT32 {
		t.Errorf("deploy defaults lost: %+v", cfg.Deploy)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[logging]
format = "xml"
level = "loud"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"logging.format", "logging.level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	got, err := expandPath("~/stagehand")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "stagehand") {
		t.Errorf("expandPath(~/stagehand) = %q", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "exports")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.SessionDir = filepath.Join(dir, "sessions")
	cfg.Paths.LibraryDB = filepath.Join(dir, "lib", "library.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, d := range []string{cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.SessionDir, filepath.Dir(cfg.Paths.LibraryDB)} {
		info, err := os.Stat(d)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q not created", d)
		}
	}
}

func TestSampleConfigIsCommentedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	// The sample must parse and, with every line commented, leave the
	// defaults untouched.
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("sample file should exist")
	}
	def := Default()
	if cfg.Console != def.Console {
		t.Errorf("sample changed console defaults: %+v", cfg.Console)
	}
}
