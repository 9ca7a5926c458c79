package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSessionJSON = `{
  "version": "1.0",
  "gig": {"name": "Harbor Festival", "venue": "Pier 9", "genre": "rock"},
  "console": {
    "manufacturer": "Behringer",
    "model": "X32",
    "channelCount": 16,
    "busCount": 8
  },
  "currentScene": {
    "name": "Main Show",
    "channels": [
      {"number": 1, "name": "Kick", "faderDb": -5.0, "assignedToMain": true},
      {"number": 2, "name": "Snare Top", "faderDb": -7.5, "assignedToMain": true}
    ]
  }
}
`

func writeTestSession(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(testSessionJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(base, "exports") + `"
library_db = "` + filepath.Join(base, "library.db") + `"
log_dir = "` + filepath.Join(base, "logs") + `"
session_dir = "` + filepath.Join(base, "sessions") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestFormatsListsBothFamilies(t *testing.T) {
	stdout, _, err := runCLI(t, "", "formats")
	if err != nil {
		t.Fatalf("formats: %v", err)
	}
	for _, want := range []string{"Behringer", "X32", "Midas", "M32", "Yamaha", "QL1"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("formats output missing %s:\n%s", want, stdout)
		}
	}
}

func TestValidateAcceptsCompatibleSession(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)

	stdout, _, err := runCLI(t, cfgPath, "validate", sessionPath)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, stdout)
	}
	if !strings.Contains(stdout, "Behringer X32") {
		t.Errorf("target not reported:\n%s", stdout)
	}
}

func TestValidateRejectsOversizedSession(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)

	_, _, err := runCLI(t, cfgPath, "validate", sessionPath, "--target", "Yamaha QL1")
	if err != nil {
		// 16 channels fit a QL1; this target is valid.
		t.Fatalf("QL1 should accept 16 channels: %v", err)
	}

	oversized := strings.Replace(testSessionJSON, `"channelCount": 16`, `"channelCount": 64`, 1)
	path := filepath.Join(t.TempDir(), "big.json")
	if err := os.WriteFile(path, []byte(oversized), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, cfgPath, "validate", path, "--target", "Yamaha QL1"); err == nil {
		t.Fatal("64 channels must not validate against a QL1")
	}
}

func TestValidateRejectsDuplicateChannelNumbers(t *testing.T) {
	cfgPath := writeTestConfig(t)
	dup := strings.Replace(testSessionJSON, `{"number": 2, "name": "Snare Top"`,
		`{"number": 1, "name": "Snare Top"`, 1)
	path := filepath.Join(t.TempDir(), "dup.json")
	if err := os.WriteFile(path, []byte(dup), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, cfgPath, "validate", path)
	if err == nil {
		t.Fatal("two channels numbered 1 must not validate")
	}
	if !strings.Contains(stdout, "duplicate channel number 1") {
		t.Errorf("duplicate not reported:\n%s", stdout)
	}
}

func TestExportWritesFiles(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := runCLI(t, cfgPath, "export", sessionPath, "--output", outDir)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, stdout)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Harbor_Festival.scn"))
	if err != nil {
		entries, _ := os.ReadDir(outDir)
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("scene file missing (have %v): %v", names, err)
	}
	if !strings.HasPrefix(string(data), "#4.0#") {
		t.Errorf("scene file missing header: %q", string(data)[:20])
	}
}

func TestExportTargetFlagOverridesSession(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)
	outDir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := runCLI(t, cfgPath, "export", sessionPath, "--target", "Yamaha CL5", "--output", outDir)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, stdout)
	}
	if _, err := os.Stat(filepath.Join(outDir, "01_channel_names.csv")); err != nil {
		t.Fatalf("yamaha csv missing: %v", err)
	}
}

func TestExportUnknownTarget(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)

	_, _, err := runCLI(t, cfgPath, "export", sessionPath, "--target", "Allen&Heath dLive")
	if err == nil {
		t.Fatal("unknown desk must fail")
	}
	if !strings.Contains(err.Error(), "formats") {
		t.Errorf("error should point at the formats command: %v", err)
	}
}

func TestShowSummarizesSession(t *testing.T) {
	sessionPath := writeTestSession(t)

	stdout, _, err := runCLI(t, "", "show", sessionPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Harbor Festival", "Pier 9", "Kick", "Snare Top"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("show output missing %s:\n%s", want, stdout)
		}
	}
}

func TestLibrarySaveAndList(t *testing.T) {
	cfgPath := writeTestConfig(t)
	sessionPath := writeTestSession(t)

	stdout, _, err := runCLI(t, cfgPath, "library", "save", sessionPath)
	if err != nil {
		t.Fatalf("library save: %v", err)
	}
	if !strings.Contains(stdout, "Harbor Festival") {
		t.Errorf("save confirmation missing gig name:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, cfgPath, "library", "list")
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	if !strings.Contains(stdout, "Harbor Festival") || !strings.Contains(stdout, "Pier 9") {
		t.Errorf("list output missing session:\n%s", stdout)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	stdout, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(stdout, target) {
		t.Errorf("confirmation missing path:\n%s", stdout)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite must fail")
	}
}

func TestCollectExportFilesKeepsDottedExtensions(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"show.scn":  "#4.0#\n",
		"README.md": "# notes\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := collectExportFiles(dir)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Filename != "README.md" || files[1].Filename != "show.scn" {
		t.Fatalf("files not in name order: %q, %q", files[0].Filename, files[1].Filename)
	}
	if files[0].Extension != ".md" || files[1].Extension != ".scn" {
		t.Fatalf("extensions must keep the leading dot: %q, %q", files[0].Extension, files[1].Extension)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B", "C"}, [][]string{{"1", "2"}}, 0)
	if !strings.Contains(out, "1") || !strings.Contains(out, "2") {
		t.Fatalf("row cells missing:\n%s", out)
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("headerless table must render empty")
	}
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		in           string
		manufacturer string
		model        string
		wantErr      bool
	}{
		{"Behringer X32", "Behringer", "X32", false},
		{"Behringer X32 Rack", "Behringer", "X32 Rack", false},
		{"  Yamaha   QL1 ", "Yamaha", "QL1", false},
		{"X32", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		manufacturer, model, err := splitTarget(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitTarget(%q) error = %v", tt.in, err)
			continue
		}
		if manufacturer != tt.manufacturer || model != tt.model {
			t.Errorf("splitTarget(%q) = %q %q", tt.in, manufacturer, model)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Harbor Festival", "harbor-festival"},
		{"  X32 Rack  ", "x32-rack"},
		{"!!!", "untitled"},
		{"AC/DC Tribute", "ac-dc-tribute"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
