package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[checks]
select = ["PR", "SS01"]
ignore = ["PR09"]

[files]
exclude = ["build", "*_pb2.py"]
include_private = true
exclude_magic = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Checks.Select; len(got) != 2 || got[0] != "PR" || got[1] != "SS01" {
		t.Fatalf("select = %v", got)
	}
	if got := cfg.Checks.Ignore; len(got) != 1 || got[0] != "PR09" {
		t.Fatalf("ignore = %v", got)
	}
	if !cfg.Files.IncludePrivate || !cfg.Files.ExcludeMagic {
		t.Fatalf("flags = %+v", cfg.Files)
	}
	if cfg.Path != path {
		t.Fatalf("path = %q", cfg.Path)
	}
	opts := cfg.Options()
	if !opts.IncludePrivate || !opts.ExcludeMagic || len(opts.Select) != 2 {
		t.Fatalf("options = %+v", opts)
	}
}

func TestLoadRejectsUnknownSelector(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[checks]\nselect = [\"ZZ99\"]\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown selector")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[checks\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[files]\ninclude_private = true\n")
	nested := filepath.Join(root, "pkg", "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, ok, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if !cfg.Files.IncludePrivate {
		t.Fatal("manifest settings not applied")
	}
}

func TestDiscoverDefaultsWithoutManifest(t *testing.T) {
	cfg, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if ok {
		t.Fatal("unexpected manifest")
	}
	if len(cfg.Checks.Select) != 0 || cfg.Files.IncludePrivate {
		t.Fatalf("default config = %+v", cfg)
	}
}

func TestExcluded(t *testing.T) {
	cfg := Config{Files: FilesConfig{Exclude: []string{"build", "*_pb2.py"}}}

	tests := []struct {
		path string
		want bool
	}{
		{"build/gen.py", true},
		{"proto/api_pb2.py", true},
		{"src/app.py", false},
		{"rebuild/gen.py", false},
	}
	for _, tt := range tests {
		if got := cfg.Excluded(tt.path); got != tt.want {
			t.Errorf("Excluded(%q) = %t, want %t", tt.path, got, tt.want)
		}
	}
}

func TestFingerprintTracksSettings(t *testing.T) {
	base := Config{Checks: ChecksConfig{Select: []string{"PR", "SS"}}}
	same := Config{Checks: ChecksConfig{Select: []string{"SS", "PR"}}}
	other := Config{Checks: ChecksConfig{Select: []string{"PR"}}}

	if base.Fingerprint() != same.Fingerprint() {
		t.Fatal("fingerprint should ignore selector order")
	}
	if base.Fingerprint() == other.Fingerprint() {
		t.Fatal("fingerprint should change with selectors")
	}
	if base.Fingerprint() == (Config{Files: FilesConfig{ExcludeMagic: true}}).Fingerprint() {
		t.Fatal("fingerprint should change with flags")
	}
}
