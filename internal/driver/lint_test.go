package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"numdoc/internal/config"
	"numdoc/internal/diag"
	"numdoc/internal/source"
	"numdoc/internal/validate"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestListPythonFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":           "",
		"pkg/b.py":       "",
		"pkg/notes.txt":  "",
		"vendor/gen.py":  "",
		"pkg/old_pb2.py": "",
	})
	cfg := config.Config{Files: config.FilesConfig{Exclude: []string{"vendor", "*_pb2.py"}}}

	files, err := ListPythonFiles(root, cfg)
	if err != nil {
		t.Fatalf("ListPythonFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "a.py" || filepath.Base(files[1]) != "b.py" {
		t.Fatalf("unexpected order: %v", files)
	}
}

func TestLintFileReportsMissingDocstring(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("app.py", []byte("def f(x):\n    return x\n"))

	bag := LintFile(fs.Get(id), validate.New(validate.Options{}), 0)

	var sawModule, sawFunc bool
	for _, d := range bag.Items() {
		if d.Code == diag.GLMissingDocstring {
			switch d.Message {
			case "The module does not have a docstring":
				sawModule = true
			case "The function does not have a docstring":
				sawFunc = true
			}
		}
	}
	if !sawModule || !sawFunc {
		t.Fatalf("missing GL08: module=%t func=%t items=%v", sawModule, sawFunc, bag.Items())
	}
}

func TestLintDir(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.py": "\"\"\"Second module.\"\"\"\n",
		"a.py": "def f(x):\n    return x\n",
	})

	_, results, err := LintDir(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if filepath.Base(results[0].Path) != "a.py" || filepath.Base(results[1].Path) != "b.py" {
		t.Fatalf("order = %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Bag.Len() == 0 {
		t.Fatal("a.py should report missing docstrings")
	}
	for _, d := range results[1].Bag.Items() {
		if d.Code == diag.GLMissingDocstring {
			t.Fatalf("b.py has a module docstring, got %v", d)
		}
	}
}

func TestLintDirUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "def f(x):\n    return x\n",
	})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := Options{Cache: cache}

	_, first, err := LintDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].FromCache {
		t.Fatal("first run should miss the cache")
	}

	_, second, err := LintDir(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second[0].FromCache {
		t.Fatal("second run should hit the cache")
	}
	if first[0].Bag.Len() != second[0].Bag.Len() {
		t.Fatalf("cached diagnostics differ: %d vs %d", first[0].Bag.Len(), second[0].Bag.Len())
	}
	for i, d := range second[0].Bag.Items() {
		if d != first[0].Bag.Items()[i] {
			t.Fatalf("diagnostic %d differs after cache round-trip: %v", i, d)
		}
	}
}

func TestLintDirConfigChangeInvalidatesCache(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "def f(x):\n    return x\n",
	})
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	if _, _, err := LintDir(context.Background(), root, Options{Cache: cache}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	cfg := config.Config{Checks: config.ChecksConfig{Ignore: []string{"GL08"}}}
	_, results, err := LintDir(context.Background(), root, Options{Cache: cache, Config: cfg})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if results[0].FromCache {
		t.Fatal("config change must bypass stale cache entries")
	}
	for _, d := range results[0].Bag.Items() {
		if d.Code == diag.GLMissingDocstring {
			t.Fatalf("GL08 ignored by config, got %v", d)
		}
	}
}

func TestLintDirEmitsEvents(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "def f(x):\n    return x\n",
		"b.py": "\"\"\"Module.\"\"\"\n",
	})
	events := make(chan Event, 16)

	if _, _, err := LintDir(context.Background(), root, Options{Events: events}); err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	close(events)

	working, done := 0, 0
	for ev := range events {
		switch ev.Status {
		case StatusWorking:
			working++
		case StatusDone:
			done++
		case StatusError:
			t.Fatalf("unexpected error event for %s", ev.Path)
		}
	}
	if working != 2 || done != 2 {
		t.Fatalf("events working=%d done=%d", working, done)
	}
}

func TestLintDirReportsLoadErrorsPerFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "\"\"\"Module.\"\"\"\n",
	})
	// A dangling symlink lists as *.py but fails to load.
	if err := os.Symlink(filepath.Join(root, "missing.py"), filepath.Join(root, "broken.py")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, results, err := LintDir(context.Background(), root, Options{})
	if err != nil {
		t.Fatalf("LintDir: %v", err)
	}
	var sawErr bool
	for _, r := range results {
		if r.Err != nil {
			sawErr = true
			if r.Bag.Len() != 0 {
				t.Fatalf("failed file carries diagnostics: %v", r.Bag.Items())
			}
		}
	}
	if !sawErr {
		t.Fatal("expected a load error result")
	}
}
