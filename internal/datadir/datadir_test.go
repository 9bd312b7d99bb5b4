package datadir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	d, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info, err := os.Stat(d.Root())
	if err != nil || !info.IsDir() {
		t.Fatalf("root not created: %v", err)
	}
}

func TestResolve(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	abs, err := d.Resolve("export/memos.json")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasPrefix(abs, d.Root()) {
		t.Errorf("resolved %q outside root %q", abs, d.Root())
	}

	if got, err := d.Resolve(""); err != nil || got != d.Root() {
		t.Errorf("empty rel = %q, %v", got, err)
	}
}

func TestResolve_RejectsEscapes(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, rel := range []string{"../outside", "a/../../outside", "/etc/passwd"} {
		if _, err := d.Resolve(rel); err == nil {
			t.Errorf("Resolve(%q) should fail", rel)
		}
	}
}

func TestWriteAndReadFile(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Parent directories are created on demand.
	if err := d.WriteFile("export/a/b.json", []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := d.ReadFile("export/a/b.json")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != `{"ok":true}` {
		t.Errorf("content = %q", got)
	}

	// Overwrite replaces the whole file.
	if err := d.WriteFile("export/a/b.json", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	got, _ = d.ReadFile("export/a/b.json")
	if string(got) != "v2" {
		t.Errorf("after overwrite = %q", got)
	}

	// No temp files are left behind.
	entries, _ := os.ReadDir(filepath.Join(d.Root(), "export", "a"))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".naudiz-tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestWriteFile_RejectsEscape(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteFile("../escape.json", []byte("x")); err == nil {
		t.Error("write outside root should fail")
	}
}
