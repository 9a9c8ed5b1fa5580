package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func listResult(t *testing.T, registry *Registry, path string, recursive bool) interface{} {
	t.Helper()
	result := registry.Execute("list_files", map[string]interface{}{
		"path":      path,
		"recursive": recursive,
	})
	if result.Error != nil {
		t.Fatalf("unexpected dispatch error: %v", result.Error)
	}
	return result.Result
}

func TestListFlatReturnsEntryNames(t *testing.T) {
	registry := NewRegistry()
	tempDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tempDir, "file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	if err := os.Mkdir(filepath.Join(tempDir, "sub"), 0o755); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	names, ok := listResult(t, registry, tempDir, false).([]string)
	if !ok {
		t.Fatalf("expected list of names")
	}
	got := map[string]bool{}
	for _, name := range names {
		if strings.Contains(name, string(os.PathSeparator)) {
			t.Fatalf("flat listing must return names only, got %q", name)
		}
		got[name] = true
	}
	if !got["file.txt"] || !got["sub"] {
		t.Fatalf("expected both the file and the subdirectory, got %v", names)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	registry := NewRegistry()

	names, ok := listResult(t, registry, t.TempDir(), false).([]string)
	if !ok || len(names) != 0 {
		t.Fatalf("expected empty list for empty directory, got %v", names)
	}
}

func TestListNonDirectoryReturnsErrorPayload(t *testing.T) {
	registry := NewRegistry()
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}

	for _, path := range []string{file, filepath.Join(t.TempDir(), "absent")} {
		payload, ok := listResult(t, registry, path, false).(map[string]string)
		if !ok {
			t.Fatalf("expected error payload for %s", path)
		}
		if !strings.Contains(payload["error"], path) || !strings.Contains(payload["error"], "is not a directory") {
			t.Fatalf("error payload should name the path, got %q", payload["error"])
		}
	}
}

func TestListRecursiveReturnsOnlyFiles(t *testing.T) {
	registry := NewRegistry()
	tempDir := t.TempDir()

	mustWrite := func(parts ...string) string {
		path := filepath.Join(append([]string{tempDir}, parts...)...)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("failed to create fixture file: %v", err)
		}
		return path
	}

	expected := map[string]bool{
		mustWrite("top.txt"):                  true,
		mustWrite("a", "mid.txt"):             true,
		mustWrite("a", "b", "deep.txt"):       true,
		mustWrite("a", "b", "c", "lower.txt"): true,
	}
	// An empty directory must not appear as an entry.
	if err := os.MkdirAll(filepath.Join(tempDir, "empty", "nested"), 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}

	files, ok := listResult(t, registry, tempDir, true).([]string)
	if !ok {
		t.Fatalf("expected list of file paths")
	}
	if len(files) != len(expected) {
		t.Fatalf("expected %d files, got %d: %v", len(expected), len(files), files)
	}
	for _, file := range files {
		if !expected[file] {
			t.Fatalf("unexpected entry %q", file)
		}
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			t.Fatalf("recursive listing must contain only files, got %q", file)
		}
	}
}

func TestListRejectsRelativePath(t *testing.T) {
	registry := NewRegistry()

	payload, ok := listResult(t, registry, "relative/dir", false).(map[string]string)
	if !ok {
		t.Fatalf("expected error payload for relative path")
	}
	if !strings.Contains(payload["error"], "not absolute") {
		t.Fatalf("expected absolute-path rejection, got %q", payload["error"])
	}
}
