package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	d := New()
	path := filepath.Join(t.TempDir(), "bannerkit.json")

	if err := d.WriteFile(path, []byte(`{"font":"Arial"}`)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := d.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"font":"Arial"}` {
		t.Errorf("unexpected content %q", data)
	}
}

func TestFileSystem_WriteFileReplacesWithoutLeftovers(t *testing.T) {
	d := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "banner.png")

	if err := d.WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := d.WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, _ := d.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("expected replaced content, got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only banner.png, found %v", names)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	d := New()
	path := filepath.Join(t.TempDir(), "debug", "captures", "capture-0001.png")

	if err := d.WriteFile(path, []byte("png")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := d.Exists(path)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	d := New()
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := d.MkdirAll(path); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if exists, _ := d.Exists(path); !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_ExistsAndRemove(t *testing.T) {
	d := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	if exists, err := d.Exists(path); err != nil || exists {
		t.Fatalf("Exists before write = %v, %v", exists, err)
	}

	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if exists, err := d.Exists(path); err != nil || !exists {
		t.Fatalf("Exists after write = %v, %v", exists, err)
	}

	if err := d.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if exists, _ := d.Exists(path); exists {
		t.Error("expected file to be removed")
	}
}
