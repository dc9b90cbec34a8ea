package storage

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/commons"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "notewriter")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	return dir
}

func TestNotePath(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul)
	got := NotePath("/notes", day)
	if want := filepath.Join("/notes", "2024-03-05 상한가 천만주.md"); got != want {
		t.Errorf("NotePath = %s, want %s", got, want)
	}
}

func TestWriteOnce(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	w := NewNoteWriter(dir)
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul)

	exists, err := w.Exists(day)
	if err != nil || exists {
		t.Fatalf("fresh dir: Exists = %v, %v", exists, err)
	}

	path, err := w.Write(day, "first")
	if err != nil {
		t.Fatalf("first Write returned error: %v", err)
	}
	if exists, _ := w.Exists(day); !exists {
		t.Error("note should exist after Write")
	}

	if _, err := w.Write(day, "second"); err != ErrNoteExists {
		t.Errorf("second Write should return ErrNoteExists, got %v", err)
	}

	contents, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(contents) != "first" {
		t.Errorf("note was overwritten: %q", contents)
	}

	files, _ := ioutil.ReadDir(dir)
	if len(files) != 1 {
		t.Errorf("expected exactly one file, got %d", len(files))
	}
}

func TestWriteMissingDir(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	w := NewNoteWriter(filepath.Join(dir, "missing"))
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, commons.AsiaSeoul)
	_, err := w.Write(day, "contents")
	if err == nil || err == ErrNoteExists {
		t.Errorf("writing into a missing directory should fail, got %v", err)
	}
}

func TestObjectPath(t *testing.T) {
	cases := map[string]string{
		"":             "a.md",
		"notes":        "notes/a.md",
		"/notes/2024/": "notes/2024/a.md",
	}
	for prefix, want := range cases {
		if got := ObjectPath(prefix, "a.md"); got != want {
			t.Errorf("ObjectPath(%q) = %s, want %s", prefix, got, want)
		}
	}
}
