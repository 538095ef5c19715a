package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bugops/exarch/internal/model"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestZipSourceReadsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.zip")
	writeZip(t, path, map[string]string{"nested/hello.txt": "hi there"})

	src, err := OpenZip(path)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	defer src.Close()

	raw, body, err := src.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if raw.Path != "nested/hello.txt" || raw.Kind != model.EntryFile {
		t.Errorf("raw = %+v", raw)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "hi there" {
		t.Errorf("content = %q", content)
	}

	if _, _, err := src.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestZipSourceBackslashNormalization(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.zip")
	writeZip(t, path, map[string]string{`windows\style\path.txt`: "x"})

	src, err := OpenZip(path)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	defer src.Close()

	raw, _, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if raw.Path != "windows/style/path.txt" {
		t.Errorf("raw.Path = %q, want forward slashes", raw.Path)
	}
}
