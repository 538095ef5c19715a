package creation

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bugops/exarch/internal/archive"
	"github.com/bugops/exarch/internal/model"
)

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "file.txt"), []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCreateTarRoundTripsViaWalk(t *testing.T) {
	dir := writeTree(t)
	out := filepath.Join(t.TempDir(), "out.tar.gz")

	report, err := CreateTar(context.Background(), dir, out, true, Filters{}, nil)
	if err != nil {
		t.Fatalf("CreateTar: %v", err)
	}
	if report.FilesAdded != 2 {
		t.Errorf("FilesAdded = %d, want 2", report.FilesAdded)
	}
	if report.BlobDigest == "" {
		t.Error("expected a non-empty BlobDigest")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("archive not written: %v", err)
	}
}

func TestCreateZipRoundTripsViaWalk(t *testing.T) {
	dir := writeTree(t)
	out := filepath.Join(t.TempDir(), "out.zip")

	report, err := CreateZip(context.Background(), dir, out, Filters{}, nil)
	if err != nil {
		t.Fatalf("CreateZip: %v", err)
	}
	if report.FilesAdded != 2 {
		t.Errorf("FilesAdded = %d, want 2", report.FilesAdded)
	}
}

type recordingCallback struct {
	totals  []int
	indices []int
}

func (r *recordingCallback) OnEntryStart(_ string, totalEntries, currentIndex int) {
	r.totals = append(r.totals, totalEntries)
	r.indices = append(r.indices, currentIndex)
}
func (r *recordingCallback) OnBytesWritten(int64) {}
func (r *recordingCallback) OnEntryComplete(string) {}
func (r *recordingCallback) OnComplete() {}

func TestCreateTarReportsEntryProgress(t *testing.T) {
	dir := writeTree(t)
	out := filepath.Join(t.TempDir(), "out.tar")

	cb := &recordingCallback{}
	if _, err := CreateTar(context.Background(), dir, out, false, Filters{}, cb); err != nil {
		t.Fatalf("CreateTar: %v", err)
	}

	// The walk yields sub/, sub/file.txt, top.txt; OnEntryStart fires
	// for the two file entries with the full entry count and their
	// 1-based positions.
	wantTotals := []int{3, 3}
	wantIndices := []int{2, 3}
	if len(cb.totals) != len(wantTotals) {
		t.Fatalf("OnEntryStart fired %d times, want %d", len(cb.totals), len(wantTotals))
	}
	for i := range wantTotals {
		if cb.totals[i] != wantTotals[i] {
			t.Errorf("totals[%d] = %d, want %d", i, cb.totals[i], wantTotals[i])
		}
		if cb.indices[i] != wantIndices[i] {
			t.Errorf("indices[%d] = %d, want %d", i, cb.indices[i], wantIndices[i])
		}
	}
}

func TestCreateZipSymlinkRoundTrips(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "real.txt"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("real.txt", filepath.Join(dir, "alias")); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "links.zip")
	report, err := CreateZip(context.Background(), dir, out, Filters{}, nil)
	if err != nil {
		t.Fatalf("CreateZip: %v", err)
	}
	if report.SymlinksAdded != 1 {
		t.Fatalf("SymlinksAdded = %d, want 1", report.SymlinksAdded)
	}

	src, err := archive.OpenZip(out)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	defer src.Close()

	var sawSymlink bool
	for {
		raw, _, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if raw.Kind == model.EntrySymlink {
			sawSymlink = true
			if raw.Target != "real.txt" {
				t.Errorf("Target = %q, want real.txt", raw.Target)
			}
		}
	}
	if !sawSymlink {
		t.Error("created zip's symlink entry was not detected as a symlink on read-back")
	}
}

func TestFiltersExcludeHidden(t *testing.T) {
	f := Filters{ExcludeHidden: true}
	if f.Allows(".git/config") {
		t.Error("hidden component should be excluded")
	}
	if !f.Allows("src/main.go") {
		t.Error("ordinary path should be allowed")
	}
}

func TestFiltersExcludeGlobs(t *testing.T) {
	f := Filters{ExcludeGlobs: []string{"*.tmp"}}
	if f.Allows("build.tmp") {
		t.Error("glob-matched path should be excluded")
	}
	if !f.Allows("build.go") {
		t.Error("non-matching path should be allowed")
	}
}
