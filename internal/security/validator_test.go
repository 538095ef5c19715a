package security

import (
	"testing"

	"github.com/bugops/exarch/internal/model"
	"github.com/bugops/exarch/internal/paths"
)

func newValidator(t *testing.T, c *model.SecurityConfig) *EntryValidator {
	t.Helper()
	dest, err := paths.NewDestDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewEntryValidator(dest, c)
}

func TestEntryValidatorRejectsTraversal(t *testing.T) {
	v := newValidator(t, model.DefaultSecurityConfig())

	_, err := v.Validate(model.RawEntry{Path: "../../../etc/passwd", Kind: model.EntryFile})
	if err == nil {
		t.Fatal("expected PathTraversal")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindPathTraversal {
		t.Fatalf("got %v, want PathTraversal", err)
	}
}

func TestEntryValidatorZipBomb(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.MaxFileSize = 0 // disable the size quotas, which run before the ratio check
	c.MaxTotalSize = 0
	v := newValidator(t, c)

	compressed := uint64(42000)
	_, err := v.Validate(model.RawEntry{
		Path:             "bomb.bin",
		Kind:             model.EntryFile,
		UncompressedSize: 4_500_000_000_000_000,
		CompressedSize:   &compressed,
	})
	if err == nil {
		t.Fatal("expected ZipBomb")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindZipBomb {
		t.Fatalf("got %v, want ZipBomb", err)
	}
}

func TestEntryValidatorQuotaFileCount(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.MaxFileCount = 2
	v := newValidator(t, c)

	for i := 0; i < 2; i++ {
		if _, err := v.Validate(model.RawEntry{Path: "f", Kind: model.EntryFile}); err != nil {
			t.Fatalf("file %d: unexpected error %v", i, err)
		}
	}
	_, err := v.Validate(model.RawEntry{Path: "f3", Kind: model.EntryFile})
	if err == nil {
		t.Fatal("expected QuotaExceeded on third file")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindQuotaExceeded || e.Resource.Kind != model.QuotaKindFileCount {
		t.Fatalf("got %v, want QuotaExceeded{FileCount}", err)
	}
}

func TestEntryValidatorSetuidStrip(t *testing.T) {
	v := newValidator(t, model.DefaultSecurityConfig())

	mode := uint32(0o4755)
	validated, err := v.Validate(model.RawEntry{Path: "bin/helper", Kind: model.EntryFile, Mode: &mode})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *validated.Mode != 0o755 {
		t.Errorf("mode = %#o, want 0755", *validated.Mode)
	}
}

func TestEntryValidatorFileSizeBoundary(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.MaxFileSize = 100
	v := newValidator(t, c)

	if _, err := v.Validate(model.RawEntry{Path: "a", Kind: model.EntryFile, UncompressedSize: 100}); err != nil {
		t.Errorf("file at exactly MaxFileSize should pass: %v", err)
	}
	if _, err := v.Validate(model.RawEntry{Path: "b", Kind: model.EntryFile, UncompressedSize: 101}); err == nil {
		t.Error("file one byte over MaxFileSize should fail")
	}
}

func TestEntryValidatorHardlinkEscape(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.Allowed.Hardlinks = true
	v := newValidator(t, c)

	_, err := v.Validate(model.RawEntry{Path: "link", Kind: model.EntryHardlink, Target: "../../outside"})
	if err == nil {
		t.Fatal("expected HardlinkEscape")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindHardlinkEscape {
		t.Fatalf("got %v, want HardlinkEscape", err)
	}
}

func TestEntryValidatorExtensionPolicy(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.AllowedExtensions = []string{"txt"}
	v := newValidator(t, c)

	if _, err := v.Validate(model.RawEntry{Path: "notes.txt", Kind: model.EntryFile}); err != nil {
		t.Errorf("allowed extension rejected: %v", err)
	}
	if _, err := v.Validate(model.RawEntry{Path: "notes.TXT", Kind: model.EntryFile}); err != nil {
		t.Errorf("extension matching must be case-insensitive: %v", err)
	}
	_, err := v.Validate(model.RawEntry{Path: "payload.exe", Kind: model.EntryFile})
	if err == nil {
		t.Fatal("disallowed extension should be rejected")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindSecurityViolation {
		t.Fatalf("got %v, want SecurityViolation", err)
	}
}

func TestEntryValidatorFinishSummary(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.Allowed.Hardlinks = true
	v := newValidator(t, c)

	if _, err := v.Validate(model.RawEntry{Path: "a.txt", Kind: model.EntryFile, UncompressedSize: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Validate(model.RawEntry{Path: "b.txt", Kind: model.EntryFile, UncompressedSize: 20}); err != nil {
		t.Fatal(err)
	}
	if _, err := v.Validate(model.RawEntry{Path: "link", Kind: model.EntryHardlink, Target: "a.txt"}); err != nil {
		t.Fatal(err)
	}

	summary := v.Finish()
	if summary.FilesValidated != 2 {
		t.Errorf("FilesValidated = %d, want 2 (hardlinks don't count)", summary.FilesValidated)
	}
	if summary.TotalBytes != 30 {
		t.Errorf("TotalBytes = %d, want 30", summary.TotalBytes)
	}
	if summary.HardlinksTracked != 1 {
		t.Errorf("HardlinksTracked = %d, want 1", summary.HardlinksTracked)
	}
}

func TestQuotaTrackerOverflow(t *testing.T) {
	var q QuotaTracker
	q.bytesWritten = ^uint64(0) - 5
	c := model.DefaultSecurityConfig()
	c.MaxTotalSize = 0 // disable the ordinary ceiling so only overflow triggers

	err := q.RecordFile(10, c)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Resource.Kind != model.QuotaKindIntegerOverflow {
		t.Fatalf("got %v, want QuotaKindIntegerOverflow", err)
	}
}
