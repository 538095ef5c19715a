package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestClassificationPredicates(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		security    bool
		recoverable bool
	}{
		{"path traversal", PathTraversal("../etc/passwd"), true, true},
		{"symlink escape", SymlinkEscape("evil"), true, true},
		{"hardlink escape", HardlinkEscape("link"), true, true},
		{"zip bomb", ZipBomb(42000, 4_500_000_000_000_000, 1.07e11), true, false},
		{"invalid permissions", InvalidPermissions("bin/helper", 0o4755), true, true},
		{"quota", QuotaExceeded(QuotaResource{Kind: QuotaKindTotalSize, Current: 501, Max: 500}), true, false},
		{"security violation", SecurityViolation("banned component"), true, true},
		{"invalid archive", InvalidArchive("truncated header"), false, false},
		{"unsupported format", ErrUnsupportedFormat, false, false},
		{"io", WrapIO(fs.ErrPermission), false, false},
		{"foreign error", errors.New("not ours"), false, false},
	}

	for _, tc := range cases {
		if got := IsSecurityViolation(tc.err); got != tc.security {
			t.Errorf("%s: IsSecurityViolation = %v, want %v", tc.name, got, tc.security)
		}
		if got := IsRecoverable(tc.err); got != tc.recoverable {
			t.Errorf("%s: IsRecoverable = %v, want %v", tc.name, got, tc.recoverable)
		}
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while processing entry 3: %w", PathTraversal("../x"))
	if !IsSecurityViolation(wrapped) {
		t.Error("IsSecurityViolation should unwrap with errors.As")
	}
	if !IsRecoverable(wrapped) {
		t.Error("IsRecoverable should unwrap with errors.As")
	}
}

func TestWrapIOUnwraps(t *testing.T) {
	err := WrapIO(fs.ErrNotExist)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("WrapIO should preserve the underlying error for errors.Is")
	}
	if WrapIO(nil) != nil {
		t.Error("WrapIO(nil) must be nil")
	}
}

func TestZipBombPayload(t *testing.T) {
	err := ZipBomb(42000, 4_500_000_000_000_000, 1.0714285714285714e11)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Compressed != 42000 || e.Uncompressed != 4_500_000_000_000_000 {
		t.Errorf("payload = %d/%d", e.Compressed, e.Uncompressed)
	}
}

func TestQuotaResourceStrings(t *testing.T) {
	cases := []struct {
		resource QuotaResource
		want     string
	}{
		{QuotaResource{Kind: QuotaKindFileCount, Current: 1001, Max: 1000}, "quota exceeded: file count (1001 > 1000)"},
		{QuotaResource{Kind: QuotaKindTotalSize, Current: 600, Max: 500}, "quota exceeded: total size (600 > 500)"},
		{QuotaResource{Kind: QuotaKindFileSize, Current: 51, Max: 50}, "quota exceeded: single file size (51 > 50)"},
		{QuotaResource{Kind: QuotaKindIntegerOverflow}, "quota exceeded: integer overflow in quota tracking"},
	}
	for _, tc := range cases {
		if got := tc.resource.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
