package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bugops/exarch/internal/model"
)

func TestValidateSafeSymlinkAcceptsRelativeInternal(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()
	c.Allowed.Symlinks = true

	if _, err := ValidateSafeSymlink("a/link", "../other/target.txt", dest, c); err != nil {
		t.Errorf("relative internal target should validate: %v", err)
	}
}

func TestValidateSafeSymlinkRejectsWhenDisabled(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()

	if _, err := ValidateSafeSymlink("link", "target.txt", dest, c); err == nil {
		t.Fatal("expected rejection when symlinks disabled")
	}
}

func TestValidateSafeSymlinkRejectsAbsoluteTarget(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()
	c.Allowed.Symlinks = true

	_, err := ValidateSafeSymlink("evil", "/etc/passwd", dest, c)
	if err == nil {
		t.Fatal("expected SymlinkEscape for absolute target")
	}
	var e *model.Error
	if !asError(err, &e) || e.Kind != model.ErrKindSymlinkEscape {
		t.Fatalf("got %v, want SymlinkEscape", err)
	}
}

func TestValidateSafeSymlinkRejectsDeepRelativeEscape(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()
	c.Allowed.Symlinks = true

	_, err := ValidateSafeSymlink("a/b/c/escape", "../../../../outside", dest, c)
	if err == nil {
		t.Fatal("expected SymlinkEscape for deep relative escape")
	}
	var e *model.Error
	if !asError(err, &e) || e.Kind != model.ErrKindSymlinkEscape {
		t.Fatalf("got %v, want SymlinkEscape", err)
	}
}

func TestValidateSafeSymlinkRejectsExistingLinkPath(t *testing.T) {
	dir := t.TempDir()
	dest, err := NewDestDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	c := model.DefaultSecurityConfig()
	c.Allowed.Symlinks = true

	if err := os.Symlink("target.txt", filepath.Join(dir, "dup")); err != nil {
		t.Fatal(err)
	}

	_, err = ValidateSafeSymlink("dup", "other.txt", dest, c)
	if err == nil {
		t.Fatal("expected rejection: link path is already a symlink on disk")
	}
	var e *model.Error
	if !asError(err, &e) || e.Kind != model.ErrKindSymlinkEscape {
		t.Fatalf("got %v, want SymlinkEscape", err)
	}
}

func TestValidateHardlinkTargetRejectsEscape(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()
	c.Allowed.Hardlinks = true

	_, _, err := ValidateHardlinkTarget("link", "../../outside", dest, c)
	if err == nil {
		t.Fatal("expected HardlinkEscape")
	}
	var e *model.Error
	if !asError(err, &e) || e.Kind != model.ErrKindHardlinkEscape {
		t.Fatalf("got %v, want HardlinkEscape", err)
	}
}

func TestValidateHardlinkTargetAcceptsInternal(t *testing.T) {
	dest := newTestDest(t)
	c := model.DefaultSecurityConfig()
	c.Allowed.Hardlinks = true

	_, target, err := ValidateHardlinkTarget("dir/link", "../original.txt", dest, c)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if target.Relative() != "original.txt" {
		t.Errorf("target = %q, want original.txt", target.Relative())
	}
}
