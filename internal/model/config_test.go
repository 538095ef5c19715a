package model

import "testing"

func TestDefaultSecurityConfig(t *testing.T) {
	c := DefaultSecurityConfig()

	if c.MaxFileSize != 50*1024*1024 {
		t.Errorf("MaxFileSize = %d", c.MaxFileSize)
	}
	if c.MaxTotalSize != 500*1024*1024 {
		t.Errorf("MaxTotalSize = %d", c.MaxTotalSize)
	}
	if c.MaxCompressionRatio != 100.0 {
		t.Errorf("MaxCompressionRatio = %v", c.MaxCompressionRatio)
	}
	if c.MaxFileCount != 10_000 {
		t.Errorf("MaxFileCount = %d", c.MaxFileCount)
	}
	if c.MaxPathDepth != 32 {
		t.Errorf("MaxPathDepth = %d", c.MaxPathDepth)
	}
	if c.Allowed.Symlinks || c.Allowed.Hardlinks || c.Allowed.AbsolutePaths || c.Allowed.WorldWritable {
		t.Error("every allow bit must default to false")
	}
	if c.PreservePermissions {
		t.Error("PreservePermissions must default to false")
	}
}

func TestPermissiveSecurityConfig(t *testing.T) {
	c := PermissiveSecurityConfig()

	if !c.Allowed.Symlinks || !c.Allowed.Hardlinks || !c.Allowed.AbsolutePaths || !c.Allowed.WorldWritable {
		t.Error("permissive preset must enable all four allow bits")
	}
	if !c.PreservePermissions {
		t.Error("permissive preset must preserve permissions")
	}
	if c.MaxCompressionRatio != 1000.0 {
		t.Errorf("MaxCompressionRatio = %v, want 1000", c.MaxCompressionRatio)
	}
	if len(c.BannedPathComponents) != 0 {
		t.Errorf("BannedPathComponents = %v, want empty", c.BannedPathComponents)
	}
}

func TestIsPathComponentAllowedCaseInsensitive(t *testing.T) {
	c := DefaultSecurityConfig()

	for _, banned := range []string{".git", ".GIT", ".Git", ".ssh", ".SSH", ".gnupg"} {
		if c.IsPathComponentAllowed(banned) {
			t.Errorf("IsPathComponentAllowed(%q) = true, want false", banned)
		}
	}
	for _, ok := range []string{"src", ".github", "git", ".gitignore"} {
		if !c.IsPathComponentAllowed(ok) {
			t.Errorf("IsPathComponentAllowed(%q) = false, want true", ok)
		}
	}
}

func TestIsExtensionAllowed(t *testing.T) {
	c := DefaultSecurityConfig()
	if !c.IsExtensionAllowed(".exe") {
		t.Error("empty allow list must allow everything")
	}

	c.AllowedExtensions = []string{"txt", ".md"}
	cases := map[string]bool{
		".txt": true,
		"txt":  true,
		".TXT": true,
		".md":  true,
		".exe": false,
		"":     false,
	}
	for ext, want := range cases {
		if got := c.IsExtensionAllowed(ext); got != want {
			t.Errorf("IsExtensionAllowed(%q) = %v, want %v", ext, got, want)
		}
	}
}
