package model

import "strings"

// AllowedFeatures gathers the opt-in feature bits that are denied by
// default. Every field defaults to false: extraction starts maximally
// restrictive and the caller must opt into each capability explicitly.
type AllowedFeatures struct {
	// Symlinks allows symlink entries to be extracted.
	Symlinks bool
	// Hardlinks allows hardlink entries to be extracted.
	Hardlinks bool
	// AbsolutePaths allows entries whose stored path is absolute.
	AbsolutePaths bool
	// WorldWritable preserves the world-write bit instead of stripping it.
	WorldWritable bool
}

// SecurityConfig is the immutable policy threaded through one extraction,
// inspection, or creation operation. It is never mutated after
// construction: validators and the engine hold it by reference only.
type SecurityConfig struct {
	// MaxFileSize bounds a single file's uncompressed size. Default 50 MiB.
	MaxFileSize uint64
	// MaxTotalSize bounds the cumulative uncompressed size of an archive. Default 500 MiB.
	MaxTotalSize uint64
	// MaxCompressionRatio bounds uncompressed/compressed per entry. Default 100.0.
	MaxCompressionRatio float64
	// MaxFileCount bounds the number of regular files extracted. Default 10000.
	MaxFileCount uint64
	// MaxPathDepth bounds the number of normal path components. Default 32.
	MaxPathDepth int

	// Allowed gathers the opt-in feature bits (symlinks, hardlinks,
	// absolute paths, world-writable permissions).
	Allowed AllowedFeatures

	// PreservePermissions keeps the archive's mode bits (after
	// sanitization) instead of relying on the umask-derived default.
	PreservePermissions bool

	// AllowedExtensions restricts extraction to the listed file
	// extensions (case-insensitive, without the leading dot). Empty
	// means allow all extensions.
	AllowedExtensions []string

	// BannedPathComponents rejects any entry containing one of these
	// component names, compared case-insensitively. Defaults to
	// [".git", ".ssh", ".gnupg"].
	BannedPathComponents []string

	// AllowSolidArchives permits 7z archives that could not be proven
	// non-solid. Left false, any 7z archive whose solid-ness cannot be
	// disproven is rejected as a memory-exhaustion risk. See
	// MaxSolidBlockMemory.
	AllowSolidArchives bool

	// MaxSolidBlockMemory is carried in the policy but not read by any
	// adapter: a solid 7z archive admitted by AllowSolidArchives is read
	// without a memory bound.
	MaxSolidBlockMemory uint64
}

// DefaultSecurityConfig returns the secure-by-default policy: every
// allow bit off, generous but bounded size/count/ratio/depth limits, and
// the standard banned-component set.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		MaxFileSize:          50 * 1024 * 1024,
		MaxTotalSize:         500 * 1024 * 1024,
		MaxCompressionRatio:  100.0,
		MaxFileCount:         10_000,
		MaxPathDepth:         32,
		BannedPathComponents: []string{".git", ".ssh", ".gnupg"},
		MaxSolidBlockMemory:  256 * 1024 * 1024,
	}
}

// PermissiveSecurityConfig returns a preset intended only for archives
// from a trusted source: it enables symlinks, hardlinks, absolute
// paths, world-writable permissions, preserves permissions, raises the
// compression-ratio ceiling to 1000, and clears the banned-component
// list.
func PermissiveSecurityConfig() *SecurityConfig {
	c := DefaultSecurityConfig()
	c.Allowed = AllowedFeatures{
		Symlinks:      true,
		Hardlinks:     true,
		AbsolutePaths: true,
		WorldWritable: true,
	}
	c.PreservePermissions = true
	c.MaxCompressionRatio = 1000.0
	c.BannedPathComponents = nil
	return c
}

// IsPathComponentAllowed reports whether component is not one of the
// banned path components. Comparison is case-insensitive: an attacker
// who archives ".GIT" instead of ".git" must not bypass the ban.
func (c *SecurityConfig) IsPathComponentAllowed(component string) bool {
	for _, banned := range c.BannedPathComponents {
		if strings.EqualFold(component, banned) {
			return false
		}
	}
	return true
}

// IsExtensionAllowed reports whether extension is permitted. An empty
// AllowedExtensions list allows everything; otherwise comparison is
// case-insensitive and the leading dot, if any, is ignored.
func (c *SecurityConfig) IsExtensionAllowed(extension string) bool {
	if len(c.AllowedExtensions) == 0 {
		return true
	}
	extension = strings.TrimPrefix(extension, ".")
	for _, allowed := range c.AllowedExtensions {
		if strings.EqualFold(extension, strings.TrimPrefix(allowed, ".")) {
			return true
		}
	}
	return false
}
