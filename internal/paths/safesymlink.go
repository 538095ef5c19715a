package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bugops/exarch/internal/model"
)

// SafeSymlink pairs a validated link path with its validated raw target,
// whose lexical resolution was proven to stay within dest. Like SafePath,
// the only producer is
// ValidateSafeSymlink.
type SafeSymlink struct {
	Link      SafePath
	targetRaw string
}

// Link path, relative to the owning DestDir.
func (s SafeSymlink) LinkPath() string { return s.Link.Relative() }

// Target is the raw (unresolved) symlink target to store on disk. The
// lexical resolution performed during validation is only used to prove
// containment; the symlink itself is created pointing at this string so
// it still resolves correctly relative to its own location at read time.
func (s SafeSymlink) Target() string { return s.targetRaw }

// ValidateSafeSymlink validates a symlink entry. The target must be
// relative, bounded in depth and free of banned components; the link's
// ancestor chain, including the link path itself, is then walked for a
// pre-existing symlink; the link path is validated with ValidateSafePath;
// and the target's lexical resolution against the link's parent must
// stay within dest.
func ValidateSafeSymlink(linkPathRaw, target string, dest *DestDir, c *model.SecurityConfig) (SafeSymlink, error) {
	if !c.Allowed.Symlinks {
		return SafeSymlink{}, model.SecurityViolation("symlinks are disabled by policy")
	}

	if isAbsolute(target) {
		return SafeSymlink{}, model.SymlinkEscape(linkPathRaw)
	}

	if err := validateTargetComponents(target, c, linkPathRaw); err != nil {
		return SafeSymlink{}, err
	}

	// The ancestor walk runs before ValidateSafePath: its containment
	// check canonicalizes an existing link path, which fails with an I/O
	// error for a dangling symlink left by an earlier entry.
	if linkRel, _, err := scanComponents(linkPathRaw, c); err == nil {
		if err := verifyNoAncestorSymlink(dest, linkRel); err != nil {
			return SafeSymlink{}, model.SymlinkEscape(linkPathRaw)
		}
	}

	linkPath, err := ValidateSafePath(linkPathRaw, dest, c)
	if err != nil {
		return SafeSymlink{}, err
	}

	resolved := resolveLexically(dest.Canonical(), filepath.Dir(linkPath.Relative()), target)
	if !isWithinDir(resolved, dest.Canonical()) {
		return SafeSymlink{}, model.SymlinkEscape(linkPathRaw)
	}

	return SafeSymlink{Link: linkPath, targetRaw: target}, nil
}

func validateTargetComponents(target string, c *model.SecurityConfig, linkPathRaw string) error {
	normalized := strings.ReplaceAll(target, "\\", "/")
	depth := 0
	for _, part := range strings.Split(normalized, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			depth-- // ".." is permitted in a symlink target; only bound forward depth
		default:
			if !c.IsPathComponentAllowed(part) {
				return model.SecurityViolation("symlink target contains banned component " + part)
			}
			depth++
			if depth > c.MaxPathDepth {
				return model.SecurityViolation("symlink target exceeds maximum depth: " + linkPathRaw)
			}
		}
	}
	return nil
}

// verifyNoAncestorSymlink walks dest, then every component of
// linkRelative in turn, including the link path itself, and fails as
// soon as a path that exists on disk is a symlink. SafePath's lexical
// checks alone can't see that an earlier archive entry already planted
// a symlink on disk; scanning the final component also rejects a
// duplicate symlink entry before it can overwrite the first.
func verifyNoAncestorSymlink(dest *DestDir, linkRelative string) error {
	current := dest.Canonical()
	for _, part := range strings.Split(filepath.ToSlash(linkRelative), "/") {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		info, err := os.Lstat(current)
		if err != nil {
			continue // does not exist yet; nothing to check further down
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return model.SymlinkEscape(linkRelative)
		}
	}
	return nil
}

// ValidateHardlinkTarget validates a hardlink entry's target exactly like
// a symlink target (depth, banned components, lexical containment), then
// additionally resolves it to a SafePath relative to dest: hardlinks are
// materialized by linking to an already-extracted file, so the engine
// needs a concrete validated path rather than a lexical target string.
func ValidateHardlinkTarget(linkPathRaw, target string, dest *DestDir, c *model.SecurityConfig) (linkPath SafePath, targetPath SafePath, err error) {
	if !c.Allowed.Hardlinks {
		return SafePath{}, SafePath{}, model.SecurityViolation("hardlinks are disabled by policy")
	}

	linkPath, err = ValidateSafePath(linkPathRaw, dest, c)
	if err != nil {
		return SafePath{}, SafePath{}, err
	}

	if isAbsolute(target) {
		return SafePath{}, SafePath{}, model.HardlinkEscape(linkPathRaw)
	}
	if err := validateTargetComponents(target, c, linkPathRaw); err != nil {
		return SafePath{}, SafePath{}, err
	}

	resolved := resolveLexically(dest.Canonical(), filepath.Dir(linkPath.Relative()), target)
	if !isWithinDir(resolved, dest.Canonical()) {
		return SafePath{}, SafePath{}, model.HardlinkEscape(linkPathRaw)
	}

	relTarget, err := filepath.Rel(dest.Canonical(), resolved)
	if err != nil {
		return SafePath{}, SafePath{}, model.HardlinkEscape(linkPathRaw)
	}
	targetPath, err = ValidateSafePath(relTarget, dest, c)
	if err != nil {
		return SafePath{}, SafePath{}, model.HardlinkEscape(linkPathRaw)
	}

	return linkPath, targetPath, nil
}

// resolveLexically folds target's components onto dest/parent without
// touching the filesystem: ".." pops the last component (it may pop
// past dest, but never past the filesystem root), "." is skipped, and
// anything else is pushed.
func resolveLexically(destCanonical, parentRelative, target string) string {
	stack := strings.Split(filepath.ToSlash(filepath.Join(destCanonical, parentRelative)), "/")

	for _, part := range strings.Split(filepath.ToSlash(target), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	joined := strings.Join(stack, "/")
	if filepath.IsAbs(destCanonical) && !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return filepath.FromSlash(joined)
}
