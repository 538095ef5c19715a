package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bugops/exarch/internal/model"
)

// SafePath is a validated, normalized, relative path guaranteed to be
// contained within a DestDir. The only way to construct one is
// ValidateSafePath; there is no exported field or conversion from a
// plain string.
type SafePath struct {
	relative string
}

// Relative returns the normalized relative path, suitable for
// filepath.Join onto a DestDir.
func (p SafePath) Relative() string { return p.relative }

// ValidateSafePath runs the five-step validation pipeline from the raw
// archive path p against dest under config c: null-byte scan, absolute
// rejection, per-component traversal/banned-component/depth scan,
// normalization of "." components, and containment via parent
// canonicalization. This is the hot path of the whole validator and is
// deliberately ordered cheapest-check-first.
func ValidateSafePath(p string, dest *DestDir, c *model.SecurityConfig) (SafePath, error) {
	if containsNull(p) {
		return SafePath{}, model.SecurityViolation("path contains a null byte: " + quoteForError(p))
	}

	if isAbsolute(p) {
		if !c.Allowed.AbsolutePaths {
			return SafePath{}, model.PathTraversal(p)
		}
	}

	normalized, _, err := scanComponents(p, c)
	if err != nil {
		return SafePath{}, err
	}

	if err := checkContainment(dest, normalized); err != nil {
		return SafePath{}, err
	}

	return SafePath{relative: normalized}, nil
}

// scanComponents walks p component by component: "." components are
// dropped, ".." is rejected outright, banned components are rejected,
// and the normal-component count is bounded by MaxPathDepth. It returns
// the normalized path (with "." stripped, never with ".." collapsed,
// because ".." was already rejected) and the normal-component depth.
func scanComponents(p string, c *model.SecurityConfig) (string, int, error) {
	normalizedInput := strings.ReplaceAll(p, "\\", "/")
	normalizedInput = strings.TrimPrefix(normalizedInput, "/")
	if vol := filepath.VolumeName(p); vol != "" {
		normalizedInput = strings.TrimPrefix(normalizedInput, vol)
	}

	parts := strings.Split(normalizedInput, "/")
	kept := make([]string, 0, len(parts))
	depth := 0

	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return "", 0, model.PathTraversal(p)
		default:
			if !c.IsPathComponentAllowed(part) {
				return "", 0, model.SecurityViolation("path contains banned component " + part + ": " + p)
			}
			depth++
			if depth > c.MaxPathDepth {
				return "", 0, model.SecurityViolation("path exceeds maximum depth: " + p)
			}
			kept = append(kept, part)
		}
	}

	return filepath.Join(kept...), depth, nil
}

// checkContainment canonicalizes the deepest existing ancestor and
// requires it to sit inside dest, even when the entry's own path does
// not yet exist. This is what catches a symlink planted by an earlier
// archive entry before this one is materialized.
func checkContainment(dest *DestDir, normalized string) error {
	joined := dest.Join(normalized)

	parent := filepath.Dir(joined)
	for parent != dest.Canonical() && isWithinDir(parent, dest.Canonical()) {
		if _, err := os.Lstat(parent); err == nil {
			break
		}
		parent = filepath.Dir(parent)
	}
	if _, err := os.Lstat(parent); err == nil {
		canonicalParent, err := filepath.EvalSymlinks(parent)
		if err != nil {
			return model.WrapIO(err)
		}
		if !isWithinDir(canonicalParent, dest.Canonical()) {
			return model.PathTraversal(normalized)
		}
	}

	if _, err := os.Lstat(joined); err == nil {
		canonical, err := filepath.EvalSymlinks(joined)
		if err != nil {
			return model.WrapIO(err)
		}
		if !isWithinDir(canonical, dest.Canonical()) {
			return model.PathTraversal(normalized)
		}
		return nil
	}

	if !isWithinDir(joined, dest.Canonical()) {
		return model.PathTraversal(normalized)
	}
	return nil
}

func isWithinDir(path, dir string) bool {
	if path == dir {
		return true
	}
	if dir == string(filepath.Separator) {
		return filepath.IsAbs(path)
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

func containsNull(path string) bool {
	return strings.ContainsRune(path, '\x00')
}

func isAbsolute(path string) bool {
	return filepath.IsAbs(path) || filepath.VolumeName(path) != "" ||
		strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\")
}

func quoteForError(s string) string {
	return strings.ReplaceAll(s, "\x00", `\0`)
}
