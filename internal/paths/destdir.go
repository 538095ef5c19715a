// Package paths implements the validated-path types: DestDir, SafePath,
// and SafeSymlink. None of the three can be built from a raw string;
// the only way to obtain one is through its validating constructor, so
// any function accepting one by value has a machine-checked guarantee
// that path validation already ran.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bugops/exarch/internal/model"
)

// DestDir is the canonicalized, writable directory an extraction or
// verification operation is rooted at. All containment
// checks in this package compare against its Canonical form.
type DestDir struct {
	canonical string
}

// NewDestDir validates dir and returns its DestDir: dir must exist, be a
// directory, and be writable by the current process. The returned
// Canonical path has all symlinks resolved, so later containment checks
// can do a plain string-prefix comparison instead of re-resolving on
// every entry.
func NewDestDir(dir string) (*DestDir, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, model.WrapIO(err)
	}
	if !info.IsDir() {
		return nil, model.WrapIO(fmt.Errorf("destination is not a directory: %s", dir))
	}

	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, model.WrapIO(err)
	}
	canonical, err = filepath.Abs(canonical)
	if err != nil {
		return nil, model.WrapIO(err)
	}

	if err := checkWritable(canonical); err != nil {
		return nil, err
	}

	return &DestDir{canonical: canonical}, nil
}

// Canonical returns the destination's canonical absolute path.
func (d *DestDir) Canonical() string { return d.canonical }

// Join joins a validated-relative path onto the destination. Callers
// must only pass a path that already came out of a SafePath/SafeSymlink
// validator.
func (d *DestDir) Join(relative string) string {
	return filepath.Join(d.canonical, relative)
}
