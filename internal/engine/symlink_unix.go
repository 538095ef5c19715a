//go:build unix

package engine

import (
	"io/fs"
	"os"

	"github.com/bugops/exarch/internal/model"
)

// materializeSymlink creates a symlink via a temp-sibling-then-rename:
// this closes the window where an attacker could plant their own
// symlink between a Remove and a Symlink. Unlike file creation, symlink
// creation is not idempotent: a pre-existing entry at the link path is
// a collision, surfaced as an I/O error the same way a hardlink
// collision is.
func materializeSymlink(full, target string) error {
	if _, err := os.Lstat(full); err == nil {
		return model.WrapIO(&os.PathError{Op: "symlink", Path: full, Err: fs.ErrExist})
	}

	tmp := full + ".exarch-tmp"
	_ = os.Remove(tmp)

	if err := os.Symlink(target, tmp); err != nil {
		return model.WrapIO(err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return model.WrapIO(err)
	}
	return nil
}
