//go:build unix

package paths

import (
	"golang.org/x/sys/unix"

	"github.com/bugops/exarch/internal/model"
)

// checkWritable probes effective write permission via access(2). This is
// advisory only — permissions can change between this check and the
// first write — but it rejects the common case (read-only destination) before any
// entry is processed instead of failing midway through an extraction.
func checkWritable(canonical string) error {
	if err := unix.Access(canonical, unix.W_OK); err != nil {
		return model.WrapIO(err)
	}
	return nil
}
