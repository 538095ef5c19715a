//go:build !unix

package engine

import "github.com/bugops/exarch/internal/model"

// Callers who do not want this error must disable symlinks in their
// SecurityConfig.
func materializeSymlink(string, string) error {
	return model.SecurityViolation("symlinks unsupported on this platform")
}
