package exarch

import (
	"github.com/bugops/exarch/internal/archive"
	"github.com/bugops/exarch/internal/inspection"
)

// ListArchive opens archivePath and builds a manifest of every entry
// without writing anything to disk. Quota limits still bound the
// manifest's own memory use (MaxFileCount), even though list never
// extracts file content.
func ListArchive(archivePath string, config *SecurityConfig) (ArchiveManifest, error) {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	src, err := archive.Open(archivePath, config)
	if err != nil {
		return ArchiveManifest{}, err
	}
	defer src.Close()

	return inspection.List(src, config)
}
