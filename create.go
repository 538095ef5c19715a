package exarch

import (
	"context"
	"strings"

	"github.com/bugops/exarch/internal/creation"
)

// Filters controls which entries CreateArchive includes when walking
// sourceDir.
type Filters = creation.Filters

// CreateArchive walks sourceDir and writes a new archive to
// outputPath, choosing the container format from outputPath's
// extension: ".zip" produces a ZIP archive, ".tar.gz"/".tgz" a
// gzip-compressed tar, ".tar" an uncompressed tar. Any other extension
// is ErrUnsupportedFormat: creation only targets tar and zip;
// bzip2/xz/zstd/7z are read-only containers here.
func CreateArchive(sourceDir, outputPath string, filters Filters) (CreationReport, error) {
	return CreateArchiveWithProgress(context.Background(), sourceDir, outputPath, filters, nil)
}

// CreateArchiveWithProgress is CreateArchive with an explicit context
// and an optional progress callback.
func CreateArchiveWithProgress(ctx context.Context, sourceDir, outputPath string, filters Filters, cb ProgressCallback) (CreationReport, error) {
	lower := strings.ToLower(outputPath)

	switch {
	case strings.HasSuffix(lower, ".zip"):
		return creation.CreateZip(ctx, sourceDir, outputPath, filters, cb)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return creation.CreateTar(ctx, sourceDir, outputPath, true, filters, cb)
	case strings.HasSuffix(lower, ".tar"):
		return creation.CreateTar(ctx, sourceDir, outputPath, false, filters, cb)
	default:
		return CreationReport{}, ErrUnsupportedFormat
	}
}
