package exarch

import (
	"context"
	"io"

	"github.com/bugops/exarch/internal/archive"
	"github.com/bugops/exarch/internal/engine"
	"github.com/bugops/exarch/internal/paths"
)

// OpenArchiveSource adapts an already-opened, readable and seekable byte
// source into an ArchiveSource. name supplies the extension used for
// format detection (the bytes themselves are never sniffed); ra and
// size describe the archive content. The caller keeps ownership of ra:
// closing the returned source releases only the adapter's own state.
func OpenArchiveSource(ra io.ReaderAt, size int64, name string, config *SecurityConfig) (ArchiveSource, error) {
	if config == nil {
		config = DefaultSecurityConfig()
	}
	return archive.OpenReader(ra, size, name, config)
}

// ExtractSource drives any ArchiveSource, including caller-provided
// ones, into outputDir under config's policy. The source is not closed;
// that stays with whoever constructed it.
func ExtractSource(ctx context.Context, src ArchiveSource, outputDir string, config *SecurityConfig, cb ProgressCallback) (ExtractionReport, error) {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	dest, err := paths.NewDestDir(outputDir)
	if err != nil {
		return ExtractionReport{}, err
	}

	return engine.Extract(ctx, src, dest, config, cb, nil)
}
