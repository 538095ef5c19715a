package exarch

import (
	"context"
	"log/slog"

	"github.com/bugops/exarch/internal/archive"
	"github.com/bugops/exarch/internal/engine"
	"github.com/bugops/exarch/internal/paths"
)

// ExtractArchive opens archivePath, detects its format by extension, and
// extracts every entry into outputDir under config's policy. outputDir
// must already exist. The reference policy aborts on the first
// validation or I/O failure; the returned report reflects progress up
// to that point.
func ExtractArchive(archivePath, outputDir string, config *SecurityConfig) (ExtractionReport, error) {
	return ExtractArchiveWithProgress(context.Background(), archivePath, outputDir, config, nil)
}

// ExtractArchiveWithProgress is ExtractArchive with an explicit context
// (for cancellation) and an optional progress callback (nil is valid).
func ExtractArchiveWithProgress(ctx context.Context, archivePath, outputDir string, config *SecurityConfig, cb ProgressCallback) (ExtractionReport, error) {
	return extractArchive(ctx, archivePath, outputDir, config, cb, nil)
}

// ExtractArchiveWithLogger is ExtractArchiveWithProgress with an
// explicit *slog.Logger for diagnostic output (entry-by-entry at Debug,
// the final report at Info, rejected/failed entries at Warn). A nil
// logger discards every message.
func ExtractArchiveWithLogger(ctx context.Context, archivePath, outputDir string, config *SecurityConfig, cb ProgressCallback, logger *slog.Logger) (ExtractionReport, error) {
	return extractArchive(ctx, archivePath, outputDir, config, cb, logger)
}

func extractArchive(ctx context.Context, archivePath, outputDir string, config *SecurityConfig, cb ProgressCallback, logger *slog.Logger) (ExtractionReport, error) {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	src, err := archive.Open(archivePath, config)
	if err != nil {
		return ExtractionReport{}, err
	}
	defer src.Close()

	dest, err := paths.NewDestDir(outputDir)
	if err != nil {
		return ExtractionReport{}, err
	}

	return engine.Extract(ctx, src, dest, config, cb, logger)
}
