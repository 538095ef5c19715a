// Package engine implements the format-agnostic extraction driver:
// pull entry metadata from an ArchiveSource, validate it through
// internal/security, and materialize files, directories, and links on
// disk. The driver is written once against the ArchiveSource interface;
// the per-format adapters in internal/archive plug into it.
package engine

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bugops/exarch/internal/ioprim"
	"github.com/bugops/exarch/internal/model"
	"github.com/bugops/exarch/internal/paths"
	"github.com/bugops/exarch/internal/progress"
	"github.com/bugops/exarch/internal/security"
)

const defaultDirMode = 0o750

// Extract drives src entry by entry into dest under config c, reporting
// progress via cb (nil is valid, the no-observer case). It aborts on
// the first validation or I/O failure; the returned report reflects
// progress up to that point. A nil logger discards every message.
func Extract(ctx context.Context, src model.ArchiveSource, dest *paths.DestDir, c *model.SecurityConfig, cb model.ProgressCallback, logger *slog.Logger) (model.ExtractionReport, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	start := time.Now()
	report := model.ExtractionReport{}
	validator := security.NewEntryValidator(dest, c)
	buf := ioprim.NewBuffer()
	createdDirs := make(map[string]struct{})

	logger.Debug("extraction started", "dest", dest.Canonical(), "format", src.FormatName())

	index := 0
	for {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		raw, body, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, asArchiveError(err)
		}
		index++

		validated, err := validator.Validate(raw)
		if err != nil {
			logger.Warn("entry rejected by security validator", "path", raw.Path, "error", err)
			return report, err
		}

		if cb != nil {
			cb.OnEntryStart(raw.Path, -1, index)
		}

		if err := materialize(ctx, dest, validated, raw, body, buf, c, &report, cb, createdDirs); err != nil {
			logger.Warn("entry materialization failed", "path", raw.Path, "error", err)
			return report, err
		}

		logger.Debug("entry extracted", "path", raw.Path, "kind", validated.Kind)

		if cb != nil {
			cb.OnEntryComplete(raw.Path)
		}
	}

	report.Duration = time.Since(start)
	logger.Info("extraction complete",
		"files", report.FilesExtracted, "directories", report.DirectoriesCreated,
		"symlinks", report.SymlinksCreated, "hardlinks", report.HardlinksCreated,
		"bytes_written", report.BytesWritten, "duration", report.Duration)
	if cb != nil {
		cb.OnComplete()
	}
	return report, nil
}

func materialize(
	ctx context.Context,
	dest *paths.DestDir,
	v security.ValidatedEntry,
	raw model.RawEntry,
	body io.Reader,
	buf []byte,
	c *model.SecurityConfig,
	report *model.ExtractionReport,
	cb model.ProgressCallback,
	createdDirs map[string]struct{},
) error {
	switch v.Kind {
	case model.EntryDirectory:
		full := dest.Join(v.Path.Plain.Relative())
		if err := ensureDir(full, createdDirs); err != nil {
			return model.WrapIO(err)
		}
		report.DirectoriesCreated++
		return nil

	case model.EntryFile:
		full := dest.Join(v.Path.Plain.Relative())
		if err := ensureDir(filepath.Dir(full), createdDirs); err != nil {
			return model.WrapIO(err)
		}

		mode := fs.FileMode(0o644)
		if c.PreservePermissions && v.Mode != nil {
			mode = fs.FileMode(*v.Mode)
		}

		// Write to a temp sibling and rename at close, so a mid-entry
		// failure never leaves a half-written file under the final name.
		// A duplicate entry for the same path overwrites via the rename.
		tmp := full + ".exarch-tmp"
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
		if err != nil {
			return model.WrapIO(err)
		}

		var written uint64
		var copyErr error
		if body != nil {
			reader := body
			var flushProgress func()
			if cb != nil {
				// Batch byte deltas through progress.Reader instead of
				// reporting every 64 KiB write to the callback.
				var last int64
				pr := progress.NewReader(struct{ io.Reader }{body}, int64(raw.UncompressedSize), 0,
					func(transferred, _ int64) {
						cb.OnBytesWritten(transferred - last)
						last = transferred
					})
				reader = pr
				flushProgress = func() { _ = pr.Close() }
			}
			written, copyErr = ioprim.CopyWithBuffer(ctx, f, reader, buf)
			if flushProgress != nil {
				flushProgress()
			}
		}
		closeErr := f.Close()

		if copyErr != nil {
			_ = os.Remove(tmp)
			return copyErr
		}
		if closeErr != nil {
			_ = os.Remove(tmp)
			return model.WrapIO(closeErr)
		}

		if c.PreservePermissions && v.Mode != nil {
			if err := os.Chmod(tmp, fs.FileMode(*v.Mode)); err != nil {
				_ = os.Remove(tmp)
				return model.WrapIO(err)
			}
		}

		if err := os.Rename(tmp, full); err != nil {
			_ = os.Remove(tmp)
			return model.WrapIO(err)
		}

		report.FilesExtracted++
		report.BytesWritten += written
		return nil

	case model.EntrySymlink:
		full := dest.Join(v.Path.Symlink.LinkPath())
		if err := ensureDir(filepath.Dir(full), createdDirs); err != nil {
			return model.WrapIO(err)
		}
		if err := materializeSymlink(full, v.Path.Symlink.Target()); err != nil {
			return err
		}
		report.SymlinksCreated++
		return nil

	case model.EntryHardlink:
		full := dest.Join(v.Path.Plain.Relative())
		targetFull := dest.Join(v.Path.HardlinkTo.Relative())
		if err := ensureDir(filepath.Dir(full), createdDirs); err != nil {
			return model.WrapIO(err)
		}
		if _, err := os.Lstat(targetFull); err != nil {
			return model.InvalidArchive("hardlink target not yet extracted: " + raw.Target)
		}
		if err := os.Link(targetFull, full); err != nil {
			return model.WrapIO(err)
		}
		report.HardlinksCreated++
		return nil
	}

	return nil
}

// asArchiveError keeps an adapter's typed error intact and classifies
// anything else as an invalid archive.
func asArchiveError(err error) error {
	var e *model.Error
	if errors.As(err, &e) {
		return err
	}
	return model.InvalidArchive(err.Error())
}

// ensureDir mkdir -p's path, absorbing "already exists", with a
// per-extraction cache so repeated ancestor directories across many
// entries are only created once.
func ensureDir(path string, created map[string]struct{}) error {
	if path == "" || path == "." {
		return nil
	}
	if _, ok := created[path]; ok {
		return nil
	}
	if err := os.MkdirAll(path, defaultDirMode); err != nil {
		return err
	}
	created[path] = struct{}{}
	return nil
}

