// Package inspection implements the list and verify operations: walking
// an archive and reporting on its contents without extracting files to
// the real destination tree.
package inspection

import (
	"errors"
	"io"

	"github.com/bugops/exarch/internal/model"
)

// List walks src and builds an ArchiveManifest without writing to disk.
// Quota limits still bound memory: a manifest itself can't exhaust disk,
// but an adversarial archive with billions of zero-byte entries can
// exhaust memory building the manifest, so MaxFileCount still applies.
func List(src model.ArchiveSource, c *model.SecurityConfig) (model.ArchiveManifest, error) {
	manifest := model.ArchiveManifest{}
	var fileCount uint64

	for {
		raw, body, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return manifest, asArchiveError(err)
		}
		if body != nil {
			if _, err := io.Copy(io.Discard, body); err != nil {
				return manifest, model.WrapIO(err)
			}
		}

		if raw.Kind == model.EntryFile {
			fileCount++
			if c.MaxFileCount > 0 && fileCount > c.MaxFileCount {
				return manifest, model.QuotaExceeded(model.QuotaResource{
					Kind: model.QuotaKindFileCount, Current: fileCount, Max: c.MaxFileCount,
				})
			}
		}

		manifest.Entries = append(manifest.Entries, model.ManifestEntry{
			Path:             raw.Path,
			Kind:             raw.Kind,
			UncompressedSize: raw.UncompressedSize,
			CompressedSize:   raw.CompressedSize,
			Mode:             raw.Mode,
			ModTime:          raw.ModTime,
			LinkTarget:       raw.Target,
		})
	}

	return manifest, nil
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
