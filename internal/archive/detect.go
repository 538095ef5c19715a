// Package archive implements the per-format adapters that normalize
// TAR (+gzip/bzip2/xz/zstd), ZIP, and 7z containers into the engine's
// RawEntry model. Format dispatch is by file extension; an unrecognized
// extension is rejected rather than sniffed.
package archive

import (
	"strings"

	"github.com/bugops/exarch/internal/model"
)

// Format is the closed set of archive containers this package supports.
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatTarGz
	FormatTarBz2
	FormatTarXz
	FormatTarZst
	FormatZip
	Format7z
)

func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarBz2:
		return "tar.bz2"
	case FormatTarXz:
		return "tar.xz"
	case FormatTarZst:
		return "tar.zst"
	case FormatZip:
		return "zip"
	case Format7z:
		return "7z"
	default:
		return "unknown"
	}
}

// DetectFormat identifies an archive's format from its file name
// extension. Unknown extensions report FormatUnknown together with
// model.ErrUnsupportedFormat.
func DetectFormat(name string) (Format, error) {
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".tar"):
		return FormatTar, nil
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz2"), strings.HasSuffix(lower, ".tbz"):
		return FormatTarBz2, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return FormatTarZst, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(lower, ".7z"):
		return Format7z, nil
	default:
		return FormatUnknown, model.ErrUnsupportedFormat
	}
}
