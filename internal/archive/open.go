package archive

import (
	"io"

	"github.com/bugops/exarch/internal/model"
)

// Open detects path's format by extension and returns the matching
// model.ArchiveSource, ready for Next() to be called.
func Open(path string, c *model.SecurityConfig) (model.ArchiveSource, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatTar, FormatTarGz, FormatTarBz2, FormatTarXz, FormatTarZst:
		return OpenTar(path, format)
	case FormatZip:
		return OpenZip(path)
	case Format7z:
		return OpenSevenZ(path, c)
	default:
		return nil, model.ErrUnsupportedFormat
	}
}

// OpenReader is Open for an already-opened byte source: name supplies
// the extension for format detection, ra and size the bytes. The caller
// keeps ownership of ra; closing the returned source never closes it.
func OpenReader(ra io.ReaderAt, size int64, name string, c *model.SecurityConfig) (model.ArchiveSource, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatTar, FormatTarGz, FormatTarBz2, FormatTarXz, FormatTarZst:
		return NewTarSource(io.NewSectionReader(ra, 0, size), format)
	case FormatZip:
		return NewZipSource(ra, size)
	case Format7z:
		return NewSevenZSource(ra, size, c)
	default:
		return nil, model.ErrUnsupportedFormat
	}
}
