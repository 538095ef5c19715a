package archive

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/bugops/exarch/internal/model"
)

// TarSource adapts archive/tar (optionally wrapped in a gzip, bzip2,
// xz, or zstd decompressor) to model.ArchiveSource.
type TarSource struct {
	file   io.Closer // the underlying byte source, when owned by this adapter
	closer io.Closer // the decompressor, if any, closed before file
	tr     *tar.Reader
	format Format
}

// OpenTar opens path and wraps it in the decompressor indicated by
// format (FormatTar for no wrapping).
func OpenTar(path string, format Format) (*TarSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.WrapIO(err)
	}
	src, err := NewTarSource(f, format)
	if err != nil {
		f.Close()
		return nil, err
	}
	src.file = f
	return src, nil
}

// NewTarSource wraps r, a raw tar byte stream, in the decompressor
// indicated by format. Closing the returned source closes only the
// decompressor, not r.
func NewTarSource(r io.Reader, format Format) (*TarSource, error) {
	var reader io.Reader = r
	var closer io.Closer

	switch format {
	case FormatTar:
		// no wrapping
	case FormatTarGz:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, model.InvalidArchive("invalid gzip stream: " + err.Error())
		}
		reader, closer = gz, gz
	case FormatTarBz2:
		reader = bzip2.NewReader(r)
	case FormatTarXz:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, model.InvalidArchive("invalid xz stream: " + err.Error())
		}
		reader = xr
	case FormatTarZst:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, model.InvalidArchive("invalid zstd stream: " + err.Error())
		}
		zrc := zr.IOReadCloser()
		reader, closer = zrc, zrc
	default:
		return nil, model.ErrUnsupportedFormat
	}

	return &TarSource{
		closer: closer,
		tr:     tar.NewReader(reader),
		format: format,
	}, nil
}

// Next implements model.ArchiveSource.
func (s *TarSource) Next() (model.RawEntry, io.Reader, error) {
	header, err := s.tr.Next()
	if errors.Is(err, io.EOF) {
		return model.RawEntry{}, nil, io.EOF
	}
	if err != nil {
		return model.RawEntry{}, nil, model.InvalidArchive(err.Error())
	}

	if header.Size < 0 {
		return model.RawEntry{}, nil, model.InvalidArchive("negative size in tar header: " + header.Name)
	}

	raw := model.RawEntry{
		Path:             header.Name,
		UncompressedSize: uint64(header.Size),
		ModTime:          header.ModTime,
	}
	mode := uint32(header.Mode) //nolint:gosec // narrowing is fine; mode is sanitized downstream
	raw.Mode = &mode

	switch header.Typeflag {
	case tar.TypeDir:
		raw.Kind = model.EntryDirectory
		raw.Mode = nil
		return raw, nil, nil
	case tar.TypeReg, tar.TypeRegA:
		raw.Kind = model.EntryFile
		// Plain tar has no per-entry compressed size: compression wraps
		// the whole stream, not individual members. CompressedSize stays
		// nil, so the ratio check is skipped and total-quota enforcement
		// carries the defence.
		return raw, s.tr, nil
	case tar.TypeSymlink:
		raw.Kind = model.EntrySymlink
		raw.Target = header.Linkname
		raw.Mode = nil
		return raw, nil, nil
	case tar.TypeLink:
		raw.Kind = model.EntryHardlink
		raw.Target = header.Linkname
		raw.Mode = nil
		return raw, nil, nil
	default:
		return model.RawEntry{}, nil, model.InvalidArchive("unsupported tar entry type for " + header.Name)
	}
}

// FormatName implements model.ArchiveSource.
func (s *TarSource) FormatName() string { return s.format.String() }

// Close implements model.ArchiveSource.
func (s *TarSource) Close() error {
	var err error
	if s.closer != nil {
		err = s.closer.Close()
	}
	if s.file != nil {
		if cerr := s.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return model.WrapIO(err)
}
