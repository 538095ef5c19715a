package archive

import (
	"archive/zip"
	"io"
	"strings"

	"github.com/bugops/exarch/internal/model"
)

const unixModeSymlink = 0o120000

// ZipSource adapts archive/zip to model.ArchiveSource. Entry paths are
// backslash-normalized on every platform, and a stored entry whose Unix
// mode carries the link bits (0120000, recovered from the external
// attributes) is surfaced as a symlink whose content is the target.
type ZipSource struct {
	closer  io.Closer // the underlying file, when owned by this adapter
	files   []*zip.File
	idx     int
	current io.ReadCloser
}

// OpenZip opens path as a ZIP archive, rejecting the whole archive if
// any entry carries the encryption flag.
func OpenZip(path string) (*ZipSource, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, model.InvalidArchive("invalid zip archive: " + err.Error())
	}
	src, err := newZipSource(r.File)
	if err != nil {
		r.Close()
		return nil, err
	}
	src.closer = r
	return src, nil
}

// NewZipSource reads a ZIP archive from any readable+seekable byte
// source. Closing the returned source does not close ra.
func NewZipSource(ra io.ReaderAt, size int64) (*ZipSource, error) {
	r, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, model.InvalidArchive("invalid zip archive: " + err.Error())
	}
	return newZipSource(r.File)
}

func newZipSource(files []*zip.File) (*ZipSource, error) {
	const zipFlagEncrypted = 0x1
	for _, f := range files {
		if f.Flags&zipFlagEncrypted != 0 {
			return nil, model.SecurityViolation("encrypted archives not supported")
		}
	}
	return &ZipSource{files: files}, nil
}

// Next implements model.ArchiveSource.
func (s *ZipSource) Next() (model.RawEntry, io.Reader, error) {
	if s.current != nil {
		s.current.Close()
		s.current = nil
	}
	if s.idx >= len(s.files) {
		return model.RawEntry{}, nil, io.EOF
	}
	f := s.files[s.idx]
	s.idx++

	name := strings.ReplaceAll(f.Name, "\\", "/")
	unixMode := uint32(f.ExternalAttrs >> 16)

	raw := model.RawEntry{
		Path:             name,
		UncompressedSize: f.UncompressedSize64,
		ModTime:          f.Modified,
	}
	compressed := f.CompressedSize64
	raw.CompressedSize = &compressed

	switch {
	case strings.HasSuffix(name, "/"):
		raw.Kind = model.EntryDirectory
		return raw, nil, nil
	case unixMode != 0 && unixMode&unixModeSymlink == unixModeSymlink:
		rc, err := f.Open()
		if err != nil {
			return model.RawEntry{}, nil, model.WrapIO(err)
		}
		target, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return model.RawEntry{}, nil, model.WrapIO(err)
		}
		raw.Kind = model.EntrySymlink
		raw.Target = string(target)
		return raw, nil, nil
	default:
		rc, err := f.Open()
		if err != nil {
			return model.RawEntry{}, nil, model.WrapIO(err)
		}
		if unixMode != 0 {
			mode := unixMode &^ unixModeSymlink
			if mode != 0 {
				raw.Mode = &mode
			}
		}
		raw.Kind = model.EntryFile
		s.current = rc
		return raw, rc, nil
	}
}

// FormatName implements model.ArchiveSource.
func (s *ZipSource) FormatName() string { return "zip" }

// Close implements model.ArchiveSource.
func (s *ZipSource) Close() error {
	if s.current != nil {
		s.current.Close()
	}
	if s.closer != nil {
		return model.WrapIO(s.closer.Close())
	}
	return nil
}
