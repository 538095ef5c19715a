package creation

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"time"

	digest "github.com/opencontainers/go-digest"

	"github.com/bugops/exarch/internal/ioprim"
	"github.com/bugops/exarch/internal/model"
)


// CreateZip walks root, applies filters, and writes a ZIP archive to
// outputPath, storing Unix mode bits (including the symlink bit) in the
// external attributes field internal/archive.ZipSource reads back.
func CreateZip(ctx context.Context, root, outputPath string, filters Filters, cb model.ProgressCallback) (model.CreationReport, error) {
	start := time.Now()
	report := model.CreationReport{}

	out, err := os.Create(outputPath)
	if err != nil {
		return report, model.WrapIO(err)
	}
	defer out.Close()

	digester := digest.SHA256.Digester()
	countW := ioprim.NewCountingWriter(io.MultiWriter(out, digester.Hash()))
	zw := zip.NewWriter(countW)

	fsys := NewOSFS(root)
	entries, err := Walk(fsys, filters.Allows)
	if err != nil {
		return report, err
	}

	buf := ioprim.NewBuffer()
	for i, e := range entries {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}
		if err := writeZipEntry(ctx, zw, fsys, e, buf, len(entries), i+1, &report, cb); err != nil {
			return report, err
		}
	}

	if err := zw.Close(); err != nil {
		return report, model.WrapIO(err)
	}

	report.BytesCompressed = countW.Count()
	report.BlobDigest = digester.Digest().String()
	report.Duration = time.Since(start)
	if cb != nil {
		cb.OnComplete()
	}
	return report, nil
}

func writeZipEntry(ctx context.Context, zw *zip.Writer, fsys *osFS, e walkEntry, buf []byte, totalEntries, index int, report *model.CreationReport, cb model.ProgressCallback) error {
	switch e.kind {
	case model.EntryDirectory:
		hdr := &zip.FileHeader{Name: e.relPath + "/"}
		hdr.SetMode(os.FileMode(e.mode) | os.ModeDir)
		if _, err := zw.CreateHeader(hdr); err != nil {
			return model.WrapIO(err)
		}
		report.DirectoriesAdded++
		return nil

	case model.EntrySymlink:
		hdr := &zip.FileHeader{Name: e.relPath, Method: zip.Store}
		hdr.SetMode(os.ModeSymlink | 0o777)
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return model.WrapIO(err)
		}
		if _, err := w.Write([]byte(e.target)); err != nil {
			return model.WrapIO(err)
		}
		report.SymlinksAdded++
		return nil

	default:
		hdr := &zip.FileHeader{Name: e.relPath, Method: zip.Deflate}
		hdr.SetMode(os.FileMode(e.mode))
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return model.WrapIO(err)
		}
		f, err := fsys.Open(e.relPath)
		if err != nil {
			return model.WrapIO(err)
		}
		if cb != nil {
			cb.OnEntryStart(e.relPath, totalEntries, index)
		}
		n, err := ioprim.CopyWithBuffer(ctx, w, f, buf)
		f.Close()
		if err != nil {
			return err
		}
		report.FilesAdded++
		report.BytesUncompressed += n
		if cb != nil {
			cb.OnBytesWritten(int64(n))
			cb.OnEntryComplete(e.relPath)
		}
		return nil
	}
}
