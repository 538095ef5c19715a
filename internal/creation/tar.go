package creation

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"time"

	digest "github.com/opencontainers/go-digest"

	"github.com/bugops/exarch/internal/ioprim"
	"github.com/bugops/exarch/internal/model"
)

// CreateTar walks root, applies filters, and writes a (optionally
// gzip-compressed) tar archive to outputPath. A digester wraps the
// output file so the finished archive's content digest is available
// without a second pass.
func CreateTar(ctx context.Context, root, outputPath string, gzipCompress bool, filters Filters, cb model.ProgressCallback) (model.CreationReport, error) {
	start := time.Now()
	report := model.CreationReport{}

	out, err := os.Create(outputPath)
	if err != nil {
		return report, model.WrapIO(err)
	}
	defer out.Close()

	digester := digest.SHA256.Digester()
	countW := ioprim.NewCountingWriter(io.MultiWriter(out, digester.Hash()))

	var dst io.WriteCloser = nopWriteCloser{countW}
	if gzipCompress {
		dst = gzip.NewWriter(countW)
	}

	tw := tar.NewWriter(dst)

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

		if err := writeTarEntry(ctx, tw, fsys, e, buf, len(entries), i+1, &report, cb); err != nil {
			return report, err
		}
	}

	if err := tw.Close(); err != nil {
		return report, model.WrapIO(err)
	}
	if err := dst.Close(); err != nil {
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

func writeTarEntry(ctx context.Context, tw *tar.Writer, fsys *osFS, e walkEntry, buf []byte, totalEntries, index int, report *model.CreationReport, cb model.ProgressCallback) error {
	switch e.kind {
	case model.EntryDirectory:
		hdr := &tar.Header{Name: e.relPath + "/", Typeflag: tar.TypeDir, Mode: int64(e.mode)}
		if err := tw.WriteHeader(hdr); err != nil {
			return model.WrapIO(err)
		}
		report.DirectoriesAdded++
		return nil

	case model.EntrySymlink:
		hdr := &tar.Header{Name: e.relPath, Typeflag: tar.TypeSymlink, Linkname: e.target}
		if err := tw.WriteHeader(hdr); err != nil {
			return model.WrapIO(err)
		}
		report.SymlinksAdded++
		return nil

	default:
		hdr := &tar.Header{Name: e.relPath, Typeflag: tar.TypeReg, Mode: int64(e.mode), Size: int64(e.size)}
		if err := tw.WriteHeader(hdr); err != nil {
			return model.WrapIO(err)
		}
		f, err := fsys.Open(e.relPath)
		if err != nil {
			return model.WrapIO(err)
		}
		if cb != nil {
			cb.OnEntryStart(e.relPath, totalEntries, index)
		}
		n, err := ioprim.CopyWithBuffer(ctx, tw, f, buf)
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

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
