// Package creation implements archive creation: walking a source
// directory tree and writing TAR or ZIP archives that round-trip with
// this module's own extractor.
package creation

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bugops/exarch/internal/model"
)

// osFS is a symlink-aware fs.FS rooted at a directory. Plain fs.FS
// implementations follow symlinks transparently; archive creation needs
// to see them as symlinks so it can store a link entry instead of
// copying the target's content.
type osFS struct {
	root string
}

// NewOSFS roots a walker at root.
func NewOSFS(root string) *osFS {
	return &osFS{root: root}
}

func (o *osFS) resolve(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", fs.ErrInvalid
	}
	return filepath.Join(o.root, name), nil
}

// Open implements fs.FS.
func (o *osFS) Open(name string) (fs.File, error) {
	full, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// ReadDir implements fs.ReadDirFS.
func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	full, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(full)
}

// Lstat reports the entry's metadata without following a trailing
// symlink, so the walker can distinguish a symlink from its target.
func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	full, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return os.Lstat(full)
}

// ReadLink returns a symlink's stored target.
func (o *osFS) ReadLink(name string) (string, error) {
	full, err := o.resolve(name)
	if err != nil {
		return "", err
	}
	return os.Readlink(full)
}

// walkEntry is one filesystem entry discovered during a walk, already
// classified into the model's EntryKind.
type walkEntry struct {
	relPath string
	kind    model.EntryKind
	size    uint64
	mode    uint32
	target  string // set for symlinks
}

// Walk walks fsys (normally an *osFS) starting at ".", applying filter
// to each relative path, and returns entries depth-first, each
// directory's children in name order — deterministic creation output,
// which matters for reproducible archives and for tests.
func Walk(fsys *osFS, filter func(relPath string) bool) ([]walkEntry, error) {
	var entries []walkEntry

	var walkDir func(dir string) error
	walkDir = func(dir string) error {
		children, err := fsys.ReadDir(dir)
		if err != nil {
			return model.WrapIO(err)
		}
		for _, child := range children {
			rel := child.Name()
			if dir != "." {
				rel = dir + "/" + child.Name()
			}
			if filter != nil && !filter(rel) {
				continue
			}

			info, err := fsys.Lstat(rel)
			if err != nil {
				return model.WrapIO(err)
			}

			switch {
			case info.Mode()&os.ModeSymlink != 0:
				target, err := fsys.ReadLink(rel)
				if err != nil {
					return model.WrapIO(err)
				}
				entries = append(entries, walkEntry{relPath: rel, kind: model.EntrySymlink, target: target})
			case info.IsDir():
				entries = append(entries, walkEntry{relPath: rel, kind: model.EntryDirectory, mode: uint32(info.Mode().Perm())})
				if err := walkDir(rel); err != nil {
					return err
				}
			default:
				entries = append(entries, walkEntry{
					relPath: rel,
					kind:    model.EntryFile,
					size:    uint64(info.Size()),
					mode:    uint32(info.Mode().Perm()),
				})
			}
		}
		return nil
	}

	if err := walkDir("."); err != nil {
		return nil, err
	}
	return entries, nil
}
