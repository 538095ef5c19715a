// Package exarch provides secure archive extraction and creation across
// TAR (gzip/bzip2/xz/zstd), ZIP, and 7z containers.
//
// The package defends against adversarial archives that attempt to
// escape the extraction directory, exhaust disk or memory, or tamper
// with files outside the destination tree. Validated path types
// (DestDir, SafePath, SafeSymlink) in internal/paths make it a
// compile-time property that unvalidated paths never reach a filesystem
// syscall; internal/security holds the validation pipeline itself.
//
// Extraction is secure by default: symlinks, hardlinks, absolute paths,
// and world-writable permissions are all denied until explicitly
// enabled on a SecurityConfig, and quotas bound file count, file size,
// total size, compression ratio, and path depth.
package exarch
