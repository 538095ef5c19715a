package exarch

import "github.com/bugops/exarch/internal/model"

// QuotaResource identifies which extraction quota was exceeded.
type QuotaResource = model.QuotaResource

// QuotaKind enumerates the resources a QuotaTracker can exhaust.
type QuotaKind = model.QuotaKind

const (
	QuotaKindFileCount       = model.QuotaKindFileCount
	QuotaKindTotalSize       = model.QuotaKindTotalSize
	QuotaKindFileSize        = model.QuotaKindFileSize
	QuotaKindIntegerOverflow = model.QuotaKindIntegerOverflow
)

// Error is the closed error taxonomy returned by every extraction,
// creation, list, and verify operation.
//
// Each Kind carries enough structured data to render a diagnostic and,
// where applicable, the offending path or numeric bounds. Use
// IsSecurityViolation and IsRecoverable to classify an Error without
// switching on Kind directly, and errors.As to recover the structured
// payload at a binding boundary.
type Error = model.Error

// ErrKind is the closed set of extraction/creation error kinds.
type ErrKind = model.ErrKind

const (
	ErrKindIO                 = model.ErrKindIO
	ErrKindUnsupportedFormat  = model.ErrKindUnsupportedFormat
	ErrKindInvalidArchive     = model.ErrKindInvalidArchive
	ErrKindPathTraversal      = model.ErrKindPathTraversal
	ErrKindSymlinkEscape      = model.ErrKindSymlinkEscape
	ErrKindHardlinkEscape     = model.ErrKindHardlinkEscape
	ErrKindZipBomb            = model.ErrKindZipBomb
	ErrKindInvalidPermissions = model.ErrKindInvalidPermissions
	ErrKindQuotaExceeded      = model.ErrKindQuotaExceeded
	ErrKindSecurityViolation  = model.ErrKindSecurityViolation
)

// IsSecurityViolation reports whether err represents a security
// violation: path/symlink/hardlink escapes, zip bombs, invalid
// permissions, quota overruns, or a generic policy violation.
func IsSecurityViolation(err error) bool { return model.IsSecurityViolation(err) }

// IsRecoverable reports whether a caller could plausibly skip the
// offending entry and continue extraction. Malformed archives,
// unsupported formats, zip bombs, and quota overruns are not
// recoverable; the remaining security violations are.
func IsRecoverable(err error) bool { return model.IsRecoverable(err) }

// ErrUnsupportedFormat is returned by extension-based format detection
// when the archive's extension is not one of the supported kinds.
var ErrUnsupportedFormat = model.ErrUnsupportedFormat

// WrapIO wraps a platform I/O error in the closed taxonomy. Adapters and
// the extraction engine use this at every os.* / io.* call site so
// callers only ever see *exarch.Error.
func WrapIO(err error) error { return model.WrapIO(err) }

// InvalidArchive reports a malformed archive or an entry kind the
// format adapter must reject (unknown tar typeflags, truncated headers).
func InvalidArchive(reason string) error { return model.InvalidArchive(reason) }

// SecurityViolation reports a policy violation that doesn't fit one of
// the more specific kinds (banned path component, excessive depth,
// symlinks/hardlinks disabled, solid/encrypted archive rejection).
func SecurityViolation(reason string) error { return model.SecurityViolation(reason) }

// PathTraversal reports an entry path that escapes the destination
// directory or is absolute/contains ".." when not permitted.
func PathTraversal(path string) error { return model.PathTraversal(path) }

// SymlinkEscape reports a symlink whose target escapes the destination
// directory.
func SymlinkEscape(path string) error { return model.SymlinkEscape(path) }

// HardlinkEscape reports a hardlink whose target escapes the
// destination directory.
func HardlinkEscape(path string) error { return model.HardlinkEscape(path) }

// ZipBomb reports an entry whose compression ratio exceeds the
// configured maximum.
func ZipBomb(compressed, uncompressed uint64, ratio float64) error {
	return model.ZipBomb(compressed, uncompressed, ratio)
}

// InvalidPermissions reports an entry mode banned by policy.
func InvalidPermissions(path string, mode uint32) error {
	return model.InvalidPermissions(path, mode)
}

// QuotaExceeded reports a quota tracker limit being hit.
func QuotaExceeded(resource QuotaResource) error { return model.QuotaExceeded(resource) }
