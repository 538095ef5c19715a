package cli

import (
	"errors"
	"fmt"

	exarch "github.com/bugops/exarch"
)

// formatError renders err as a one-line category plus, for the security
// and quota kinds, a HINT: line naming the related flag or policy.
func formatError(err error) string {
	if err == nil {
		return ""
	}

	var e *exarch.Error
	if !errors.As(err, &e) {
		return fmt.Sprintf("Error: %v", err)
	}

	switch e.Kind {
	case exarch.ErrKindPathTraversal:
		return fmt.Sprintf("Error: path traversal in %q\nHINT: if this archive is trusted, pass --allow-absolute-paths", e.Path)
	case exarch.ErrKindSymlinkEscape:
		return fmt.Sprintf("Error: symlink %q escapes the destination directory\nHINT: use --allow-symlinks only for archives you trust", e.Path)
	case exarch.ErrKindHardlinkEscape:
		return fmt.Sprintf("Error: hardlink %q escapes the destination directory\nHINT: use --allow-hardlinks only for archives you trust", e.Path)
	case exarch.ErrKindZipBomb:
		return fmt.Sprintf("Error: entry has compression ratio %.1f (compressed %d, uncompressed %d bytes)\nHINT: raise the limit with --max-compression-ratio", e.Ratio, e.Compressed, e.Uncompressed)
	case exarch.ErrKindInvalidPermissions:
		return fmt.Sprintf("Error: entry %q requests mode %04o, banned by policy\nHINT: pass --allow-world-writable if this is expected", e.Path, e.Mode)
	case exarch.ErrKindQuotaExceeded:
		return fmt.Sprintf("Error: %s\nHINT: %s", e.Error(), quotaHint(e))
	case exarch.ErrKindSecurityViolation:
		return fmt.Sprintf("Error: %s\nHINT: relax the relevant policy flag, or use a permissive configuration only for trusted archives", e.Error())
	case exarch.ErrKindUnsupportedFormat:
		return "Error: unsupported archive format (see --help for supported extensions)"
	case exarch.ErrKindInvalidArchive:
		return fmt.Sprintf("Error: invalid or corrupt archive (%s)", e.Reason)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func quotaHint(e *exarch.Error) string {
	switch e.Resource.Kind {
	case exarch.QuotaKindFileCount:
		return "raise the limit with --max-file-count"
	case exarch.QuotaKindTotalSize:
		return "raise the limit with --max-total-size"
	case exarch.QuotaKindFileSize:
		return "raise the limit with --max-file-size"
	default:
		return "the archive reports a size too large to represent"
	}
}
