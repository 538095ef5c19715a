// Package security implements the entry validation pipeline: quota
// tracking, permission sanitization, zip-bomb detection, hardlink
// tracking, and the EntryValidator orchestrator that runs all of them
// in the fixed order the engine depends on. Callers stream entries one
// at a time; the trackers hold running state for one operation.
package security

import "github.com/bugops/exarch/internal/model"

// QuotaTracker holds the running totals for one extraction or creation
// operation. Every increment is checked; overflow is reported as
// QuotaKindIntegerOverflow rather than wrapping silently.
type QuotaTracker struct {
	filesExtracted uint64
	bytesWritten   uint64
}

// FilesExtracted returns the current file count.
func (q *QuotaTracker) FilesExtracted() uint64 { return q.filesExtracted }

// BytesWritten returns the current cumulative byte count.
func (q *QuotaTracker) BytesWritten() uint64 { return q.bytesWritten }

// RecordFile applies the three-step quota check: compare size against
// MaxFileSize, increment and bound the file count, then checked-add
// size into the running byte total. Directories and links never pass
// through here, so only regular files count against MaxFileCount.
func (q *QuotaTracker) RecordFile(size uint64, c *model.SecurityConfig) error {
	if c.MaxFileSize > 0 && size > c.MaxFileSize {
		return model.QuotaExceeded(model.QuotaResource{
			Kind: model.QuotaKindFileSize, Current: size, Max: c.MaxFileSize,
		})
	}

	newCount := q.filesExtracted + 1
	if c.MaxFileCount > 0 && newCount > c.MaxFileCount {
		return model.QuotaExceeded(model.QuotaResource{
			Kind: model.QuotaKindFileCount, Current: newCount, Max: c.MaxFileCount,
		})
	}

	newTotal := q.bytesWritten + size
	if newTotal < q.bytesWritten {
		return model.QuotaExceeded(model.QuotaResource{Kind: model.QuotaKindIntegerOverflow})
	}
	if c.MaxTotalSize > 0 && newTotal > c.MaxTotalSize {
		return model.QuotaExceeded(model.QuotaResource{
			Kind: model.QuotaKindTotalSize, Current: newTotal, Max: c.MaxTotalSize,
		})
	}

	q.filesExtracted = newCount
	q.bytesWritten = newTotal
	return nil
}
