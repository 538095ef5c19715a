// Package ioprim provides the reusable I/O primitives the extraction and
// creation engines share: a fixed-size copy buffer, a context-aware
// copy routine with checked-arithmetic byte accounting, and a counting
// writer.
package ioprim

import (
	"context"
	"errors"
	"io"

	"github.com/bugops/exarch/internal/model"
)

// CopyBufferSize is the fixed size of the reusable copy buffer. Callers
// allocate one buffer per extraction and pass it to every
// CopyWithBuffer call so it is reused rather than reallocated per
// entry.
const CopyBufferSize = 64 * 1024

// NewBuffer allocates one reusable copy buffer.
func NewBuffer() []byte { return make([]byte, CopyBufferSize) }

// CopyWithBuffer copies from src to dst using buf, honoring ctx
// cancellation between reads, and returns the number of bytes copied.
// A short read continues the loop rather than aborting; a write error
// or a non-EOF read error aborts the copy.
func CopyWithBuffer(ctx context.Context, dst io.Writer, src io.Reader, buf []byte) (uint64, error) {
	if len(buf) == 0 {
		buf = NewBuffer()
	}

	var total uint64
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				return total, model.WrapIO(writeErr)
			}
			newTotal := total + uint64(n)
			if newTotal < total {
				return total, model.QuotaExceeded(model.QuotaResource{Kind: model.QuotaKindIntegerOverflow})
			}
			total = newTotal
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return total, nil
			}
			return total, model.WrapIO(readErr)
		}
	}
}
