// Package progress implements the batched progress-reporting reader
// used by extraction. Per-Read callbacks become the
// bottleneck once an archive holds thousands of small entries, so bytes
// are accumulated and flushed in configurable chunks.
package progress

import "io"

// Callback is called to report progress during I/O operations.
type Callback func(bytesTransferred, totalBytes int64)

// DefaultBatchSize is the default batching threshold: 1 MiB.
const DefaultBatchSize = 1 << 20

// Reader wraps an io.Reader, tracks cumulative bytes read, and invokes
// callback in batches of at least BatchSize bytes rather than on every
// Read. The final partial batch is flushed by Close.
type Reader struct {
	reader    io.Reader
	callback  Callback
	total     int64
	read      int64
	batchSize int64
	pending   int64
}

// NewReader creates a batched progress-tracking reader. total is the
// expected size (-1 if unknown). batchSize <= 0 selects DefaultBatchSize.
func NewReader(r io.Reader, total int64, batchSize int64, callback Callback) *Reader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Reader{
		reader:    r,
		callback:  callback,
		total:     total,
		batchSize: batchSize,
	}
}

// Read implements io.Reader and reports progress once accumulated bytes
// reach the batch size.
func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)
	if n > 0 {
		r.read += int64(n)
		r.pending += int64(n)
		if r.pending >= r.batchSize {
			r.flush()
		}
	}
	return n, err
}

func (r *Reader) flush() {
	if r.pending == 0 {
		return
	}
	if r.callback != nil {
		r.callback(r.read, r.total)
	}
	r.pending = 0
}

// Close flushes any residual batched bytes, then closes the underlying
// reader if it implements io.Closer.
func (r *Reader) Close() error {
	r.flush()
	if closer, ok := r.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
