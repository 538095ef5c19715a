package ioprim

import "io"

// CountingWriter wraps an io.Writer and tracks bytes successfully
// written, for creation to report compressed size without re-deriving
// it from the compressor.
type CountingWriter struct {
	w     io.Writer
	count uint64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write accumulates the returned short-count on every call, so partial
// writes are counted at what actually reached the inner writer.
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.count += uint64(n)
	return n, err
}

// Count returns the total bytes written so far.
func (c *CountingWriter) Count() uint64 { return c.count }
