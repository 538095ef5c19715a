package ioprim

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestCopyWithBufferPreservesBytes(t *testing.T) {
	src := strings.Repeat("the quick brown fox jumps over the lazy dog ", 5000)
	var dst bytes.Buffer

	n, err := CopyWithBuffer(context.Background(), &dst, strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("CopyWithBuffer: %v", err)
	}
	if int(n) != len(src) {
		t.Errorf("copied %d bytes, want %d", n, len(src))
	}
	if dst.String() != src {
		t.Error("copy idempotence violated: output bytes != input bytes")
	}
}

func TestCopyWithBufferHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := strings.NewReader(strings.Repeat("x", 1<<20))
	_, err := CopyWithBuffer(ctx, &bytes.Buffer{}, src, nil)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestCountingWriter(t *testing.T) {
	var dst bytes.Buffer
	cw := NewCountingWriter(&dst)

	if _, err := cw.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if _, err := cw.Write([]byte(" world")); err != nil {
		t.Fatal(err)
	}
	if cw.Count() != 11 {
		t.Errorf("Count() = %d, want 11", cw.Count())
	}
}
