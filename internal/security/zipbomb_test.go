package security

import (
	"testing"

	"github.com/bugops/exarch/internal/model"
)

func TestCheckCompressionRatioBoundary(t *testing.T) {
	c := model.DefaultSecurityConfig()
	c.MaxCompressionRatio = 100.0

	if err := CheckCompressionRatio(10, 1000, c); err != nil {
		t.Errorf("ratio exactly at the limit should pass: %v", err)
	}
	if err := CheckCompressionRatio(10, 1001, c); err == nil {
		t.Error("ratio above the limit should fail")
	}
}

func TestCheckCompressionRatioZeroCompressed(t *testing.T) {
	c := model.DefaultSecurityConfig()
	if err := CheckCompressionRatio(0, 1<<40, c); err != nil {
		t.Errorf("zero compressed bytes short-circuits to success: %v", err)
	}
}

func TestCheckCompressionRatioPayload(t *testing.T) {
	c := model.DefaultSecurityConfig()
	err := CheckCompressionRatio(42000, 4_500_000_000_000_000, c)
	if err == nil {
		t.Fatal("expected ZipBomb")
	}
	e, ok := err.(*model.Error)
	if !ok || e.Kind != model.ErrKindZipBomb {
		t.Fatalf("got %v, want ZipBomb", err)
	}
	if e.Compressed != 42000 || e.Uncompressed != 4_500_000_000_000_000 {
		t.Errorf("payload = %d/%d", e.Compressed, e.Uncompressed)
	}
	if e.Ratio < 1.0e11 || e.Ratio > 1.1e11 {
		t.Errorf("ratio = %v, want ≈1.07e11", e.Ratio)
	}
}
