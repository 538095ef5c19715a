package security

import "github.com/bugops/exarch/internal/model"

// CheckCompressionRatio compares uncompressed/compressed against the
// configured maximum. An entry whose compressed size is zero is treated
// as ratio 1 and passes; the cumulative QuotaTracker is the second line
// of defence for such entries.
func CheckCompressionRatio(compressed, uncompressed uint64, c *model.SecurityConfig) error {
	if compressed == 0 {
		return nil
	}
	ratio := float64(uncompressed) / float64(compressed)
	if ratio > c.MaxCompressionRatio {
		return model.ZipBomb(compressed, uncompressed, ratio)
	}
	return nil
}
