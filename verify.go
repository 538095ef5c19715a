package exarch

import (
	"github.com/bugops/exarch/internal/archive"
	"github.com/bugops/exarch/internal/inspection"
)

// VerifyArchive runs every entry in archivePath through the same
// security validators extraction would, but accumulates every failure
// as a VerificationIssue instead of aborting, and never writes to the
// real destination. Two heuristic checks (executable bit, suspicious
// extension) are added on top of validation failures.
func VerifyArchive(archivePath string, config *SecurityConfig) (VerificationReport, error) {
	if config == nil {
		config = DefaultSecurityConfig()
	}

	src, err := archive.Open(archivePath, config)
	if err != nil {
		return VerificationReport{}, err
	}
	defer src.Close()

	return inspection.Verify(src, config)
}
