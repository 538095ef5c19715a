package inspection

import (
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bugops/exarch/internal/model"
	"github.com/bugops/exarch/internal/paths"
	"github.com/bugops/exarch/internal/security"
)

// suspiciousExtensions are flagged informationally; carrying one is not
// a security violation by itself.
var suspiciousExtensions = []string{".exe", ".dll", ".sh", ".bat", ".cmd"}

// Verify walks src, running the same validators extraction would, but
// accumulates every failure as a VerificationIssue instead of aborting.
// It additionally runs two heuristic checks that are informative rather
// than security errors: executable permission bits on files, and
// suspicious extensions. dest is a short-lived throwaway directory
// purely so SafePath's containment check has something to anchor
// against; Verify never writes into it.
func Verify(src model.ArchiveSource, c *model.SecurityConfig) (model.VerificationReport, error) {
	scratchDir, err := os.MkdirTemp("", "exarch-verify-*")
	if err != nil {
		return model.VerificationReport{}, model.WrapIO(err)
	}
	defer os.RemoveAll(scratchDir)

	dest, err := paths.NewDestDir(scratchDir)
	if err != nil {
		return model.VerificationReport{}, err
	}
	validator := security.NewEntryValidator(dest, c)

	var issues []model.VerificationIssue

	for {
		raw, body, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.VerificationReport{}, asArchiveError(err)
		}
		if body != nil {
			if _, err := io.Copy(io.Discard, body); err != nil {
				return model.VerificationReport{}, model.WrapIO(err)
			}
		}

		if _, err := validator.Validate(raw); err != nil {
			issues = append(issues, issueFromError(raw.Path, err))
			continue
		}

		issues = append(issues, heuristicIssues(raw)...)
	}

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Severity > issues[j].Severity })

	return model.VerificationReport{Status: overallStatus(issues), Issues: issues}, nil
}

func issueFromError(path string, err error) model.VerificationIssue {
	e, ok := err.(*model.Error)
	if !ok {
		return model.VerificationIssue{Severity: model.SeverityHigh, Category: "error", Path: path, Message: err.Error()}
	}

	switch e.Kind {
	case model.ErrKindPathTraversal:
		return model.VerificationIssue{Severity: model.SeverityCritical, Category: "path-traversal", Path: path, Message: e.Error()}
	case model.ErrKindSymlinkEscape, model.ErrKindHardlinkEscape:
		return model.VerificationIssue{Severity: model.SeverityCritical, Category: "link-escape", Path: path, Message: e.Error()}
	case model.ErrKindZipBomb:
		return model.VerificationIssue{Severity: model.SeverityHigh, Category: "zip-bomb", Path: path, Message: e.Error()}
	case model.ErrKindQuotaExceeded:
		return model.VerificationIssue{Severity: model.SeverityHigh, Category: "quota", Path: path, Message: e.Error()}
	case model.ErrKindInvalidPermissions:
		return model.VerificationIssue{Severity: model.SeverityMedium, Category: "permissions", Path: path, Message: e.Error()}
	case model.ErrKindSecurityViolation:
		return model.VerificationIssue{Severity: model.SeverityHigh, Category: "security-policy", Path: path, Message: e.Error()}
	default:
		return model.VerificationIssue{Severity: model.SeverityHigh, Category: "invalid-archive", Path: path, Message: e.Error()}
	}
}

func heuristicIssues(raw model.RawEntry) []model.VerificationIssue {
	var issues []model.VerificationIssue

	if raw.Kind == model.EntryFile && raw.Mode != nil && *raw.Mode&0o111 != 0 {
		issues = append(issues, model.VerificationIssue{
			Severity: model.SeverityMedium,
			Category: "executable-bit",
			Path:     raw.Path,
			Message:  "file carries an executable permission bit",
		})
	}

	lower := strings.ToLower(raw.Path)
	for _, ext := range suspiciousExtensions {
		if strings.HasSuffix(lower, ext) {
			issues = append(issues, model.VerificationIssue{
				Severity: model.SeverityLow,
				Category: "suspicious-extension",
				Path:     raw.Path,
				Message:  "archive contains a file with a commonly-abused extension (" + ext + ")",
			})
			break
		}
	}

	return issues
}

func overallStatus(issues []model.VerificationIssue) model.VerificationStatus {
	hasMedium := false
	for _, issue := range issues {
		if issue.Severity >= model.SeverityHigh {
			return model.StatusFail
		}
		if issue.Severity == model.SeverityMedium {
			hasMedium = true
		}
	}
	if hasMedium {
		return model.StatusWarning
	}
	return model.StatusPass
}
