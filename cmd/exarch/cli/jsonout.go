package cli

import (
	"encoding/json"
	"fmt"
	"os"

	exarch "github.com/bugops/exarch"
)

// jsonEnvelope is the wire shape for --json output.
type jsonEnvelope struct {
	Status    string `json:"status"`
	Operation string `json:"operation"`
	Data      any    `json:"data"`
}

// extractionData mirrors ExtractionReport's fields under the snake_case
// keys the extract operation's JSON schema uses.
type extractionData struct {
	FilesExtracted     uint64   `json:"files_extracted"`
	DirectoriesCreated uint64   `json:"directories_created"`
	SymlinksCreated    uint64   `json:"symlinks_created"`
	BytesWritten       uint64   `json:"bytes_written"`
	DurationMs         int64    `json:"duration_ms"`
	FilesSkipped       uint64   `json:"files_skipped"`
	Warnings           []string `json:"warnings"`
}

func emitExtractionJSON(report exarch.ExtractionReport) error {
	return emitJSON("extract", extractionData{
		FilesExtracted:     report.FilesExtracted,
		DirectoriesCreated: report.DirectoriesCreated,
		SymlinksCreated:    report.SymlinksCreated,
		BytesWritten:       report.BytesWritten,
		DurationMs:         report.Duration.Milliseconds(),
		FilesSkipped:       report.FilesSkipped,
		Warnings:           warningsOrEmpty(report.Warnings),
	})
}

type creationData struct {
	FilesAdded        uint64   `json:"files_added"`
	DirectoriesAdded  uint64   `json:"directories_added"`
	SymlinksAdded     uint64   `json:"symlinks_added"`
	BytesUncompressed uint64   `json:"bytes_uncompressed"`
	BytesCompressed   uint64   `json:"bytes_compressed"`
	BlobDigest        string   `json:"blob_digest"`
	DurationMs        int64    `json:"duration_ms"`
	Warnings          []string `json:"warnings"`
}

func emitCreationJSON(report exarch.CreationReport) error {
	return emitJSON("create", creationData{
		FilesAdded:        report.FilesAdded,
		DirectoriesAdded:  report.DirectoriesAdded,
		SymlinksAdded:     report.SymlinksAdded,
		BytesUncompressed: report.BytesUncompressed,
		BytesCompressed:   report.BytesCompressed,
		BlobDigest:        report.BlobDigest,
		DurationMs:        report.Duration.Milliseconds(),
		Warnings:          warningsOrEmpty(report.Warnings),
	})
}

type manifestEntryData struct {
	Path             string  `json:"path"`
	Kind             string  `json:"kind"`
	UncompressedSize uint64  `json:"uncompressed_size"`
	CompressedSize   *uint64 `json:"compressed_size,omitempty"`
	LinkTarget       string  `json:"link_target,omitempty"`
}

func emitManifestJSON(manifest exarch.ArchiveManifest) error {
	entries := make([]manifestEntryData, len(manifest.Entries))
	for i, e := range manifest.Entries {
		entries[i] = manifestEntryData{
			Path:             e.Path,
			Kind:             e.Kind.String(),
			UncompressedSize: e.UncompressedSize,
			CompressedSize:   e.CompressedSize,
			LinkTarget:       e.LinkTarget,
		}
	}
	return emitJSON("list", struct {
		Entries []manifestEntryData `json:"entries"`
	}{entries})
}

type verificationIssueData struct {
	Severity string `json:"severity"`
	Category string `json:"category"`
	Path     string `json:"path"`
	Message  string `json:"message"`
}

func emitVerificationJSON(report exarch.VerificationReport) error {
	issues := make([]verificationIssueData, len(report.Issues))
	for i, iss := range report.Issues {
		issues[i] = verificationIssueData{
			Severity: iss.Severity.String(),
			Category: iss.Category,
			Path:     iss.Path,
			Message:  iss.Message,
		}
	}
	return emitJSON("verify", struct {
		Status string                  `json:"status"`
		Issues []verificationIssueData `json:"issues"`
	}{report.Status.String(), issues})
}

func emitJSON(operation string, data any) error {
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(jsonEnvelope{Status: "success", Operation: operation, Data: data})
}

func emitErrorJSON(operation string, err error) {
	enc := json.NewEncoder(os.Stdout)
	_ = enc.Encode(jsonEnvelope{
		Status:    "error",
		Operation: operation,
		Data: struct {
			Message string `json:"message"`
		}{fmt.Sprint(err)},
	})
}

func warningsOrEmpty(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}
