package exarch

import "github.com/bugops/exarch/internal/model"

// EntryKind discriminates the four archive member kinds this package
// can report: files, directories, symlinks, and hardlinks. Char/block
// devices, FIFOs, and sockets are rejected by format adapters before
// they ever surface here.
type EntryKind = model.EntryKind

const (
	EntryFile      = model.EntryFile
	EntryDirectory = model.EntryDirectory
	EntrySymlink   = model.EntrySymlink
	EntryHardlink  = model.EntryHardlink
)

// ExtractionReport summarizes a completed (or partially completed, on
// early abort) extraction.
type ExtractionReport = model.ExtractionReport

// CreationReport summarizes a completed archive-creation operation.
type CreationReport = model.CreationReport

// ManifestEntry describes one archive member as surfaced by ListArchive.
type ManifestEntry = model.ManifestEntry

// ArchiveManifest is the full listing returned by ListArchive.
type ArchiveManifest = model.ArchiveManifest

// Severity ranks a VerificationIssue from informational to critical.
type Severity = model.Severity

const (
	SeverityInfo     = model.SeverityInfo
	SeverityLow      = model.SeverityLow
	SeverityMedium   = model.SeverityMedium
	SeverityHigh     = model.SeverityHigh
	SeverityCritical = model.SeverityCritical
)

// VerificationIssue is one finding surfaced by VerifyArchive.
type VerificationIssue = model.VerificationIssue

// VerificationStatus is the overall verdict of a VerifyArchive call.
type VerificationStatus = model.VerificationStatus

const (
	StatusPass    = model.StatusPass
	StatusWarning = model.StatusWarning
	StatusFail    = model.StatusFail
)

// VerificationReport is the full result of VerifyArchive: an overall
// status plus every issue found, most severe first.
type VerificationReport = model.VerificationReport

// ProgressCallback receives extraction/creation progress notifications.
// Implementations MUST tolerate high-frequency OnBytesWritten calls or
// rely on the batching ExtractArchiveWithProgress already applies.
type ProgressCallback = model.ProgressCallback

// ArchiveSource is the interface a format adapter exposes to the
// extraction engine: a lazy iterator of raw entries. Exposed here so
// callers can build their own archive sources (e.g. in-memory or
// network-backed) without depending on internal packages.
type ArchiveSource = model.ArchiveSource

// RawEntry is one archive member's metadata prior to security
// validation, as yielded by an ArchiveSource.
type RawEntry = model.RawEntry
