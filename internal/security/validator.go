package security

import (
	"path/filepath"

	"github.com/bugops/exarch/internal/model"
	"github.com/bugops/exarch/internal/paths"
)

// ValidatedEntry is the only shape the extraction engine is allowed to
// materialize. It is produced exclusively by EntryValidator.Validate.
type ValidatedEntry struct {
	Kind model.EntryKind

	Path SafePathOrSymlink

	// Mode is the sanitized mode, set only for EntryFile when the source
	// reported one.
	Mode *uint32
}

// SafePathOrSymlink holds whichever of the three validated path shapes
// applies to one entry: a plain SafePath (file, directory), a
// SafeSymlink (symlink), or a SafePath target (hardlink).
type SafePathOrSymlink struct {
	Plain      paths.SafePath
	Symlink    paths.SafeSymlink
	HardlinkTo paths.SafePath
}

// EntryValidator orchestrates the fixed-order pipeline: SafePath
// validation, quota accounting, compression-ratio check, then dispatch
// by entry kind. Config, destination, quota, and hardlink state are
// held for the lifetime of one operation, one Validate call per
// archive entry.
type EntryValidator struct {
	config   *model.SecurityConfig
	dest     *paths.DestDir
	quota    QuotaTracker
	hardlink HardlinkTracker
}

// NewEntryValidator constructs a validator bound to one destination and
// policy for the lifetime of one extraction/list/verify operation.
func NewEntryValidator(dest *paths.DestDir, config *model.SecurityConfig) *EntryValidator {
	return &EntryValidator{config: config, dest: dest}
}

// Validate runs the fixed-order pipeline against one raw entry:
//  1. SafePath validation on the raw path.
//  2. If File: extension policy, then quota.RecordFile.
//  3. If File and a compressed size is known: zip-bomb check. Other
//     entry kinds are not ratio-checked.
//  4. Dispatch on entry kind (sanitize mode / wrap symlink / wrap hardlink).
func (v *EntryValidator) Validate(raw model.RawEntry) (ValidatedEntry, error) {
	switch raw.Kind {
	case model.EntrySymlink:
		return v.validateSymlink(raw)
	case model.EntryHardlink:
		return v.validateHardlink(raw)
	case model.EntryDirectory:
		safe, err := paths.ValidateSafePath(raw.Path, v.dest, v.config)
		if err != nil {
			return ValidatedEntry{}, err
		}
		return ValidatedEntry{Kind: model.EntryDirectory, Path: SafePathOrSymlink{Plain: safe}}, nil
	default:
		return v.validateFile(raw)
	}
}

func (v *EntryValidator) validateFile(raw model.RawEntry) (ValidatedEntry, error) {
	safe, err := paths.ValidateSafePath(raw.Path, v.dest, v.config)
	if err != nil {
		return ValidatedEntry{}, err
	}

	if !v.config.IsExtensionAllowed(filepath.Ext(safe.Relative())) {
		return ValidatedEntry{}, model.SecurityViolation("file extension not allowed: " + raw.Path)
	}

	if err := v.quota.RecordFile(raw.UncompressedSize, v.config); err != nil {
		return ValidatedEntry{}, err
	}

	if raw.CompressedSize != nil {
		if err := CheckCompressionRatio(*raw.CompressedSize, raw.UncompressedSize, v.config); err != nil {
			return ValidatedEntry{}, err
		}
	}

	var mode *uint32
	if raw.Mode != nil {
		sanitized := SanitizeMode(*raw.Mode, v.config.Allowed.WorldWritable)
		mode = &sanitized
	}

	return ValidatedEntry{Kind: model.EntryFile, Path: SafePathOrSymlink{Plain: safe}, Mode: mode}, nil
}

func (v *EntryValidator) validateSymlink(raw model.RawEntry) (ValidatedEntry, error) {
	symlink, err := paths.ValidateSafeSymlink(raw.Path, raw.Target, v.dest, v.config)
	if err != nil {
		return ValidatedEntry{}, err
	}
	return ValidatedEntry{Kind: model.EntrySymlink, Path: SafePathOrSymlink{Symlink: symlink}}, nil
}

func (v *EntryValidator) validateHardlink(raw model.RawEntry) (ValidatedEntry, error) {
	link, target, err := paths.ValidateHardlinkTarget(raw.Path, raw.Target, v.dest, v.config)
	if err != nil {
		return ValidatedEntry{}, err
	}
	v.hardlink.Record(link.Relative(), target.Relative())
	return ValidatedEntry{Kind: model.EntryHardlink, Path: SafePathOrSymlink{Plain: link, HardlinkTo: target}}, nil
}

// ValidationSummary is the accumulated state Finish reports for
// integration with extraction reports.
type ValidationSummary struct {
	FilesValidated   uint64
	TotalBytes       uint64
	HardlinksTracked int
}

// Finish returns the accumulated summary for reporting.
func (v *EntryValidator) Finish() ValidationSummary {
	return ValidationSummary{
		FilesValidated:   v.quota.FilesExtracted(),
		TotalBytes:       v.quota.BytesWritten(),
		HardlinksTracked: v.hardlink.Count(),
	}
}

// Hardlinks exposes the tracker for reporting and for callers that want
// the validated (link, target) associations after an operation.
func (v *EntryValidator) Hardlinks() *HardlinkTracker { return &v.hardlink }
