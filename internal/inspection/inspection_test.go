package inspection

import (
	"io"
	"strings"
	"testing"

	"github.com/bugops/exarch/internal/model"
)

type fakeEntry struct {
	raw  model.RawEntry
	body string
}

type fakeSource struct {
	entries []fakeEntry
	idx     int
}

func (f *fakeSource) Next() (model.RawEntry, io.Reader, error) {
	if f.idx >= len(f.entries) {
		return model.RawEntry{}, nil, io.EOF
	}
	e := f.entries[f.idx]
	f.idx++
	var body io.Reader
	if e.raw.Kind == model.EntryFile {
		body = strings.NewReader(e.body)
	}
	return e.raw, body, nil
}

func (f *fakeSource) FormatName() string { return "fake" }
func (f *fakeSource) Close() error       { return nil }

func TestListBuildsManifest(t *testing.T) {
	src := &fakeSource{entries: []fakeEntry{
		{raw: model.RawEntry{Path: "a.txt", Kind: model.EntryFile, UncompressedSize: 3}, body: "abc"},
		{raw: model.RawEntry{Path: "dir", Kind: model.EntryDirectory}},
	}}

	manifest, err := List(src, model.DefaultSecurityConfig())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(manifest.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(manifest.Entries))
	}
}

func TestVerifyAccumulatesTraversalAndSetuid(t *testing.T) {
	mode := uint32(0o4755)
	src := &fakeSource{entries: []fakeEntry{
		{raw: model.RawEntry{Path: "../../../etc/passwd", Kind: model.EntryFile}},
		{raw: model.RawEntry{Path: "bin/helper", Kind: model.EntryFile, Mode: &mode}, body: "x"},
	}}

	report, err := Verify(src, model.DefaultSecurityConfig())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Status != model.StatusFail {
		t.Errorf("Status = %v, want Fail", report.Status)
	}

	var sawCritical, sawMedium bool
	for _, issue := range report.Issues {
		if issue.Severity == model.SeverityCritical {
			sawCritical = true
		}
		if issue.Severity == model.SeverityMedium {
			sawMedium = true
		}
	}
	if !sawCritical {
		t.Error("expected a Critical issue for the traversal entry")
	}
	if !sawMedium {
		t.Error("expected a Medium issue for the setuid/executable entry")
	}
}

func TestVerifyPassesCleanArchive(t *testing.T) {
	src := &fakeSource{entries: []fakeEntry{
		{raw: model.RawEntry{Path: "readme.txt", Kind: model.EntryFile, UncompressedSize: 2}, body: "hi"},
	}}

	report, err := Verify(src, model.DefaultSecurityConfig())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Status != model.StatusPass {
		t.Errorf("Status = %v, want Pass", report.Status)
	}
}
