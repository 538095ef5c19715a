package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"golang.org/x/term"

	exarch "github.com/bugops/exarch"
)

// shouldShowProgress reports whether a live progress bar should be
// rendered: never in --quiet or --json mode, and only when stderr is a
// TTY otherwise.
func shouldShowProgress() bool {
	if viper.GetBool("quiet") || viper.GetBool("json") {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// charmProgress wraps the charmbracelet progress bar for byte-based
// operations.
type charmProgress struct {
	bar         progress.Model
	description string
	written     int64
	total       int
	current     int
}

func newCharmProgress(description string) *charmProgress {
	return &charmProgress{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
		description: description,
	}
}

// fraction reports entry-count completion, or 0 when the operation
// can't report a total (streaming extraction passes totalEntries -1).
func (p *charmProgress) fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.current) / float64(p.total)
}

func (p *charmProgress) render(entryPath string) {
	fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s  %s",
		p.description, p.bar.ViewAs(p.fraction()), humanize.IBytes(uint64(p.written)), entryPath)
}

func (p *charmProgress) finish() {
	fmt.Fprintln(os.Stderr)
}

// newProgressCallback returns an exarch.ProgressCallback that renders a
// live bar to stderr when appropriate, and a finish func to call once
// the operation completes. Returns a zero-value callback (nil fields,
// all no-ops) and a no-op finish when progress shouldn't be shown.
func newProgressCallback(description string) (exarch.ProgressCallback, func()) {
	if !shouldShowProgress() {
		return exarch.ProgressFuncs{}, func() {}
	}

	bar := newCharmProgress(description)
	cb := exarch.ProgressFuncs{
		EntryStart: func(path string, totalEntries, currentIndex int) {
			bar.total, bar.current = totalEntries, currentIndex
		},
		BytesWritten: func(delta int64) {
			bar.written += delta
		},
		EntryComplete: func(path string) {
			bar.render(path)
		},
	}
	return cb, bar.finish
}
