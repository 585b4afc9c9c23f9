// Package controller provides output controllers for reporting
// redirection outcomes.
package controller

import (
	"os"

	"github.com/mattn/go-isatty"

	m "realias.dev/pkg/realias/internal/model"
)

// CandidateRow is one line of the dry-run listing: a discovered record,
// where it points now, and what a repair run would do with it.
type CandidateRow struct {
	Candidate  m.Path
	Target     m.Path
	Prediction string
}

// UI is the reporting surface of a run. Successful redirections go to
// the success stream, every failure or label case to the error stream;
// skipped candidates produce no output.
type UI interface {
	// Successf writes a line to the success stream.
	Successf(format string, args ...interface{})

	// Errf writes a line to the error stream.
	Errf(format string, args ...interface{})

	// ShowReport emits the per-candidate outcome line, honoring quiet.
	ShowReport(report m.Report, quiet bool)

	// ShowCandidates renders the dry-run listing.
	ShowCandidates(rows []CandidateRow)

	// ShowJournal renders the stored reports of a previous run.
	ShowJournal(reports []m.Report)

	// ShowSummary renders the end-of-run counters.
	ShowSummary(summary m.RunSummary)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
