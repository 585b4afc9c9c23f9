package controller

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "realias.dev/pkg/realias/internal/model"
)

// labelColors maps label codes to their approximate terminal colors.
var labelColors = map[m.LabelCode]lipgloss.Color{
	m.LabelGray:   lipgloss.Color("8"),
	m.LabelGreen:  lipgloss.Color("2"),
	m.LabelPurple: lipgloss.Color("5"),
	m.LabelBlue:   lipgloss.Color("4"),
	m.LabelYellow: lipgloss.Color("3"),
	m.LabelRed:    lipgloss.Color("1"),
	m.LabelOrange: lipgloss.Color("208"),
}

// SimpleUI implements UI on a cobra command's output and error writers,
// so tests can capture both streams.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool
}

// NewUI creates a SimpleUI. tty enables colored label markers.
func NewUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// Successf writes a line to the success stream.
func (s *SimpleUI) Successf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// Errf writes a line to the error stream.
func (s *SimpleUI) Errf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}

// ShowReport emits one line per meaningful outcome. Skipped candidates
// are silent; redirections name both targets; failures name the file and
// the reason.
func (s *SimpleUI) ShowReport(report m.Report, quiet bool) {
	switch report.Outcome {
	case m.Redirected:
		s.Successf("redirected %s: %s -> %s\n", report.Candidate, report.OldTarget, report.NewTarget)
	case m.Skipped:
	case m.LabeledUnresolvable, m.LabeledMissingTarget:
		if quiet {
			return
		}

		s.Errf("%s: %s (labeled %s)\n", report.Candidate, report.Reason, s.labelName(report.Label))
	case m.CodecError:
		// Recreation failures are reported even in quiet mode; the run
		// found a valid new target it could not install.
		s.Errf("%s: %s\n", report.Candidate, report.Reason)
	}
}

// ShowCandidates renders the dry-run listing.
func (s *SimpleUI) ShowCandidates(rows []CandidateRow) {
	if len(rows) == 0 {
		s.Successf("no indirection records found\n")
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Record", "Target", "Action"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, row := range rows {
		table.Append([]string{string(row.Candidate), string(row.Target), row.Prediction})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(rows)), "", ""})
	table.Render()

	s.Successf("\n%s", buf.String())
}

// ShowJournal renders the stored reports of a previous run.
func (s *SimpleUI) ShowJournal(reports []m.Report) {
	if len(reports) == 0 {
		s.Successf("journal is empty\n")
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Record", "Outcome", "Old Target", "New Target", "Label"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, report := range reports {
		label := ""
		if report.Label != m.LabelNone {
			label = s.labelName(report.Label)
		}

		table.Append([]string{
			string(report.Candidate),
			report.Outcome.String(),
			string(report.OldTarget),
			string(report.NewTarget),
			label,
		})
	}

	table.Render()

	s.Successf("\n%s", buf.String())
}

// ShowSummary renders the end-of-run counters.
func (s *SimpleUI) ShowSummary(summary m.RunSummary) {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Outcome", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	table.Append([]string{"redirected", strconv.Itoa(summary.Redirected)})
	table.Append([]string{"skipped", strconv.Itoa(summary.Skipped)})
	table.Append([]string{"unresolvable", strconv.Itoa(summary.Unresolvable)})
	table.Append([]string{"missing target", strconv.Itoa(summary.MissingTarget)})
	table.Append([]string{"codec errors", strconv.Itoa(summary.CodecErrors)})
	table.SetFooter([]string{"scanned", strconv.Itoa(summary.Scanned)})
	table.Render()

	s.Successf("\n%s", buf.String())
}

func (s *SimpleUI) labelName(code m.LabelCode) string {
	name := code.String()

	if !s.tty {
		return name
	}

	color, ok := labelColors[code]
	if !ok {
		return name
	}

	return lipgloss.NewStyle().Foreground(color).Render(name)
}
