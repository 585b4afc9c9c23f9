package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"realias.dev/pkg/realias/internal/adapter"
	"realias.dev/pkg/realias/internal/controller"
	m "realias.dev/pkg/realias/internal/model"
)

// RepairArgs parameterizes a repair run.
type RepairArgs struct {
	Root            m.Path
	Search          string
	Replace         string
	IncludePackages bool
	Quiet           bool
	ResolveTimeout  time.Duration
	Output          m.Path
}

// ScanArgs parameterizes a dry run.
type ScanArgs struct {
	Root            m.Path
	Search          string
	Replace         string
	IncludePackages bool
	ResolveTimeout  time.Duration
}

// ReportArgs parameterizes the journal display.
type ReportArgs struct {
	Output m.Path
	Format string
}

// Workflow wires the scanner, the engine and the reporting surface into
// the user-facing operations.
type Workflow interface {
	// Repair finds every indirection record under the root and rewrites
	// the ones whose target moved from the search prefix to the replace
	// prefix. Individual candidate failures never abort the run.
	Repair(ctx context.Context, args RepairArgs) error

	// Scan lists the records a repair run would touch, resolving and
	// rewriting without any filesystem writes.
	Scan(ctx context.Context, args ScanArgs) error

	// Report displays the journal of a previous run.
	Report(ctx context.Context, args ReportArgs) error
}

type workflow struct {
	scanner TreeScanner
	engine  RedirectionEngine
	codec   adapter.RecordCodec
	fs      adapter.ScanFS
	store   adapter.RunStore
	ui      controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	scanner TreeScanner,
	engine RedirectionEngine,
	codec adapter.RecordCodec,
	fs adapter.ScanFS,
	store adapter.RunStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		scanner: scanner,
		engine:  engine,
		codec:   codec,
		fs:      fs,
		store:   store,
		ui:      ui,
	}
}

// Repair implements the sequential repair run: each candidate's workflow
// completes before the next begins.
func (w *workflow) Repair(ctx context.Context, args RepairArgs) error {
	cfg := m.RedirectConfig{
		Root:           args.Root,
		Search:         args.Search,
		Replace:        args.Replace,
		Quiet:          args.Quiet,
		ResolveTimeout: args.ResolveTimeout,
	}

	events, err := w.scanner.Scan(ctx, m.ScanConfig{Root: args.Root, IncludePackages: args.IncludePackages})
	if err != nil {
		w.ui.Errf("fatal: %v\n", err)
		return err
	}

	var reports []m.Report

	for event := range events {
		if event.Err != nil {
			w.ui.Errf("cannot read directory %s: %v\n", event.Dir, event.Err)
			continue
		}

		report := w.engine.Process(ctx, event.Candidate, cfg)
		w.ui.ShowReport(report, args.Quiet)
		reports = append(reports, report)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	if !args.Output.IsEmpty() {
		if err := w.store.SaveReports(args.Output, reports); err != nil {
			// The repairs themselves succeeded; losing the journal is
			// reportable but not fatal.
			slog.Error("failed to save run reports", "dir", args.Output, "error", err)
			w.ui.Errf("failed to save run reports: %v\n", err)
		}
	}

	w.ui.ShowSummary(m.Summarize(reports))

	return nil
}

// Scan implements the dry run.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	cfg := m.RedirectConfig{
		Root:           args.Root,
		Search:         args.Search,
		Replace:        args.Replace,
		Quiet:          true,
		ResolveTimeout: args.ResolveTimeout,
	}

	events, err := w.scanner.Scan(ctx, m.ScanConfig{Root: args.Root, IncludePackages: args.IncludePackages})
	if err != nil {
		w.ui.Errf("fatal: %v\n", err)
		return err
	}

	var rows []controller.CandidateRow

	for event := range events {
		if event.Err != nil {
			w.ui.Errf("cannot read directory %s: %v\n", event.Dir, event.Err)
			continue
		}

		rows = append(rows, w.predict(ctx, event.Candidate, cfg))
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	w.ui.ShowCandidates(rows)

	return nil
}

// Report replays the journal of a previous run.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reports, err := w.store.LoadReports(args.Output)
	if err != nil {
		w.ui.Errf("failed to load run reports: %v\n", err)
		return err
	}

	if args.Format == "yaml" {
		encoded, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("failed to encode reports: %w", err)
		}

		w.ui.Successf("%s", encoded)

		return nil
	}

	w.ui.ShowJournal(reports)
	w.ui.ShowSummary(m.Summarize(reports))

	return nil
}

// predict runs the read-only half of the workflow for the dry run.
func (w *workflow) predict(ctx context.Context, candidate m.Path, cfg m.RedirectConfig) controller.CandidateRow {
	if cfg.ResolveTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.ResolveTimeout)
		defer cancel()
	}

	resolution, _ := w.codec.DecodeAndResolve(ctx, candidate)
	if !resolution.HasTarget() {
		return controller.CandidateRow{
			Candidate:  candidate,
			Prediction: fmt.Sprintf("label %s", m.LabelGray),
		}
	}

	rewrite := Rewrite(resolution.Target, cfg.Search, cfg.Replace)
	if !rewrite.Changed {
		return controller.CandidateRow{
			Candidate:  candidate,
			Target:     resolution.Target,
			Prediction: "skip",
		}
	}

	if !w.fs.Exists(rewrite.Target) {
		return controller.CandidateRow{
			Candidate:  candidate,
			Target:     resolution.Target,
			Prediction: fmt.Sprintf("label %s", m.LabelRed),
		}
	}

	return controller.CandidateRow{
		Candidate:  candidate,
		Target:     resolution.Target,
		Prediction: fmt.Sprintf("redirect to %s", rewrite.Target),
	}
}
