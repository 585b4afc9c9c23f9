package domain

import (
	"context"
	"fmt"
	"log/slog"

	"realias.dev/pkg/realias/internal/adapter"
	"realias.dev/pkg/realias/internal/controller"
	m "realias.dev/pkg/realias/internal/model"
)

// RedirectionEngine runs the resolve, rewrite, verify, recreate workflow
// for one candidate at a time.
type RedirectionEngine interface {
	Process(ctx context.Context, candidate m.Path, cfg m.RedirectConfig) m.Report
}

type redirectionEngine struct {
	codec     adapter.RecordCodec
	fs        adapter.ScanFS
	annotator adapter.LabelAnnotator
	ui        controller.UI
}

// NewRedirectionEngine constructs an engine backed by the provided codec,
// filesystem and label adapters. The UI carries resolution diagnostics.
func NewRedirectionEngine(
	codec adapter.RecordCodec,
	fs adapter.ScanFS,
	annotator adapter.LabelAnnotator,
	ui controller.UI,
) RedirectionEngine {
	return &redirectionEngine{
		codec:     codec,
		fs:        fs,
		annotator: annotator,
		ui:        ui,
	}
}

// Process drives a single candidate to a terminal outcome. The original
// record on disk survives every failure path; it is replaced only after
// a complete new record exists beside it.
func (e *redirectionEngine) Process(ctx context.Context, candidate m.Path, cfg m.RedirectConfig) m.Report {
	resolution, resolveErr := e.resolve(ctx, candidate, cfg)

	if !resolution.HasTarget() {
		reason := fmt.Sprintf("could not resolve %s", candidate)
		if resolveErr != nil {
			reason = resolveErr.Error()
		}

		e.label(candidate, m.LabelGray)

		return m.Report{
			Candidate: candidate,
			Outcome:   m.LabeledUnresolvable,
			Label:     m.LabelGray,
			Reason:    reason,
		}
	}

	if resolution.Status == m.ResolvedHint && !cfg.Quiet {
		e.ui.Errf("%s: %v\n", candidate, resolveErr)
	}

	if resolution.Stale {
		slog.Info("record metadata is stale", "candidate", candidate, "target", resolution.Target)
	}

	rewrite := Rewrite(resolution.Target, cfg.Search, cfg.Replace)
	if !rewrite.Changed {
		return m.Report{
			Candidate: candidate,
			Outcome:   m.Skipped,
			OldTarget: resolution.Target,
			Stale:     resolution.Stale,
		}
	}

	if !e.fs.Exists(rewrite.Target) {
		e.label(candidate, m.LabelRed)

		return m.Report{
			Candidate: candidate,
			Outcome:   m.LabeledMissingTarget,
			OldTarget: resolution.Target,
			NewTarget: rewrite.Target,
			Stale:     resolution.Stale,
			Label:     m.LabelRed,
			Reason:    fmt.Sprintf("new target %s does not exist", rewrite.Target),
		}
	}

	if err := e.recreate(ctx, candidate, rewrite.Target); err != nil {
		return m.Report{
			Candidate: candidate,
			Outcome:   m.CodecError,
			OldTarget: resolution.Target,
			NewTarget: rewrite.Target,
			Stale:     resolution.Stale,
			Reason:    err.Error(),
		}
	}

	return m.Report{
		Candidate: candidate,
		Outcome:   m.Redirected,
		OldTarget: resolution.Target,
		NewTarget: rewrite.Target,
		Stale:     resolution.Stale,
	}
}

// resolve bounds the codec call with the configured timeout; resolution
// never prompts, but it can stall on slow storage.
func (e *redirectionEngine) resolve(ctx context.Context, candidate m.Path, cfg m.RedirectConfig) (m.Resolution, error) {
	if cfg.ResolveTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.ResolveTimeout)
		defer cancel()
	}

	return e.codec.DecodeAndResolve(ctx, candidate)
}

// recreate writes the replacement record to a sibling path first and
// renames it over the original, so the original target information is
// never lost when creation or writing fails.
func (e *redirectionEngine) recreate(ctx context.Context, candidate, target m.Path) error {
	record, err := e.codec.Create(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to create record for %s: %w", target, err)
	}

	tmp, err := e.fs.TempSibling(candidate)
	if err != nil {
		return fmt.Errorf("failed to stage replacement record: %w", err)
	}

	if err := e.codec.Write(ctx, record, tmp); err != nil {
		e.discard(tmp)
		return fmt.Errorf("failed to write replacement record: %w", err)
	}

	if err := e.fs.Rename(tmp, candidate); err != nil {
		e.discard(tmp)
		return fmt.Errorf("failed to install replacement record: %w", err)
	}

	return nil
}

func (e *redirectionEngine) discard(tmp m.Path) {
	if err := e.fs.Remove(tmp); err != nil {
		slog.Warn("failed to remove staged record", "path", tmp, "error", err)
	}
}

// label is best-effort: a failed label write is reported and never
// aborts the candidate.
func (e *redirectionEngine) label(candidate m.Path, code m.LabelCode) {
	if err := e.annotator.SetLabel(candidate, code); err != nil {
		slog.Warn("failed to set label", "candidate", candidate, "label", code, "error", err)
	}
}
