package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"realias.dev/pkg/realias/internal/adapter"
	m "realias.dev/pkg/realias/internal/model"
)

type engineFixture struct {
	codec     *fakeCodec
	annotator *fakeAnnotator
	ui        *fakeUI
	engine    RedirectionEngine

	root string
	old  string
	new  string
}

// newEngineFixture builds /Old and /New style directories under a temp
// root, with file.txt present in both.
func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	root := t.TempDir()
	old := filepath.Join(root, "Old")
	newDir := filepath.Join(root, "New")
	mustMkdir(t, old)
	mustMkdir(t, newDir)
	writeRecord(t, filepath.Join(old, "file.txt"), "content")
	writeRecord(t, filepath.Join(newDir, "file.txt"), "content")

	codec := &fakeCodec{}
	annotator := newFakeAnnotator()
	ui := &fakeUI{}

	return &engineFixture{
		codec:     codec,
		annotator: annotator,
		ui:        ui,
		engine:    NewRedirectionEngine(codec, adapter.NewLocalScanFS(), annotator, ui),
		root:      root,
		old:       old,
		new:       newDir,
	}
}

func (f *engineFixture) config() m.RedirectConfig {
	return m.RedirectConfig{
		Root:           m.Path(f.root),
		Search:         f.old + "/",
		Replace:        f.new + "/",
		ResolveTimeout: time.Second,
	}
}

func TestEngine_RedirectsWhenNewTargetExists(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "link.alias")
	writeRecord(t, candidate, "alias:"+filepath.Join(f.old, "file.txt"))

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.Redirected {
		t.Fatalf("outcome = %s, want redirected (reason: %s)", report.Outcome, report.Reason)
	}

	wantNew := m.Path(filepath.Join(f.new, "file.txt"))
	if report.NewTarget != wantNew {
		t.Fatalf("new target = %s, want %s", report.NewTarget, wantNew)
	}

	if report.OldTarget != m.Path(filepath.Join(f.old, "file.txt")) {
		t.Fatalf("old target = %s", report.OldTarget)
	}

	// The record on disk now points at the new target.
	if got := readBytes(t, candidate); got != "alias:"+string(wantNew) {
		t.Fatalf("record content = %q", got)
	}

	// No staged temp files left behind.
	entries, err := os.ReadDir(f.root)
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range entries {
		if e.Name() != "link.alias" && e.Name() != "Old" && e.Name() != "New" {
			t.Fatalf("unexpected leftover entry %s", e.Name())
		}
	}
}

func TestEngine_RedirectedRecordResolvesAgain(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "link.alias")
	writeRecord(t, candidate, "alias:"+filepath.Join(f.old, "file.txt"))

	f.engine.Process(context.Background(), m.Path(candidate), f.config())

	resolution, err := f.codec.DecodeAndResolve(context.Background(), m.Path(candidate))
	if err != nil {
		t.Fatalf("re-resolve error = %v", err)
	}

	if resolution.Status != m.ResolvedFull || resolution.Stale {
		t.Fatalf("re-resolve = %+v, want fresh full resolution", resolution)
	}

	if resolution.Target != m.Path(filepath.Join(f.new, "file.txt")) {
		t.Fatalf("re-resolve target = %s", resolution.Target)
	}
}

func TestEngine_LabelsRedWhenNewTargetMissing(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "link.alias")
	original := "alias:" + filepath.Join(f.old, "missing.txt")
	writeRecord(t, candidate, original)

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.LabeledMissingTarget {
		t.Fatalf("outcome = %s, want missing-target", report.Outcome)
	}

	if report.Label != m.LabelRed {
		t.Fatalf("label = %s, want red", report.Label)
	}

	if f.annotator.labelOf(m.Path(candidate)) != m.LabelRed {
		t.Fatalf("annotator label = %s, want red", f.annotator.labelOf(m.Path(candidate)))
	}

	// Original record is byte-identical.
	if got := readBytes(t, candidate); got != original {
		t.Fatalf("record content changed to %q", got)
	}
}

func TestEngine_LabelsGrayOnUndecodableRecord(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "corrupt.alias")
	writeRecord(t, candidate, "not a record at all")

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.LabeledUnresolvable {
		t.Fatalf("outcome = %s, want unresolvable", report.Outcome)
	}

	if f.annotator.labelOf(m.Path(candidate)) != m.LabelGray {
		t.Fatalf("annotator label = %s, want gray", f.annotator.labelOf(m.Path(candidate)))
	}

	if report.Reason == "" {
		t.Fatal("reason is empty, want a diagnostic naming the failure")
	}

	if got := readBytes(t, candidate); got != "not a record at all" {
		t.Fatalf("record content changed to %q", got)
	}
}

func TestEngine_LabelsGrayOnUnresolvedRecord(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "lost.alias")
	writeRecord(t, candidate, "unresolved:")

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.LabeledUnresolvable || report.Label != m.LabelGray {
		t.Fatalf("report = %+v, want gray unresolvable", report)
	}
}

func TestEngine_SkipsForeignTargetsSilently(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "elsewhere.alias")
	original := "alias:/somewhere/else/file.txt"
	writeRecord(t, candidate, original)

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.Skipped {
		t.Fatalf("outcome = %s, want skipped", report.Outcome)
	}

	if got := readBytes(t, candidate); got != original {
		t.Fatalf("record content changed to %q", got)
	}

	if f.annotator.labelOf(m.Path(candidate)) != m.LabelNone {
		t.Fatal("skipped candidate was labeled")
	}
}

func TestEngine_HintResolutionIsEligibleForRewrite(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "hinted.alias")
	writeRecord(t, candidate, "hint:"+filepath.Join(f.old, "file.txt"))

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.Redirected {
		t.Fatalf("outcome = %s, want redirected (reason: %s)", report.Outcome, report.Reason)
	}

	// The partial resolution emitted a diagnostic on the error stream.
	if len(f.ui.errors) == 0 {
		t.Fatal("no diagnostic emitted for hint-based resolution")
	}
}

func TestEngine_HintDiagnosticSuppressedInQuietMode(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "hinted.alias")
	writeRecord(t, candidate, "hint:"+filepath.Join(f.old, "file.txt"))

	cfg := f.config()
	cfg.Quiet = true

	f.engine.Process(context.Background(), m.Path(candidate), cfg)

	if len(f.ui.errors) != 0 {
		t.Fatalf("diagnostics emitted in quiet mode: %v", f.ui.errors)
	}
}

func TestEngine_StaleFlagCarriesThrough(t *testing.T) {
	f := newEngineFixture(t)

	candidate := filepath.Join(f.root, "stale.alias")
	writeRecord(t, candidate, "stale:"+filepath.Join(f.old, "file.txt"))

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.Redirected {
		t.Fatalf("outcome = %s, want redirected", report.Outcome)
	}

	if !report.Stale {
		t.Fatal("stale flag not carried into the report")
	}
}

func TestEngine_CreateFailureKeepsOriginal(t *testing.T) {
	f := newEngineFixture(t)
	f.codec.createErr = errors.New("bookmark creation refused")

	candidate := filepath.Join(f.root, "link.alias")
	original := "alias:" + filepath.Join(f.old, "file.txt")
	writeRecord(t, candidate, original)

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.CodecError {
		t.Fatalf("outcome = %s, want codec-error", report.Outcome)
	}

	if got := readBytes(t, candidate); got != original {
		t.Fatalf("original destroyed, content = %q", got)
	}
}

func TestEngine_WriteFailureKeepsOriginalAndCleansUp(t *testing.T) {
	f := newEngineFixture(t)
	f.codec.writeErr = errors.New("disk full")

	candidate := filepath.Join(f.root, "link.alias")
	original := "alias:" + filepath.Join(f.old, "file.txt")
	writeRecord(t, candidate, original)

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	if report.Outcome != m.CodecError {
		t.Fatalf("outcome = %s, want codec-error", report.Outcome)
	}

	if got := readBytes(t, candidate); got != original {
		t.Fatalf("original destroyed, content = %q", got)
	}

	// The staged sibling was discarded.
	entries, err := os.ReadDir(f.root)
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range entries {
		if e.Name() != "link.alias" && e.Name() != "Old" && e.Name() != "New" {
			t.Fatalf("staged file left behind: %s", e.Name())
		}
	}
}

func TestEngine_LabelWriteFailureIsNotFatal(t *testing.T) {
	f := newEngineFixture(t)
	f.annotator.err = errors.New("xattr not supported")

	candidate := filepath.Join(f.root, "corrupt.alias")
	writeRecord(t, candidate, "garbage")

	report := f.engine.Process(context.Background(), m.Path(candidate), f.config())

	// The outcome still records the intended label.
	if report.Outcome != m.LabeledUnresolvable || report.Label != m.LabelGray {
		t.Fatalf("report = %+v, want gray unresolvable", report)
	}
}
