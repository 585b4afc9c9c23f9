package domain

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"realias.dev/pkg/realias/internal/adapter"
	"realias.dev/pkg/realias/internal/controller"
	m "realias.dev/pkg/realias/internal/model"
)

// fakeCodec implements adapter.RecordCodec over a readable record format
// so tests can build trees with plain files:
//
//	"alias:<target>"      resolves fully to <target>
//	"stale:<target>"      resolves fully with the stale flag set
//	"hint:<path>"         full resolution fails, stored path hint works
//	"unresolved:"         decodes but yields no target and no hint
//	anything else         undecodable
//
// Files with the ".alias" extension classify as records; directories
// named "*.app" classify as packages.
type fakeCodec struct {
	createErr error
	writeErr  error
}

func (c *fakeCodec) DecodeAndResolve(_ context.Context, path m.Path) (m.Resolution, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Resolution{Status: m.Undecodable}, fmt.Errorf("could not decode record %s: %v", path, err)
	}

	text := string(content)

	switch {
	case strings.HasPrefix(text, "alias:"):
		return m.Resolution{Status: m.ResolvedFull, Target: m.Path(strings.TrimPrefix(text, "alias:"))}, nil
	case strings.HasPrefix(text, "stale:"):
		return m.Resolution{Status: m.ResolvedFull, Target: m.Path(strings.TrimPrefix(text, "stale:")), Stale: true}, nil
	case strings.HasPrefix(text, "hint:"):
		return m.Resolution{Status: m.ResolvedHint, Target: m.Path(strings.TrimPrefix(text, "hint:"))},
			fmt.Errorf("could not fully resolve %s, using stored path hint", path)
	case strings.HasPrefix(text, "unresolved:"):
		return m.Resolution{Status: m.Unresolved},
			fmt.Errorf("could not resolve %s and no path hint was stored", path)
	}

	return m.Resolution{Status: m.Undecodable}, fmt.Errorf("could not decode record %s", path)
}

func (c *fakeCodec) Create(_ context.Context, target m.Path) (adapter.Record, error) {
	if c.createErr != nil {
		return adapter.Record{}, c.createErr
	}

	return adapter.Record{Data: []byte("alias:" + string(target))}, nil
}

func (c *fakeCodec) Write(_ context.Context, rec adapter.Record, path m.Path) error {
	if c.writeErr != nil {
		return c.writeErr
	}

	return os.WriteFile(string(path), rec.Data, 0o600)
}

func (c *fakeCodec) Classify(path m.Path) (adapter.Classification, error) {
	info, err := os.Stat(string(path))
	if err != nil {
		return adapter.ClassOther, err
	}

	name := info.Name()

	if info.IsDir() {
		if strings.HasSuffix(name, ".app") {
			return adapter.ClassPackageDir, nil
		}

		return adapter.ClassDirectory, nil
	}

	if strings.HasSuffix(name, ".alias") {
		return adapter.ClassRecord, nil
	}

	return adapter.ClassRegularFile, nil
}

// fakeAnnotator records label writes and can be told to fail.
type fakeAnnotator struct {
	mu     sync.Mutex
	labels map[m.Path]m.LabelCode
	err    error
}

func newFakeAnnotator() *fakeAnnotator {
	return &fakeAnnotator{labels: make(map[m.Path]m.LabelCode)}
}

func (a *fakeAnnotator) SetLabel(path m.Path, code m.LabelCode) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.err != nil {
		return a.err
	}

	a.labels[path] = code

	return nil
}

func (a *fakeAnnotator) labelOf(path m.Path) m.LabelCode {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.labels[path]
}

// fakeUI captures both report streams.
type fakeUI struct {
	success []string
	errors  []string
}

func (u *fakeUI) Successf(format string, args ...interface{}) {
	u.success = append(u.success, fmt.Sprintf(format, args...))
}

func (u *fakeUI) Errf(format string, args ...interface{}) {
	u.errors = append(u.errors, fmt.Sprintf(format, args...))
}

func (u *fakeUI) ShowReport(report m.Report, quiet bool) {
	switch report.Outcome {
	case m.Redirected:
		u.Successf("redirected %s: %s -> %s\n", report.Candidate, report.OldTarget, report.NewTarget)
	case m.Skipped:
	default:
		if !quiet || report.Outcome == m.CodecError {
			u.Errf("%s: %s\n", report.Candidate, report.Reason)
		}
	}
}

func (u *fakeUI) ShowCandidates(rows []controller.CandidateRow) {
	for _, row := range rows {
		u.Successf("%s\t%s\t%s\n", row.Candidate, row.Target, row.Prediction)
	}
}

func (u *fakeUI) ShowJournal(reports []m.Report) {
	for _, report := range reports {
		u.Successf("%s\t%s\n", report.Candidate, report.Outcome)
	}
}

func (u *fakeUI) ShowSummary(summary m.RunSummary) {
	u.Successf("scanned %d\n", summary.Scanned)
}

func writeRecord(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing record %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
}

func readBytes(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}

	return string(content)
}
