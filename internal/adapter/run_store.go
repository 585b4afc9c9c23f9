package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"realias.dev/pkg/realias/pkg"

	m "realias.dev/pkg/realias/internal/model"
)

// journalFileName is the journal kept inside the output directory.
const journalFileName = "run.journal"

// RunStore persists the per-candidate reports of a run so they can be
// inspected later with the report command.
type RunStore interface {
	SaveReports(dir m.Path, reports []m.Report) error
	LoadReports(dir m.Path) ([]m.Report, error)
}

type runStore struct{}

// NewRunStore constructs the journal-backed RunStore.
func NewRunStore() RunStore {
	return &runStore{}
}

// SaveReports writes all reports of a run, replacing any previous run in
// the same directory.
func (s *runStore) SaveReports(dir m.Path, reports []m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	journal, err := pkg.NewJournal[m.Report](filepath.Join(string(dir), journalFileName))
	if err != nil {
		return err
	}

	defer func() {
		_ = journal.Close()
	}()

	return journal.AppendBatch(reports)
}

// LoadReports replays the journal of the most recent run in dir.
func (s *runStore) LoadReports(dir m.Path) ([]m.Report, error) {
	journal, err := pkg.OpenJournal[m.Report](filepath.Join(string(dir), journalFileName))
	if err != nil {
		return nil, err
	}

	var reports []m.Report

	err = journal.Range(func(_ uint64, report m.Report) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}
