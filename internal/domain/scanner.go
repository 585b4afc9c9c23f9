package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"realias.dev/pkg/realias/internal/adapter"
	m "realias.dev/pkg/realias/internal/model"
)

// ErrRootUnscannable is the fatal scan error: the configured root is
// neither a scannable directory nor an indirection record.
var ErrRootUnscannable = errors.New("root is neither a directory nor an indirection record")

// ScanEvent is one element of the candidate stream. Either Candidate is
// set, or Err describes a subtree that could not be enumerated. Subtree
// errors are non-fatal; traversal continues with siblings.
type ScanEvent struct {
	Candidate m.Path
	Dir       m.Path
	Err       error
}

// TreeScanner walks a directory tree and yields every indirection record
// in it as a lazy, finite, non-restartable stream in depth-first order.
type TreeScanner interface {
	Scan(ctx context.Context, cfg m.ScanConfig) (<-chan ScanEvent, error)
}

type treeScanner struct {
	fs    adapter.ScanFS
	codec adapter.RecordCodec
}

// NewTreeScanner creates a TreeScanner using the provided filesystem and
// codec adapters; the codec supplies the platform file classification.
func NewTreeScanner(fs adapter.ScanFS, codec adapter.RecordCodec) TreeScanner {
	return &treeScanner{fs: fs, codec: codec}
}

// Scan classifies the root synchronously, so an unusable root fails fast,
// then streams candidates. The channel closes when traversal finishes or
// ctx is cancelled.
func (s *treeScanner) Scan(ctx context.Context, cfg m.ScanConfig) (<-chan ScanEvent, error) {
	class, err := s.codec.Classify(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("cannot classify root %s: %w", cfg.Root, err)
	}

	ch := make(chan ScanEvent, 1)

	switch class {
	case adapter.ClassRecord:
		// A single record as root yields exactly that record.
		ch <- ScanEvent{Candidate: cfg.Root}
		close(ch)

		return ch, nil
	case adapter.ClassDirectory, adapter.ClassPackageDir:
		go func() {
			defer close(ch)
			s.walk(ctx, cfg.Root, cfg.IncludePackages, ch)
		}()

		return ch, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrRootUnscannable, cfg.Root)
}

// walk emits records under dir depth-first. Directory read failures are
// reported as events and abort only that subtree.
func (s *treeScanner) walk(ctx context.Context, dir m.Path, includePackages bool, ch chan<- ScanEvent) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		slog.Warn("cannot enumerate directory", "dir", dir, "error", err)
		s.send(ctx, ch, ScanEvent{Dir: dir, Err: err})

		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			slog.Debug("tree scan cancelled", "dir", dir)
			return
		}

		path := dir.Join(entry.Name())

		class, err := s.codec.Classify(path)
		if err != nil {
			slog.Warn("cannot classify entry", "path", path, "error", err)
			continue
		}

		switch class {
		case adapter.ClassRecord:
			if !s.send(ctx, ch, ScanEvent{Candidate: path}) {
				return
			}
		case adapter.ClassDirectory:
			s.walk(ctx, path, includePackages, ch)
		case adapter.ClassPackageDir:
			// Package contents belong to their owning package and are
			// invisible to the scan unless explicitly requested.
			if includePackages {
				s.walk(ctx, path, includePackages, ch)
			}
		}
	}
}

func (s *treeScanner) send(ctx context.Context, ch chan<- ScanEvent, ev ScanEvent) bool {
	select {
	case <-ctx.Done():
		return false
	case ch <- ev:
		return true
	}
}
