// Package pkg is a package that provides utilities for realias.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Journal is a generic append-only on-disk log of items of type T.
// A repair run appends one entry per processed candidate so the result
// can be inspected after the fact.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type journalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.encoder == nil {
		return errors.New("journal is read-only")
	}

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal entry", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}

	j.length++
	slog.Debug("appended journal entry", "path", j.path, "index", j.length-1)

	return nil
}

// AppendBatch implements Journal.
func (j *journalImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string {
	return j.path
}

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Range implements Journal. It replays entries from disk in append order
// and stops at the first callback error.
func (j *journalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		slog.Error("failed to open journal for range", "path", j.path, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); ; i++ {
		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			slog.Error("failed to decode journal entry", "path", j.path, "index", i, "error", err)

			return fmt.Errorf("failed to decode journal entry at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			slog.Warn("journal range callback error", "path", j.path, "index", i, "error", err)
			return err
		}
	}

	return nil
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		if err := j.file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
			return err
		}

		j.file = nil

		slog.Debug("closed journal", "path", j.path, "length", j.length)
	}

	return nil
}

// NewJournal creates a journal at path, truncating any previous content.
func NewJournal[T any](path string) (Journal[T], error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		slog.Error("failed to create journal", "path", path, "error", err)
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	slog.Debug("created journal", "path", path)

	return &journalImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
		length:  0,
	}, nil
}

// OpenJournal opens an existing journal read-only; Append fails on it.
func OpenJournal[T any](path string) (Journal[T], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("journal not found: %w", err)
	}

	return &journalImpl[T]{path: path}, nil
}
