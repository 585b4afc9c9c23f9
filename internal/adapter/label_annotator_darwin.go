//go:build darwin

package adapter

import (
	"fmt"
	"log/slog"

	"golang.org/x/sys/unix"

	m "realias.dev/pkg/realias/internal/model"
)

const (
	finderInfoAttr = "com.apple.FinderInfo"
	finderInfoSize = 32

	// The label color lives in bits 1-3 of the low Finder-flags byte.
	labelBitsMask  = 0x0E
	labelBitsShift = 1

	// Finder flags are a big-endian uint16 at offset 8 of FinderInfo;
	// the low byte carrying the label is at offset 9.
	labelByteOffset = 9
)

// FinderLabelAnnotator writes Finder label colors through the FinderInfo
// extended attribute.
type FinderLabelAnnotator struct{}

// NewLabelAnnotator constructs the platform label annotator.
func NewLabelAnnotator() LabelAnnotator {
	return &FinderLabelAnnotator{}
}

// SetLabel sets the Finder label of path to code, preserving the rest of
// the FinderInfo payload.
func (a *FinderLabelAnnotator) SetLabel(path m.Path, code m.LabelCode) error {
	info := make([]byte, finderInfoSize)

	n, err := unix.Getxattr(string(path), finderInfoAttr, info)
	switch {
	case err == nil && n != finderInfoSize:
		return fmt.Errorf("unexpected FinderInfo size %d on %s", n, path)
	case err != nil && err != unix.ENOATTR:
		return fmt.Errorf("failed to read FinderInfo of %s: %w", path, err)
	}

	info[labelByteOffset] &^= labelBitsMask
	info[labelByteOffset] |= byte(code) << labelBitsShift

	if err := unix.Setxattr(string(path), finderInfoAttr, info, 0); err != nil {
		return fmt.Errorf("failed to write FinderInfo of %s: %w", path, err)
	}

	slog.Debug("set file label", "path", path, "label", code)

	return nil
}
