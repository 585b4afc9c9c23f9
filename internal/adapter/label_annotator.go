package adapter

import (
	"errors"

	m "realias.dev/pkg/realias/internal/model"
)

// ErrLabelsUnsupported is returned where the platform has no file label
// metadata. Label writes are best-effort throughout; callers report the
// failure and move on.
var ErrLabelsUnsupported = errors.New("file labels unsupported on this platform")

// LabelAnnotator attaches a human-visible triage marker to a file. The
// marker is cosmetic only and is never read back by the engine.
type LabelAnnotator interface {
	SetLabel(path m.Path, code m.LabelCode) error
}
