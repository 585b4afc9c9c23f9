//go:build !darwin

package adapter

import (
	m "realias.dev/pkg/realias/internal/model"
)

type noopLabelAnnotator struct{}

// NewLabelAnnotator constructs the platform label annotator. On platforms
// without file label metadata every write fails with
// ErrLabelsUnsupported, which callers treat as a reportable, non-fatal
// condition.
func NewLabelAnnotator() LabelAnnotator {
	return noopLabelAnnotator{}
}

func (noopLabelAnnotator) SetLabel(m.Path, m.LabelCode) error {
	return ErrLabelsUnsupported
}
