// Package model defines the data structures for alias redirection.
package model

// ResolutionStatus classifies how far a record could be resolved.
type ResolutionStatus int

const (
	// ResolvedFull means the record decoded and its reference resolved
	// to a live path.
	ResolvedFull ResolutionStatus = iota
	// ResolvedHint means full resolution failed but a last-known path
	// was recovered from the record's stored metadata.
	ResolvedHint
	// Unresolved means the record decoded but neither a live target nor
	// a path hint could be obtained.
	Unresolved
	// Undecodable means the file could not be read as a record at all.
	Undecodable
)

func (s ResolutionStatus) String() string {
	switch s {
	case ResolvedFull:
		return "resolved"
	case ResolvedHint:
		return "hint"
	case Unresolved:
		return "unresolved"
	case Undecodable:
		return "undecodable"
	}

	return "unknown"
}

// Resolution is the outcome of decoding and resolving one record.
// Target is set only for ResolvedFull and ResolvedHint.
type Resolution struct {
	Status ResolutionStatus
	Target Path
	// Stale is set when the record's cached metadata disagreed with the
	// live target's identity even though resolution succeeded.
	Stale bool
}

// HasTarget reports whether the resolution carries a usable path.
func (r Resolution) HasTarget() bool {
	return r.Status == ResolvedFull || r.Status == ResolvedHint
}

// RewriteOutcome is the result of the prefix substitution on a target path.
type RewriteOutcome struct {
	Changed bool
	Target  Path
}

// LabelCode is the Finder label attached to a file for operator triage.
// Purely cosmetic; the engine never reads labels back.
type LabelCode int

const (
	LabelNone   LabelCode = 0
	LabelGray   LabelCode = 1
	LabelGreen  LabelCode = 2
	LabelPurple LabelCode = 3
	LabelBlue   LabelCode = 4
	LabelYellow LabelCode = 5
	LabelRed    LabelCode = 6
	LabelOrange LabelCode = 7
)

func (l LabelCode) String() string {
	switch l {
	case LabelNone:
		return "none"
	case LabelGray:
		return "gray"
	case LabelGreen:
		return "green"
	case LabelPurple:
		return "purple"
	case LabelBlue:
		return "blue"
	case LabelYellow:
		return "yellow"
	case LabelRed:
		return "red"
	case LabelOrange:
		return "orange"
	}

	return "unknown"
}

// MarshalYAML renders the label by name rather than ordinal.
func (l LabelCode) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}
