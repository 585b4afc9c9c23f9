package model

// Outcome is the terminal state of one candidate's repair workflow.
type Outcome int

const (
	// Redirected means the record was replaced with one pointing at the
	// rewritten target.
	Redirected Outcome = iota
	// Skipped means the resolved target never contained the search
	// prefix; the file was left untouched and nothing was reported.
	Skipped
	// LabeledUnresolvable means the record could not be resolved or
	// decoded; it was labeled gray for triage.
	LabeledUnresolvable
	// LabeledMissingTarget means the rewritten target does not exist;
	// the original record was kept and labeled red.
	LabeledMissingTarget
	// CodecError means a new record could not be created or written
	// after a valid new target was found. The original record survives.
	CodecError
)

func (o Outcome) String() string {
	switch o {
	case Redirected:
		return "redirected"
	case Skipped:
		return "skipped"
	case LabeledUnresolvable:
		return "unresolvable"
	case LabeledMissingTarget:
		return "missing-target"
	case CodecError:
		return "codec-error"
	}

	return "unknown"
}

// MarshalYAML renders the outcome by name rather than ordinal.
func (o Outcome) MarshalYAML() (interface{}, error) {
	return o.String(), nil
}

// Report records what happened to a single candidate.
type Report struct {
	Candidate Path      `yaml:"candidate"`
	Outcome   Outcome   `yaml:"outcome"`
	OldTarget Path      `yaml:"old_target,omitempty"`
	NewTarget Path      `yaml:"new_target,omitempty"`
	Stale     bool      `yaml:"stale,omitempty"`
	Label     LabelCode `yaml:"label,omitempty"`
	Reason    string    `yaml:"reason,omitempty"`
}

// RunSummary aggregates the reports of one run.
type RunSummary struct {
	Scanned       int
	Redirected    int
	Skipped       int
	Unresolvable  int
	MissingTarget int
	CodecErrors   int
}

// Summarize folds per-candidate reports into a summary.
func Summarize(reports []Report) RunSummary {
	var s RunSummary

	for _, r := range reports {
		s.Scanned++

		switch r.Outcome {
		case Redirected:
			s.Redirected++
		case Skipped:
			s.Skipped++
		case LabeledUnresolvable:
			s.Unresolvable++
		case LabeledMissingTarget:
			s.MissingTarget++
		case CodecError:
			s.CodecErrors++
		}
	}

	return s
}
