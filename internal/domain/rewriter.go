package domain

import (
	"strings"

	m "realias.dev/pkg/realias/internal/model"
)

// Rewrite substitutes the first occurrence of search within p with
// replace. The match is a literal, case-sensitive substring match; when
// search does not occur the outcome is unchanged, which is the designed
// no-op path for targets that never lived under the old root.
//
// Pure function, no I/O.
func Rewrite(p m.Path, search, replace string) m.RewriteOutcome {
	if search == "" {
		return m.RewriteOutcome{Changed: false, Target: p}
	}

	idx := strings.Index(string(p), search)
	if idx < 0 {
		return m.RewriteOutcome{Changed: false, Target: p}
	}

	rewritten := string(p)[:idx] + replace + string(p)[idx+len(search):]

	return m.RewriteOutcome{Changed: true, Target: m.Path(rewritten)}
}
