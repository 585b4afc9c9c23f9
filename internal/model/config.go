package model

import "time"

// ScanConfig controls a single tree scan. Immutable per run.
type ScanConfig struct {
	Root Path
	// IncludePackages descends into package-like directories (bundles)
	// that the platform normally presents as opaque single units.
	IncludePackages bool
}

// RedirectConfig holds the parameters of a repair run. Immutable per run.
type RedirectConfig struct {
	Root    Path
	Search  string
	Replace string

	// Quiet suppresses per-candidate diagnostics on the error stream.
	Quiet bool

	// ResolveTimeout bounds a single record resolution. Resolution never
	// prompts or mounts, but it can still stall on slow storage.
	ResolveTimeout time.Duration
}
