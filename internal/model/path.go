package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Join appends elements to the path.
func (p Path) Join(elem ...string) Path {
	parts := append([]string{string(p)}, elem...)

	return Path(filepath.Join(parts...))
}

// IsEmpty reports whether the path holds no value.
func (p Path) IsEmpty() bool {
	return p == ""
}
