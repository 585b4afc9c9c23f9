// Package adapter contains platform and infrastructure adapters for the
// realias CLI.
package adapter

import (
	"context"
	"errors"

	m "realias.dev/pkg/realias/internal/model"
)

// Classification is the platform file type of a scanned entry.
type Classification int

const (
	// ClassOther covers sockets, devices and anything else the scan
	// does not act on.
	ClassOther Classification = iota
	// ClassRegularFile is a plain file that is not an indirection record.
	ClassRegularFile
	// ClassDirectory is a directory the scan descends into.
	ClassDirectory
	// ClassPackageDir is a directory the platform presents as an opaque
	// single unit (an app bundle, a document package).
	ClassPackageDir
	// ClassRecord is an indirection record (alias file).
	ClassRecord
)

func (c Classification) String() string {
	switch c {
	case ClassRegularFile:
		return "file"
	case ClassDirectory:
		return "directory"
	case ClassPackageDir:
		return "package"
	case ClassRecord:
		return "record"
	}

	return "other"
}

// Record is an encoded indirection record. Its bytes are produced and
// consumed only by the codec; the engine never inspects them.
type Record struct {
	Data []byte
}

// ErrCodecUnavailable is returned by NewPlatformRecordCodec when the
// running platform has no indirection-record support.
var ErrCodecUnavailable = errors.New("record codec unavailable on this platform")

// RecordCodec is the platform boundary for indirection records. Decoding,
// resolving and writing records is delegated here; the engine treats the
// record format as an opaque capability.
type RecordCodec interface {
	// DecodeAndResolve decodes the record at path and resolves its
	// reference without mounting volumes and without any UI. The error
	// carries diagnostic context for non-resolved outcomes; the
	// Resolution status is authoritative for workflow branching.
	DecodeAndResolve(ctx context.Context, path m.Path) (m.Resolution, error)

	// Create builds a new record bound to target. Fails if target does
	// not exist.
	Create(ctx context.Context, target m.Path) (Record, error)

	// Write persists a record at path, replacing any previous content.
	Write(ctx context.Context, rec Record, path m.Path) error

	// Classify reports the platform file type of path.
	Classify(path m.Path) (Classification, error)
}
