//go:build !darwin || !cgo

package adapter

// NewPlatformRecordCodec reports that no codec exists for this platform.
// The engine and scanner stay testable everywhere through the RecordCodec
// interface; only the real repair run needs the platform capability.
func NewPlatformRecordCodec() (RecordCodec, error) {
	return nil, ErrCodecUnavailable
}
