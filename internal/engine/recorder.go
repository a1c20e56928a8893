package engine

// Recorder persists completed cycles outside the process.
type Recorder interface {
	RecordCycle(seq int, rec CycleRecord) error
}

// NoopRecorder discards cycles. Used when no database is configured.
type NoopRecorder struct{}

func (NoopRecorder) RecordCycle(int, CycleRecord) error { return nil }
