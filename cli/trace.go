package cli

import (
	"os"

	"go.redcode.dev/mars/trace"
)

// tracerExporter is implemented by trace.RecordingTracer; kept as a
// small local interface so exportTrace doesn't need to know about
// RecordingTracer's other methods.
type tracerExporter interface {
	Global() []trace.Record
}

// recordingTracer returns a RecordingTracer when a trace export path
// was requested, otherwise a NullTracer so the hot path pays nothing
// for the common case.
func recordingTracer(path string) trace.Tracer {
	if path == "" {
		return trace.NullTracer{}
	}
	return trace.NewRecordingTracer(1_000_000, 10_000, 0)
}

func exportTrace(path string, rt tracerExporter) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return trace.WriteCSV(f, rt.Global())
}
