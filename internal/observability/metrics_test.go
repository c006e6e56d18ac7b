package observability

import (
	"testing"
	"time"
)

func TestMetricsHelpers(t *testing.T) {
	// helpers must accept any of the labels the pipeline emits
	RecordChunk("ok")
	RecordChunk("anomaly")
	RecordChunk("skipped")
	ObserveChunkDecode(250 * time.Millisecond)
	AddSegments(3)
	ObserveStage("transcribe", 2*time.Second)
	RecordError("pipeline")
}

func TestServeMetrics_BadAddr(t *testing.T) {
	// an unusable listener is logged, never fatal to the run
	ServeMetrics("definitely-not-an-addr:-1")
	time.Sleep(50 * time.Millisecond)
}
