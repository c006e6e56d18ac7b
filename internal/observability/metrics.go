package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Chunk metrics
	chunksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vodscribe_chunks_total",
		Help: "Chunks processed, by outcome",
	}, []string{"status"}) // ok | anomaly | skipped

	chunkDecodeSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vodscribe_chunk_decode_seconds",
		Help:    "Wall time to decode one chunk",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	// Segment metrics
	segmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vodscribe_segments_total",
		Help: "Transcript segments produced across all chunks",
	})

	// Stage metrics
	stageSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vodscribe_stage_seconds",
		Help:    "Duration of each pipeline stage",
		Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
	}, []string{"stage"}) // chat | audio | convert | transcribe

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vodscribe_errors_total",
		Help: "Errors by component",
	}, []string{"component"})
)

// RecordChunk counts one processed chunk with its outcome.
func RecordChunk(status string) {
	chunksTotal.WithLabelValues(status).Inc()
}

// ObserveChunkDecode records the wall time spent decoding one chunk.
func ObserveChunkDecode(d time.Duration) {
	chunkDecodeSeconds.Observe(d.Seconds())
}

// AddSegments counts segments contributed by a chunk.
func AddSegments(n int) {
	segmentsTotal.Add(float64(n))
}

// ObserveStage records the duration of a whole pipeline stage.
func ObserveStage(stage string, d time.Duration) {
	stageSeconds.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordError counts an error against a component.
func RecordError(component string) {
	errorsTotal.WithLabelValues(component).Inc()
}

// ServeMetrics exposes /metrics on addr in a background goroutine for the
// lifetime of the process. Errors are reported through the logger; a broken
// metrics listener never stops a run.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger := GetLogger()
			logger.Warn().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()
}
