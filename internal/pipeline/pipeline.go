// Package pipeline drives the chunked transcription run: segment the buffer,
// decode each chunk, move its timestamps onto the global clock, and assemble
// the ordered transcript.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vodscribe/vodscribe/internal/audio"
	"github.com/vodscribe/vodscribe/internal/observability"
	"github.com/vodscribe/vodscribe/internal/stt"
	"github.com/vodscribe/vodscribe/internal/timeline"
)

// Config tunes one pipeline run.
type Config struct {
	// ChunkSeconds is the window size handed to the engine per call.
	ChunkSeconds int

	// Workers is the number of concurrent decoders. 1 reproduces the
	// sequential reference behavior; chunk results are order-independent
	// either way because the final sort is deferred to the assembler.
	Workers int

	// Gate, when non-nil, skips decoding chunks without measurable signal.
	Gate *audio.EnergyGate
}

// Stats summarizes what a run did, so callers can tell "silent audio" from
// "every chunk failed" without digging through logs.
type Stats struct {
	Chunks    int
	Anomalies int
	Skipped   int
	Segments  int
}

// Pipeline binds an engine to a run configuration.
type Pipeline struct {
	engine stt.Engine
	cfg    Config
	log    zerolog.Logger
}

// New creates a pipeline around a transcription engine.
func New(engine stt.Engine, cfg Config, log zerolog.Logger) *Pipeline {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Pipeline{engine: engine, cfg: cfg, log: log}
}

// chunkResult carries one chunk's reconciled segments plus its index so
// merged worker output can be put back into chunk order before assembly.
type chunkResult struct {
	index     int
	segs      []timeline.GlobalSegment
	anomalous bool
	skipped   bool
}

// Run transcribes the whole buffer and returns the ordered transcript.
// Per-chunk decode failures are anomalies: logged, counted, and recovered by
// contributing zero segments. Only invalid input and cancellation abort the
// run. A run in which no chunk produced segments returns
// timeline.ErrNoTranscript alongside the stats.
func (p *Pipeline) Run(ctx context.Context, buf *audio.Buffer) ([]timeline.Record, Stats, error) {
	var stats Stats

	chunks, err := audio.Split(buf, p.cfg.ChunkSeconds)
	if err != nil {
		return nil, stats, err
	}
	stats.Chunks = len(chunks)

	p.log.Info().
		Int("chunks", len(chunks)).
		Int("chunk_seconds", p.cfg.ChunkSeconds).
		Int("workers", p.cfg.Workers).
		Float64("duration_seconds", buf.Duration()).
		Msg("starting transcription")

	var results []chunkResult
	if p.cfg.Workers == 1 {
		results, err = p.runSequential(ctx, buf, chunks)
	} else {
		results, err = p.runParallel(ctx, buf, chunks)
	}
	if err != nil {
		return nil, stats, err
	}

	// back into chunk order so equal global starts keep chunk-then-local
	// order through the stable sort
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	var all []timeline.GlobalSegment
	for _, r := range results {
		if r.anomalous {
			stats.Anomalies++
		}
		if r.skipped {
			stats.Skipped++
		}
		all = append(all, r.segs...)
	}
	stats.Segments = len(all)

	records, err := timeline.Assemble(all)
	if err != nil {
		return nil, stats, err
	}
	return records, stats, nil
}

func (p *Pipeline) runSequential(ctx context.Context, buf *audio.Buffer, chunks []audio.Chunk) ([]chunkResult, error) {
	results := make([]chunkResult, 0, len(chunks))
	for _, c := range chunks {
		// cancellation is observed at chunk boundaries only; a decode in
		// flight is allowed to finish
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, p.processChunk(ctx, buf, c))
	}
	return results, nil
}

func (p *Pipeline) runParallel(ctx context.Context, buf *audio.Buffer, chunks []audio.Chunk) ([]chunkResult, error) {
	jobs := make(chan audio.Chunk)
	perWorker := make([][]chunkResult, p.cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			// per-worker local buffers, merged after all workers finish; no
			// shared list on the hot path
			for c := range jobs {
				perWorker[w] = append(perWorker[w], p.processChunk(ctx, buf, c))
			}
		}(w)
	}

	var cancelled error
feed:
	for _, c := range chunks {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- c:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	var results []chunkResult
	for _, rs := range perWorker {
		results = append(results, rs...)
	}
	return results, nil
}

// processChunk decodes one chunk and reconciles its segments onto the global
// timeline. It never fails the run: every error path degrades to an empty,
// flagged result.
func (p *Pipeline) processChunk(ctx context.Context, buf *audio.Buffer, c audio.Chunk) chunkResult {
	res := chunkResult{index: c.Index}
	offset := c.Offset(buf.SampleRate)
	samples := c.Samples(buf)

	if p.cfg.Gate != nil && !p.cfg.Gate.HasSignal(samples) {
		p.log.Debug().Int("chunk", c.Index).Float64("offset", offset).Msg("chunk gated, no signal")
		observability.RecordChunk("skipped")
		res.skipped = true
		return res
	}

	start := time.Now()
	raw, err := p.engine.TranscribeChunk(ctx, samples, buf.SampleRate)
	observability.ObserveChunkDecode(time.Since(start))
	if err != nil {
		p.anomaly(c, offset, fmt.Errorf("decode: %w", err))
		res.anomalous = true
		return res
	}

	clean, err := stt.Normalize(raw)
	if err != nil {
		p.anomaly(c, offset, err)
		res.anomalous = true
		return res
	}

	for _, seg := range clean {
		res.segs = append(res.segs, timeline.Reconcile(seg, offset))
	}

	observability.RecordChunk("ok")
	observability.AddSegments(len(res.segs))
	p.log.Debug().
		Int("chunk", c.Index).
		Float64("offset", offset).
		Int("segments", len(res.segs)).
		Dur("took", time.Since(start)).
		Msg("chunk transcribed")
	return res
}

func (p *Pipeline) anomaly(c audio.Chunk, offset float64, err error) {
	observability.RecordChunk("anomaly")
	observability.RecordError("pipeline")
	p.log.Warn().
		Int("chunk", c.Index).
		Float64("offset", offset).
		Err(err).
		Msg("chunk failed, continuing without it")
}
