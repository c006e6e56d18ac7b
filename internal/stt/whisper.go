package stt

import (
	"context"
	"fmt"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperEngine runs whisper.cpp in-process. The model weights are loaded
// once; decode contexts created per call still share the model's C-side
// state, so TranscribeChunk calls must not run concurrently. Config
// validation pins this engine to a single worker.
type WhisperEngine struct {
	model    whisper.Model
	language string
	beamSize int
	threads  uint
}

// NewWhisperEngine loads a ggml whisper model from modelPath. beamSize 1
// selects greedy decoding.
func NewWhisperEngine(modelPath, language string, beamSize, threads int) (*WhisperEngine, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %s: %w", modelPath, err)
	}
	if beamSize < 1 {
		beamSize = 1
	}
	if threads < 1 {
		threads = 1
	}
	return &WhisperEngine{
		model:    model,
		language: language,
		beamSize: beamSize,
		threads:  uint(threads),
	}, nil
}

// TranscribeChunk decodes one chunk of 16kHz mono samples.
func (e *WhisperEngine) TranscribeChunk(ctx context.Context, samples []float32, sampleRate int) ([]RawSegment, error) {
	if sampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("whisper requires %dHz input, got %dHz", whisper.SampleRate, sampleRate)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wctx, err := e.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new whisper context: %w", err)
	}

	wctx.SetThreads(e.threads)
	wctx.SetBeamSize(e.beamSize)
	if e.language != "" {
		if err := wctx.SetLanguage(e.language); err != nil {
			return nil, fmt.Errorf("set language %q: %w", e.language, err)
		}
	}

	if err := wctx.Process(samples, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}

	var segs []RawSegment
	for {
		s, err := wctx.NextSegment()
		if err != nil {
			break
		}
		segs = append(segs, RawSegment{
			Start: s.Start.Seconds(),
			End:   s.End.Seconds(),
			Text:  s.Text,
		})
	}
	return segs, nil
}

// Close releases the model weights.
func (e *WhisperEngine) Close() error {
	return e.model.Close()
}
