package stt

import "context"

// RawSegment is one recognized span of speech within a single chunk. Start
// and End are seconds relative to the chunk's own beginning (time 0 = chunk
// start), not the stream.
type RawSegment struct {
	// Start is the segment start in seconds, local to the chunk.
	Start float64

	// End is the segment end in seconds, local to the chunk.
	End float64

	// Text is the transcribed text for this span.
	Text string
}

// Engine is a speech-to-text engine that decodes one chunk at a time. Calls
// are independent: no cross-chunk context is carried into the engine, so a
// chunk's result depends only on its own samples.
//
// Whether concurrent TranscribeChunk calls are safe is per implementation;
// the configuration layer only allows multiple workers for engines that
// support them.
type Engine interface {
	// TranscribeChunk decodes one chunk's samples and returns its segments
	// in playback order. A decode failure is an error; the caller decides
	// whether it aborts the run or only that chunk.
	TranscribeChunk(ctx context.Context, samples []float32, sampleRate int) ([]RawSegment, error)

	// Close releases the engine's resources.
	Close() error
}
