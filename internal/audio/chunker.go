package audio

import "fmt"

// Chunk is a view over a Buffer covering samples [StartSample, EndSample).
// Chunks never copy sample data; they reference the parent buffer.
type Chunk struct {
	Index       int
	StartSample int
	EndSample   int
}

// Samples returns the chunk's slice of the parent buffer.
func (c Chunk) Samples(buf *Buffer) []float32 {
	return buf.Samples[c.StartSample:c.EndSample]
}

// Offset returns the chunk's start position in seconds from the beginning of
// the stream. Derived from the actual start sample rather than the nominal
// chunk duration so the offset cannot drift when sample counts do not divide
// evenly.
func (c Chunk) Offset(sampleRate int) float64 {
	return float64(c.StartSample) / float64(sampleRate)
}

// Duration returns the chunk length in seconds.
func (c Chunk) Duration(sampleRate int) float64 {
	return float64(c.EndSample-c.StartSample) / float64(sampleRate)
}

// Split divides a buffer into contiguous, non-overlapping chunks of at most
// chunkSeconds each. The chunks cover the whole buffer with no gaps; only the
// final chunk may be shorter. Returns ErrInvalidInput for an empty buffer, a
// non-positive sample rate, or a non-positive chunk duration.
func Split(buf *Buffer, chunkSeconds int) ([]Chunk, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if chunkSeconds <= 0 {
		return nil, fmt.Errorf("%w: chunk duration %ds", ErrInvalidInput, chunkSeconds)
	}

	chunkSize := chunkSeconds * buf.SampleRate
	n := len(buf.Samples)

	chunks := make([]Chunk, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{
			Index:       len(chunks),
			StartSample: start,
			EndSample:   end,
		})
	}
	return chunks, nil
}
