package audio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrInvalidInput marks audio input the pipeline cannot work with: an empty
// sample buffer, a non-positive sample rate, or a non-positive chunk duration.
var ErrInvalidInput = errors.New("invalid audio input")

// Buffer holds a fully decoded mono audio signal. It is created once per
// pipeline run and treated as read-only for the duration of the run.
type Buffer struct {
	// Samples are mono PCM samples in [-1, 1].
	Samples []float32

	// SampleRate is the number of samples per second.
	SampleRate int
}

// Duration returns the total length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Validate checks that the buffer is usable as pipeline input.
func (b *Buffer) Validate() error {
	if len(b.Samples) == 0 {
		return fmt.Errorf("%w: empty sample buffer", ErrInvalidInput)
	}
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidInput, b.SampleRate)
	}
	return nil
}

// LoadWAV decodes a WAV file into a Buffer. Multi-channel input is downmixed
// to mono by averaging channels; callers that need a specific rate should
// resample afterwards (see Resample).
func LoadWAV(path string) (*Buffer, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav %s: %w", path, err)
	}
	if pcm.Format == nil || pcm.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: wav %s has no sample rate", ErrInvalidInput, path)
	}

	data := pcm.AsFloat32Buffer().Data
	channels := pcm.Format.NumChannels
	if channels > 1 {
		data = downmix(data, channels)
	}

	buf := &Buffer{Samples: data, SampleRate: pcm.Format.SampleRate}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("wav %s: %w", path, err)
	}
	return buf, nil
}

// downmix averages interleaved channels into a single mono channel.
func downmix(data []float32, channels int) []float32 {
	frames := len(data) / channels
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}
