package audio

// EnergyGate decides whether a chunk carries enough signal to be worth
// decoding. It is an optional pre-filter in front of the transcription
// engine; a gated chunk is skipped, not treated as a decode failure.
type EnergyGate struct {
	// Threshold is the minimum RMS energy for a frame to count as speech.
	Threshold float64

	// FrameSize is the number of samples examined per frame.
	FrameSize int
}

// DefaultEnergyGate returns a gate tuned for 16 kHz speech: 20 ms frames and
// a conservative threshold so quiet speech still passes.
func DefaultEnergyGate() *EnergyGate {
	return &EnergyGate{
		Threshold: 0.005,
		FrameSize: 320, // 20ms at 16kHz
	}
}

// HasSignal reports whether any frame in the chunk exceeds the energy
// threshold. A single loud frame is enough; the engine decides what is
// actually speech.
func (g *EnergyGate) HasSignal(samples []float32) bool {
	frame := g.FrameSize
	if frame <= 0 {
		frame = 320
	}
	for start := 0; start < len(samples); start += frame {
		end := start + frame
		if end > len(samples) {
			end = len(samples)
		}
		if RMS(samples[start:end]) > g.Threshold {
			return true
		}
	}
	return false
}
