package audio

import "math"

// PCM16Bytes converts float32 samples in [-1, 1] to 16-bit signed PCM,
// little-endian. Samples outside the valid range are clipped rather than
// wrapped.
func PCM16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		n := int16(math.Round(v * 32767))
		out[i*2] = byte(n)
		out[i*2+1] = byte(n >> 8)
	}
	return out
}

// Resample converts a buffer to the target sample rate using linear
// interpolation. Returns the same buffer when the rate already matches.
func Resample(buf *Buffer, targetRate int) *Buffer {
	if buf.SampleRate == targetRate || buf.SampleRate <= 0 || targetRate <= 0 {
		return buf
	}

	ratio := float64(targetRate) / float64(buf.SampleRate)
	outLen := int(float64(len(buf.Samples)) * ratio)
	out := make([]float32, outLen)

	for i := 0; i < outLen; i++ {
		srcPos := float64(i) / ratio
		idx0 := int(srcPos)
		idx1 := idx0 + 1
		if idx1 >= len(buf.Samples) {
			out[i] = buf.Samples[len(buf.Samples)-1]
			continue
		}
		frac := float32(srcPos - float64(idx0))
		out[i] = buf.Samples[idx0]*(1-frac) + buf.Samples[idx1]*frac
	}

	return &Buffer{Samples: out, SampleRate: targetRate}
}

// RMS computes the root-mean-square energy of a block of samples.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}
