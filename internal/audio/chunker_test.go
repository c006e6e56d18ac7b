package audio

import (
	"errors"
	"testing"
)

func TestSplit_ExactMultiple(t *testing.T) {
	// 4 chunks of exactly 2s at 100Hz
	buf := &Buffer{Samples: make([]float32, 800), SampleRate: 100}

	chunks, err := Split(buf, 2)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("Expected 4 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.EndSample-c.StartSample != 200 {
			t.Errorf("Chunk %d: expected length 200, got %d", i, c.EndSample-c.StartSample)
		}
	}
}

func TestSplit_Remainder(t *testing.T) {
	// 250s at 16kHz with 120s chunks: 120s + 120s + 10s
	buf := &Buffer{Samples: make([]float32, 250*16000), SampleRate: 16000}

	chunks, err := Split(buf, 120)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}

	wantLens := []int{120 * 16000, 120 * 16000, 10 * 16000}
	for i, c := range chunks {
		if got := c.EndSample - c.StartSample; got != wantLens[i] {
			t.Errorf("Chunk %d: expected length %d, got %d", i, wantLens[i], got)
		}
	}
	if got := chunks[2].Duration(buf.SampleRate); got != 10.0 {
		t.Errorf("Expected final chunk duration 10s, got %v", got)
	}
}

func TestSplit_CoverageNoGapsNoOverlap(t *testing.T) {
	cases := []struct {
		name         string
		samples      int
		sampleRate   int
		chunkSeconds int
	}{
		{"even split", 1000, 100, 2},
		{"short tail", 1001, 100, 2},
		{"single chunk", 50, 100, 2},
		{"one sample", 1, 16000, 120},
		{"odd everything", 48013, 16000, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &Buffer{Samples: make([]float32, tc.samples), SampleRate: tc.sampleRate}
			chunks, err := Split(buf, tc.chunkSeconds)
			if err != nil {
				t.Fatalf("Split returned error: %v", err)
			}
			if len(chunks) == 0 {
				t.Fatal("Expected at least one chunk for non-empty input")
			}

			next := 0
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("Chunk %d: expected index %d, got %d", i, i, c.Index)
				}
				if c.StartSample != next {
					t.Errorf("Chunk %d: expected start %d, got %d", i, next, c.StartSample)
				}
				if c.EndSample <= c.StartSample {
					t.Errorf("Chunk %d: empty or inverted range [%d, %d)", i, c.StartSample, c.EndSample)
				}
				next = c.EndSample
			}
			if next != tc.samples {
				t.Errorf("Expected chunks to cover %d samples, covered %d", tc.samples, next)
			}
		})
	}
}

func TestSplit_InvalidInput(t *testing.T) {
	cases := []struct {
		name         string
		buf          *Buffer
		chunkSeconds int
	}{
		{"empty buffer", &Buffer{Samples: nil, SampleRate: 16000}, 120},
		{"zero sample rate", &Buffer{Samples: make([]float32, 100), SampleRate: 0}, 120},
		{"negative sample rate", &Buffer{Samples: make([]float32, 100), SampleRate: -1}, 120},
		{"zero chunk duration", &Buffer{Samples: make([]float32, 100), SampleRate: 16000}, 0},
		{"negative chunk duration", &Buffer{Samples: make([]float32, 100), SampleRate: 16000}, -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(tc.buf, tc.chunkSeconds)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestChunk_Offset(t *testing.T) {
	c := Chunk{Index: 2, StartSample: 240 * 16000, EndSample: 250 * 16000}
	if got := c.Offset(16000); got != 240.0 {
		t.Errorf("Expected offset 240s, got %v", got)
	}
}

func TestChunk_SamplesIsView(t *testing.T) {
	buf := &Buffer{Samples: []float32{0, 1, 2, 3, 4, 5}, SampleRate: 2}
	c := Chunk{Index: 1, StartSample: 2, EndSample: 4}

	got := c.Samples(buf)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("Expected samples [2 3], got %v", got)
	}
}
