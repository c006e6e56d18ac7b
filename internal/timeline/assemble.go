package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNoTranscript reports a run in which no chunk produced a single segment.
// It is an outcome, not a failure: the pipeline worked, the audio was silent
// or undecodable throughout.
var ErrNoTranscript = errors.New("no transcript data")

// Record is the externally visible transcript unit: a formatted global
// timestamp and the text spoken there.
type Record struct {
	Time string
	Text string
}

// Assemble orders all reconciled segments into the final transcript. Chunks
// may have completed in any order, so it sorts rather than trusting arrival
// order; the sort is stable so equal starts keep their chunk-then-local
// order. Returns ErrNoTranscript when there is nothing to emit.
func Assemble(segs []GlobalSegment) ([]Record, error) {
	if len(segs) == 0 {
		return nil, ErrNoTranscript
	}

	sorted := make([]GlobalSegment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	records := make([]Record, len(sorted))
	for i, seg := range sorted {
		records[i] = Record{
			Time: FormatTimestamp(seg.Start),
			Text: seg.Text,
		}
	}
	return records, nil
}

// FormatTimestamp renders seconds as zero-padded HH:MM:SS.mmm. Hours grow
// past two digits only when the stream is that long.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	// round to milliseconds first so 59.9995s carries into the minute
	ms := int64(math.Round(seconds * 1000))

	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
