package stt

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrSegmentOrder reports engine output whose segments are not in
// monotonically non-decreasing start order. The engine contract says segments
// arrive in playback order; a chunk that breaks it is rejected whole.
var ErrSegmentOrder = errors.New("engine segments out of order")

// Normalize validates a chunk's raw engine output against the segment
// contract and returns a cleaned copy:
//
//   - empty-text segments are dropped
//   - a negative start is clamped to 0, an end before its start to the start
//   - out-of-order starts fail the whole chunk with ErrSegmentOrder
//
// Engines may slightly overrun the chunk duration because of internal
// framing, so ends past the chunk boundary are left alone.
func Normalize(segs []RawSegment) ([]RawSegment, error) {
	out := make([]RawSegment, 0, len(segs))
	prevStart := math.Inf(-1)

	for i, seg := range segs {
		if seg.Start < prevStart {
			return nil, fmt.Errorf("%w: segment %d starts at %.3fs after %.3fs", ErrSegmentOrder, i, seg.Start, prevStart)
		}
		prevStart = seg.Start

		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}

		if seg.Start < 0 {
			seg.Start = 0
		}
		if seg.End < seg.Start {
			seg.End = seg.Start
		}
		seg.Text = text
		out = append(out, seg)
	}

	return out, nil
}
