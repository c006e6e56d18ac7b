// Package timeline rebuilds a single global timeline from the chunk-local
// timestamps the transcription engine reports.
package timeline

import "github.com/vodscribe/vodscribe/internal/stt"

// GlobalSegment is a recognized span of speech positioned on the stream's
// own clock rather than a chunk's.
type GlobalSegment struct {
	// Start is seconds from the beginning of the whole stream.
	Start float64

	// End is seconds from the beginning of the whole stream.
	End float64

	// Text is the transcribed text.
	Text string
}

// Reconcile shifts a chunk-local segment onto the global timeline by adding
// the chunk's start offset. Pure: same inputs always give the same segment.
func Reconcile(seg stt.RawSegment, chunkOffset float64) GlobalSegment {
	return GlobalSegment{
		Start: seg.Start + chunkOffset,
		End:   seg.End + chunkOffset,
		Text:  seg.Text,
	}
}
