package stt

import (
	"errors"
	"testing"
)

func TestNormalize_PassesCleanSegments(t *testing.T) {
	in := []RawSegment{
		{Start: 0.0, End: 2.5, Text: " hello "},
		{Start: 2.5, End: 4.0, Text: "world"},
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(out))
	}
	if out[0].Text != "hello" {
		t.Errorf("Expected trimmed text %q, got %q", "hello", out[0].Text)
	}
}

func TestNormalize_DropsEmptyText(t *testing.T) {
	in := []RawSegment{
		{Start: 0, End: 1, Text: "   "},
		{Start: 1, End: 2, Text: "kept"},
		{Start: 2, End: 3, Text: ""},
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(out) != 1 || out[0].Text != "kept" {
		t.Errorf("Expected only the non-empty segment, got %v", out)
	}
}

func TestNormalize_ClampsBounds(t *testing.T) {
	in := []RawSegment{
		{Start: -0.2, End: 1.0, Text: "negative start"},
		{Start: 2.0, End: 1.5, Text: "inverted"},
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if out[0].Start != 0 {
		t.Errorf("Expected negative start clamped to 0, got %v", out[0].Start)
	}
	if out[1].End != out[1].Start {
		t.Errorf("Expected inverted end clamped to start, got start=%v end=%v", out[1].Start, out[1].End)
	}
}

func TestNormalize_RejectsOutOfOrder(t *testing.T) {
	in := []RawSegment{
		{Start: 5.0, End: 6.0, Text: "later"},
		{Start: 1.0, End: 2.0, Text: "earlier"},
	}

	_, err := Normalize(in)
	if !errors.Is(err, ErrSegmentOrder) {
		t.Errorf("Expected ErrSegmentOrder, got %v", err)
	}
}

func TestNormalize_AllowsEqualStarts(t *testing.T) {
	in := []RawSegment{
		{Start: 1.0, End: 2.0, Text: "a"},
		{Start: 1.0, End: 3.0, Text: "b"},
	}

	out, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Expected 2 segments, got %d", len(out))
	}
}

func TestNormalize_Empty(t *testing.T) {
	out, err := Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no segments, got %d", len(out))
	}
}
