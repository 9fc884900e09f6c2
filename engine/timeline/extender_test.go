package timeline

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
)

func TestExtendPassesThroughValidWindows(t *testing.T) {
	in := []Resolved{
		{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("a")), Start: 1, End: 3},
		{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("b")), Start: 2, End: 2},
	}

	out, diags := Extend(in)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	for i := range in {
		if out[i].Start != in[i].Start || out[i].End != in[i].End {
			t.Fatalf("window %d changed: [%v, %v) -> [%v, %v)", i, in[i].Start, in[i].End, out[i].Start, out[i].End)
		}
	}
}

func TestExtendClampsInvertedWindow(t *testing.T) {
	in := []Resolved{
		{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("a")), Start: 5, End: 3},
	}

	out, diags := Extend(in)
	if out[0].Start != 5 || out[0].End != 5 {
		t.Fatalf("clamped window = [%v, %v), want [5, 5)", out[0].Start, out[0].End)
	}
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeTimeWindowCorrected {
		t.Fatalf("diags = %v, want one time_window_corrected", diags)
	}
	if diags[0].KeyframeID != "a" {
		t.Fatalf("diagnostic names keyframe %q, want a", diags[0].KeyframeID)
	}
}

func TestExtendReplacesNonFiniteWindows(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
	}{
		{name: "nan start", start: math.NaN(), end: 2},
		{name: "infinite end", start: 1, end: math.Inf(1)},
		{name: "both non-finite", start: math.Inf(-1), end: math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []Resolved{
				{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("a")), Start: tt.start, End: tt.end},
			}
			out, diags := Extend(in)
			if out[0].Start != 0 || out[0].End != 0 {
				t.Fatalf("replaced window = [%v, %v), want [0, 0)", out[0].Start, out[0].End)
			}
			if len(diags) != 1 || diags[0].Code != diagnostics.CodeInvalidTimeValue {
				t.Fatalf("diags = %v, want one invalid_time_value", diags)
			}
		})
	}
}

func TestExtendPreservesOrder(t *testing.T) {
	in := []Resolved{
		{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("a")), Start: 3, End: 1},
		{Keyframe: keyframe.NewKeyframe("robot", keyframe.WithID("b")), Start: 0, End: 1},
	}

	out, _ := Extend(in)
	if out[0].Keyframe.ID != "a" || out[1].Keyframe.ID != "b" {
		t.Fatalf("order changed: [%s, %s]", out[0].Keyframe.ID, out[1].Keyframe.ID)
	}
}
