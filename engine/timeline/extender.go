package timeline

import (
	"fmt"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
)

// Extend normalizes resolved windows so that every window satisfies
// end >= start with finite bounds. Non-finite bounds are replaced with safe
// defaults (start 0, end clamped non-negative) and inverted windows are
// clamped to zero length. Both corrections are reported as warnings, not
// failures — the scene still reconciles, and authors can act on the
// diagnostics.
//
// Parameters:
//   - resolved: the resolver output
//
// Returns:
//   - []Resolved: corrected windows in the same order
//   - []diagnostics.Diagnostic: one entry per corrected window
func Extend(resolved []Resolved) ([]Resolved, []diagnostics.Diagnostic) {
	out := make([]Resolved, len(resolved))
	var diags []diagnostics.Diagnostic

	for i, r := range resolved {
		start, end := r.Start, r.End

		if !common.IsFinite(start) || !common.IsFinite(end) {
			corrected := Resolved{Keyframe: r.Keyframe, Start: 0, End: 0}
			diags = append(diags, diagnostics.Diagnostic{
				Code:       diagnostics.CodeInvalidTimeValue,
				KeyframeID: r.Keyframe.ID,
				Message:    fmt.Sprintf("non-finite window [%v, %v) replaced with [%v, %v)", start, end, corrected.Start, corrected.End),
			})
			out[i] = corrected
			continue
		}

		if end < start {
			diags = append(diags, diagnostics.Diagnostic{
				Code:       diagnostics.CodeTimeWindowCorrected,
				KeyframeID: r.Keyframe.ID,
				Message:    fmt.Sprintf("window end %v precedes start %v; clamped to zero length", end, start),
			})
			end = start
		}

		out[i] = Resolved{Keyframe: r.Keyframe, Start: start, End: end}
	}

	return out, diags
}
