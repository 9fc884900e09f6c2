// package timeline resolves declarative keyframe time specifications into
// absolute [start, end) windows. Resolution is an iterative fixpoint over the
// relative-reference graph with a configurable pass cap; the extender then
// normalizes degenerate windows so downstream stages can rely on end >= start.
package timeline

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
)

// DefaultMaxPasses bounds the resolution fixpoint. Each pass resolves at
// least one keyframe when progress is possible, so this is effectively the
// maximum supported depth of a relative-time dependency chain.
const DefaultMaxPasses = 64

// Resolved annotates a keyframe with its absolute time window. The embedded
// keyframe is shared, never copied-and-mutated; all derived timing lives
// here.
type Resolved struct {
	// Keyframe is the annotated keyframe, read-only.
	Keyframe keyframe.Keyframe

	// Start is the absolute window start in seconds.
	Start float64

	// End is the absolute window end in seconds. After Extend, End >= Start.
	End float64
}

// resolver is the implementation of the Resolver interface.
type resolver struct {
	maxPasses int
}

// Resolver converts every keyframe's time specification into an absolute
// window. Keyframes with absolute times resolve immediately; relative and
// composite specifications are retried in passes until a fixpoint is
// reached. A Resolver is stateless across calls and safe for concurrent use.
type Resolver interface {
	// Resolve annotates each valid keyframe with its absolute time window.
	// Malformed keyframes are dropped and reported as validation
	// diagnostics; duplicate IDs and unresolvable references abort the
	// whole batch.
	//
	// Parameters:
	//   - kfs: the keyframe batch, model and camera keyframes together
	//
	// Returns:
	//   - []Resolved: resolved keyframes in input order
	//   - []diagnostics.Diagnostic: per-entry validation events
	//   - error: a DuplicateIDError or UnresolvedTimeError, or nil
	Resolve(kfs []keyframe.Keyframe) ([]Resolved, []diagnostics.Diagnostic, error)

	// MaxPasses returns the configured fixpoint iteration cap.
	//
	// Returns:
	//   - int: the maximum number of resolution passes
	MaxPasses() int
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver with the provided options.
//
// Parameters:
//   - options: variadic list of ResolverBuilderOption functions to apply
//
// Returns:
//   - Resolver: the configured resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolver{
		maxPasses: DefaultMaxPasses,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) MaxPasses() int {
	return r.maxPasses
}

func (r *resolver) Resolve(kfs []keyframe.Keyframe) ([]Resolved, []diagnostics.Diagnostic, error) {
	var diags []diagnostics.Diagnostic

	// Per-entry validation: malformed keyframes are filtered, the batch
	// continues. Structural problems below are batch-fatal.
	valid := make([]keyframe.Keyframe, 0, len(kfs))
	for _, k := range kfs {
		if err := keyframe.Validate(k); err != nil {
			diags = append(diags, diagnostics.Diagnostic{
				Code:       diagnostics.CodeValidation,
				KeyframeID: k.ID,
				Message:    err.Error(),
			})
			continue
		}
		valid = append(valid, k)
	}

	if dup := duplicateIDs(valid); len(dup) > 0 {
		return nil, diags, &diagnostics.DuplicateIDError{IDs: dup}
	}

	// windows holds the resolved window per keyframe ID. Absolute specs
	// seed it; each pass then resolves whatever became reachable.
	windows := make(map[string]Resolved, len(valid))
	pending := make([]keyframe.Keyframe, 0, len(valid))
	for _, k := range valid {
		if abs, ok := k.Time.(keyframe.AbsoluteTime); ok {
			windows[k.ID] = Resolved{Keyframe: k, Start: abs.At, End: abs.At + k.Duration}
			continue
		}
		pending = append(pending, k)
	}

	for pass := 0; pass < r.maxPasses && len(pending) > 0; pass++ {
		progressed := false
		next := pending[:0]
		for _, k := range pending {
			start, ok := resolveStart(k.Time, windows)
			if !ok {
				next = append(next, k)
				continue
			}
			windows[k.ID] = Resolved{Keyframe: k, Start: start, End: start + k.Duration}
			progressed = true
		}
		pending = next
		if !progressed {
			break
		}
	}

	if len(pending) > 0 {
		unresolved := make(map[string][]string, len(pending))
		for _, k := range pending {
			unresolved[k.ID] = unmetParents(k.Time, windows)
		}
		return nil, diags, &diagnostics.UnresolvedTimeError{Unresolved: unresolved}
	}

	// Emit in input order; the keyframes themselves were never mutated.
	out := make([]Resolved, 0, len(valid))
	for _, k := range valid {
		out = append(out, windows[k.ID])
	}
	return out, diags, nil
}

// resolveStart computes the absolute start time for a spec if every anchor it
// references is already resolved.
func resolveStart(spec keyframe.TimeSpec, windows map[string]Resolved) (float64, bool) {
	switch t := spec.(type) {
	case keyframe.AbsoluteTime:
		return t.At, true
	case keyframe.RelativeTime:
		return resolveRef(keyframe.TimeRef{Offset: t.Offset, Side: t.Side, Parent: t.Parent}, windows)
	case keyframe.CompositeTime:
		// Max over all anchors: the last dependency wins.
		var start float64
		for i, ref := range t.Refs {
			anchored, ok := resolveRef(ref, windows)
			if !ok {
				return 0, false
			}
			if i == 0 || anchored > start {
				start = anchored
			}
		}
		return start, true
	}
	return 0, false
}

func resolveRef(ref keyframe.TimeRef, windows map[string]Resolved) (float64, bool) {
	parent, ok := windows[ref.Parent]
	if !ok {
		return 0, false
	}
	if ref.Side == keyframe.AnchorEnd {
		return parent.End + ref.Offset, true
	}
	return parent.Start + ref.Offset, true
}

// unmetParents lists the parent IDs a spec is still waiting on, for
// error reporting.
func unmetParents(spec keyframe.TimeSpec, windows map[string]Resolved) []string {
	var refs []keyframe.TimeRef
	switch t := spec.(type) {
	case keyframe.RelativeTime:
		refs = []keyframe.TimeRef{{Offset: t.Offset, Side: t.Side, Parent: t.Parent}}
	case keyframe.CompositeTime:
		refs = t.Refs
	}

	seen := make(map[string]bool, len(refs))
	var missing []string
	for _, ref := range refs {
		if _, ok := windows[ref.Parent]; ok || seen[ref.Parent] {
			continue
		}
		seen[ref.Parent] = true
		missing = append(missing, ref.Parent)
	}
	sort.Strings(missing)
	return missing
}

// duplicateIDs returns each keyframe ID that appears more than once, sorted.
func duplicateIDs(kfs []keyframe.Keyframe) []string {
	counts := make(map[string]int, len(kfs))
	for _, k := range kfs {
		counts[k.ID]++
	}
	var dup []string
	for id, n := range counts {
		if n > 1 {
			dup = append(dup, id)
		}
	}
	sort.Strings(dup)
	return dup
}

// String renders the resolved window for logs and test failures.
//
// Returns:
//   - string: "id [start, end)"
func (r Resolved) String() string {
	return fmt.Sprintf("%s [%v, %v)", r.Keyframe.ID, r.Start, r.End)
}
