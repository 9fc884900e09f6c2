// package engine is the entry point for the animation reconciliation
// pipeline. A Pipeline compiles a keyframe batch once — resolving time
// dependencies, normalizing windows, and dependency-ordering entities — and
// then answers any number of snapshot queries against the compiled plan.
package engine

import (
	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
	"github.com/Carmen-Shannon/kinetic-go/engine/reconciler"
	"github.com/Carmen-Shannon/kinetic-go/engine/sorter"
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	resolver timeline.Resolver
	plan     *sorter.Plan
	diags    []diagnostics.Diagnostic
}

// Pipeline is a compiled animation scene: keyframes with resolved absolute
// time windows, grouped by entity and ordered so marker parents reconcile
// before their children. Compilation happens once in NewPipeline; Snapshot
// is a pure query and is safe to call concurrently.
type Pipeline interface {
	// Snapshot reconciles the full scene state at the query time.
	//
	// Parameters:
	//   - queryTime: the time to reconcile at, in seconds
	//
	// Returns:
	//   - *reconciler.AnimationSnapshot: the interpolated scene state
	//   - error: error if reconciliation fails (missing parent state,
	//     non-finite query time)
	Snapshot(queryTime float64) (*reconciler.AnimationSnapshot, error)

	// Diagnostics returns the non-fatal events accumulated while compiling
	// the batch: dropped keyframes and corrected time windows. The slice
	// is a copy; callers may retain it.
	//
	// Returns:
	//   - []diagnostics.Diagnostic: the accumulated warnings
	Diagnostics() []diagnostics.Diagnostic

	// Plan returns the compiled reconciliation plan. The plan is read-only;
	// it is exposed so batch tooling (e.g. the sampler) can reconcile
	// against it directly.
	//
	// Returns:
	//   - *sorter.Plan: the compiled plan
	Plan() *sorter.Plan
}

var _ Pipeline = &pipeline{}

// NewPipeline compiles a keyframe batch into a queryable Pipeline. Model and
// camera keyframes are passed together, since relative time references may
// cross between the two timelines. Malformed keyframes are dropped and
// surface in Diagnostics; duplicate IDs, unresolvable time references, and
// circular marker dependencies abort compilation with a structured error.
//
// Parameters:
//   - kfs: the keyframe batch
//   - options: variadic list of PipelineBuilderOption functions to apply
//
// Returns:
//   - Pipeline: the compiled pipeline
//   - error: a structured compilation error, or nil
func NewPipeline(kfs []keyframe.Keyframe, options ...PipelineBuilderOption) (Pipeline, error) {
	p := &pipeline{}
	for _, opt := range options {
		opt(p)
	}
	if p.resolver == nil {
		p.resolver = timeline.NewResolver()
	}

	resolved, diags, err := p.resolver.Resolve(kfs)
	if err != nil {
		return nil, err
	}

	extended, extendDiags := timeline.Extend(resolved)
	diags = append(diags, extendDiags...)

	plan, err := sorter.Sort(extended)
	if err != nil {
		return nil, err
	}

	p.plan = plan
	p.diags = diags
	return p, nil
}

func (p *pipeline) Snapshot(queryTime float64) (*reconciler.AnimationSnapshot, error) {
	return reconciler.Reconcile(p.plan, queryTime)
}

func (p *pipeline) Diagnostics() []diagnostics.Diagnostic {
	out := make([]diagnostics.Diagnostic, len(p.diags))
	copy(out, p.diags)
	return out
}

func (p *pipeline) Plan() *sorter.Plan {
	return p.plan
}
