package engine

import (
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

// PipelineBuilderOption is a functional option for configuring a Pipeline
// during compilation. Use the With* functions to create options that are
// applied directly to the pipeline instance.
type PipelineBuilderOption func(*pipeline)

// WithResolver supplies a pre-configured time resolver instead of the
// default one.
//
// Parameters:
//   - r: the resolver to use
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithResolver(r timeline.Resolver) PipelineBuilderOption {
	return func(p *pipeline) {
		p.resolver = r
	}
}

// WithMaxPasses sets the time resolver's fixpoint iteration cap, bounding
// the supported depth of relative-time dependency chains. Shorthand for
// WithResolver(timeline.NewResolver(timeline.WithMaxPasses(passes))).
//
// Parameters:
//   - passes: the maximum number of resolution passes
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithMaxPasses(passes int) PipelineBuilderOption {
	return func(p *pipeline) {
		p.resolver = timeline.NewResolver(timeline.WithMaxPasses(passes))
	}
}
