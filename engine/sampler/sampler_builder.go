package sampler

import (
	"github.com/Carmen-Shannon/kinetic-go/engine/profiler"
)

// SamplerBuilderOption is a functional option for configuring a Sampler
// during construction. Use the With* functions to create options that are
// applied directly to the sampler instance.
type SamplerBuilderOption func(*sampler)

// WithWorkers sets the worker pool size. Values <= 0 are treated as the
// default (NumCPU-1, minimum 1).
//
// Parameters:
//   - workers: the number of pool workers
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithWorkers(workers int) SamplerBuilderOption {
	return func(s *sampler) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithProfiling attaches a profiler that logs snapshot throughput and memory
// statistics as batches complete.
//
// Parameters:
//   - options: profiler options, e.g. profiler.WithUpdateInterval
//
// Returns:
//   - SamplerBuilderOption: option function to apply
func WithProfiling(options ...profiler.ProfilerBuilderOption) SamplerBuilderOption {
	return func(s *sampler) {
		s.profiler = profiler.NewProfiler(options...)
	}
}
