package profiler

import "time"

// ProfilerBuilderOption is a functional option for configuring a Profiler
// during construction. Use the With* functions to create options that are
// applied directly to the profiler instance.
type ProfilerBuilderOption func(*Profiler)

// WithUpdateInterval sets how often the profiler aggregates and logs a
// measurement window. Values <= 0 are treated as the default (one second).
//
// Parameters:
//   - interval: the window length
//
// Returns:
//   - ProfilerBuilderOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}
