package timeline

// ResolverBuilderOption is a functional option for configuring a Resolver
// during construction. Use the With* functions to create options that are
// applied directly to the resolver instance.
type ResolverBuilderOption func(*resolver)

// WithMaxPasses sets the resolution fixpoint iteration cap. The cap bounds
// the supported depth of relative-time dependency chains: a chain of N
// keyframes each anchored to the previous one needs N passes. Values <= 0
// are treated as the default.
//
// Parameters:
//   - passes: the maximum number of resolution passes (default 64)
//
// Returns:
//   - ResolverBuilderOption: option function to apply
func WithMaxPasses(passes int) ResolverBuilderOption {
	return func(r *resolver) {
		if passes <= 0 {
			passes = DefaultMaxPasses
		}
		r.maxPasses = passes
	}
}
