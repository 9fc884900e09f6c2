// package sampler reconciles many time samples of a compiled pipeline in
// parallel. Reconciliations are independent pure computations, so the only
// coordination needed is a per-batch barrier over a bounded worker pool.
package sampler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/kinetic-go/engine"
	"github.com/Carmen-Shannon/kinetic-go/engine/profiler"
	"github.com/Carmen-Shannon/kinetic-go/engine/reconciler"
)

// sampler is the implementation of the Sampler interface.
type sampler struct {
	mu *sync.Mutex

	pool     worker.DynamicWorkerPool
	workers  int // stored so we can log/inspect the configured count
	profiler *profiler.Profiler
}

// Sampler evaluates a compiled Pipeline at many query times concurrently,
// e.g. to bake a timeline into per-frame snapshots for export. Workers are
// reused across batches. Thread-safe: batches from multiple goroutines
// share the pool.
type Sampler interface {
	// SampleRange reconciles the pipeline at every query time and returns
	// the snapshots in the same order as the input times. The first
	// reconciliation error aborts the batch.
	//
	// Parameters:
	//   - p: the compiled pipeline to sample
	//   - times: the query times in seconds
	//
	// Returns:
	//   - []*reconciler.AnimationSnapshot: one snapshot per query time
	//   - error: the first reconciliation error encountered, or nil
	SampleRange(p engine.Pipeline, times []float64) ([]*reconciler.AnimationSnapshot, error)

	// SampleSteps reconciles the pipeline at evenly spaced times from
	// start (inclusive) across count steps of the given size.
	//
	// Parameters:
	//   - p: the compiled pipeline to sample
	//   - start: the first query time in seconds
	//   - step: the spacing between query times in seconds
	//   - count: the number of samples
	//
	// Returns:
	//   - []*reconciler.AnimationSnapshot: one snapshot per step
	//   - error: the first reconciliation error encountered, or nil
	SampleSteps(p engine.Pipeline, start, step float64, count int) ([]*reconciler.AnimationSnapshot, error)

	// Workers returns the configured worker count.
	//
	// Returns:
	//   - int: the number of pool workers
	Workers() int
}

var _ Sampler = &sampler{}

// NewSampler creates a Sampler with the provided options. The worker count
// defaults to NumCPU-1 (minimum 1), leaving a core for the caller.
//
// Parameters:
//   - options: variadic list of SamplerBuilderOption functions to apply
//
// Returns:
//   - Sampler: the configured sampler
func NewSampler(options ...SamplerBuilderOption) Sampler {
	s := &sampler{
		mu:      &sync.Mutex{},
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(s)
	}
	// Queue size of 256 accommodates typical batch sizes with headroom;
	// larger batches block on submit until workers drain the queue.
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *sampler) Workers() int {
	return s.workers
}

func (s *sampler) SampleRange(p engine.Pipeline, times []float64) ([]*reconciler.AnimationSnapshot, error) {
	snapshots := make([]*reconciler.AnimationSnapshot, len(times))
	errs := make([]error, len(times))

	// Per-batch barrier: pool workers persist across batches, so a
	// WaitGroup tracks completion rather than pool idle-exit.
	var wg sync.WaitGroup
	for i, t := range times {
		wg.Add(1)
		idx, queryTime := i, t
		s.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				snapshots[idx], errs[idx] = p.Snapshot(queryTime)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	if s.profiler != nil {
		s.mu.Lock()
		for range times {
			s.profiler.Tick()
		}
		s.mu.Unlock()
	}

	return snapshots, nil
}

func (s *sampler) SampleSteps(p engine.Pipeline, start, step float64, count int) ([]*reconciler.AnimationSnapshot, error) {
	times := make([]float64, count)
	for i := range times {
		times[i] = start + float64(i)*step
	}
	return s.SampleRange(p, times)
}
