// package profiler measures reconciliation throughput. Batch tooling ticks
// the profiler once per reconciled snapshot; at each update interval the
// profiler aggregates the window into a Stats value, logs it, and starts the
// next window.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Stats is one aggregated measurement window.
type Stats struct {
	// SamplesPerSecond is the snapshot throughput over the window.
	SamplesPerSecond float64

	// TotalSamples is the number of snapshots ticked since construction.
	TotalSamples uint64

	// HeapMB is the live heap size at the end of the window, in MiB.
	HeapMB float64

	// AllocRateMB is the allocation churn over the window, in MiB/s.
	AllocRateMB float64

	// GCCycles is the number of garbage collections during the window.
	GCCycles uint32

	// AvgPauseMicros is the mean GC stop-the-world pause during the
	// window, in microseconds. Zero when GCCycles is zero.
	AvgPauseMicros uint64

	// SysMB is the total memory obtained from the OS, in MiB.
	SysMB float64
}

// String renders the stats in the profiler's log line format.
//
// Returns:
//   - string: the formatted measurement window
func (s Stats) String() string {
	return fmt.Sprintf("snapshots/s: %.2f | total: %d | heap: %.2f MiB | alloc: %.2f MiB/s | gc: %d (avg pause %d µs) | sys: %.2f MiB",
		s.SamplesPerSecond, s.TotalSamples, s.HeapMB, s.AllocRateMB, s.GCCycles, s.AvgPauseMicros, s.SysMB)
}

// Profiler aggregates snapshot throughput and memory statistics over fixed
// update intervals. Not safe for concurrent use; callers ticking from
// multiple goroutines must serialize access.
type Profiler struct {
	updateInterval time.Duration

	windowSamples  uint64
	totalSamples   uint64
	lastFlush      time.Time
	lastStats      Stats
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	lastNumGC      uint32
	lastPauseTotal uint64
}

// NewProfiler creates a Profiler with the provided options. The update
// interval defaults to one second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions to apply
//
// Returns:
//   - *Profiler: the configured profiler
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		lastFlush:      time.Now(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick records one reconciled snapshot. When the update interval has
// elapsed the current window is aggregated, logged, and reset.
//
// Returns:
//   - bool: true if a measurement window was flushed on this tick
func (p *Profiler) Tick() bool {
	p.windowSamples++
	p.totalSamples++

	now := time.Now()
	elapsed := now.Sub(p.lastFlush)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		SamplesPerSecond: float64(p.windowSamples) / elapsed.Seconds(),
		TotalSamples:     p.totalSamples,
		HeapMB:           float64(p.memStats.Alloc) / (1 << 20),
		AllocRateMB:      float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / (1 << 20) / elapsed.Seconds(),
		GCCycles:         p.memStats.NumGC - p.lastNumGC,
		SysMB:            float64(p.memStats.Sys) / (1 << 20),
	}
	if stats.GCCycles > 0 {
		// PauseTotalNs is cumulative, so the window delta over the cycle
		// count gives the mean pause without walking the pause ring.
		stats.AvgPauseMicros = (p.memStats.PauseTotalNs - p.lastPauseTotal) / uint64(stats.GCCycles) / 1000
	}

	log.Printf("[profiler] %s", stats)

	p.windowSamples = 0
	p.lastFlush = now
	p.lastStats = stats
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastNumGC = p.memStats.NumGC
	p.lastPauseTotal = p.memStats.PauseTotalNs
	return true
}

// TotalSamples returns the number of snapshots ticked since construction.
//
// Returns:
//   - uint64: the lifetime tick count
func (p *Profiler) TotalSamples() uint64 {
	return p.totalSamples
}

// LastStats returns the most recently flushed measurement window, or the
// zero Stats if no window has completed yet.
//
// Returns:
//   - Stats: the last flushed window
func (p *Profiler) LastStats() Stats {
	return p.lastStats
}
