package profiler

import (
	"strings"
	"testing"
	"time"
)

func TestTickHoldsUntilIntervalElapses(t *testing.T) {
	p := NewProfiler() // default one-second window

	for i := 0; i < 100; i++ {
		if p.Tick() {
			t.Fatalf("tick %d flushed before the update interval elapsed", i)
		}
	}
	if got := p.TotalSamples(); got != 100 {
		t.Fatalf("TotalSamples = %d, want 100", got)
	}
	if p.LastStats() != (Stats{}) {
		t.Fatalf("LastStats = %+v before any flush, want zero", p.LastStats())
	}
}

func TestTickFlushesAfterInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Nanosecond))

	for i := 0; i < 9; i++ {
		p.Tick()
	}
	time.Sleep(time.Millisecond)
	if !p.Tick() {
		t.Fatal("tick did not flush after the update interval elapsed")
	}

	stats := p.LastStats()
	if stats.TotalSamples != 10 {
		t.Fatalf("TotalSamples = %d, want 10", stats.TotalSamples)
	}
	if stats.SamplesPerSecond <= 0 {
		t.Fatalf("SamplesPerSecond = %v, want > 0", stats.SamplesPerSecond)
	}
	if stats.SysMB <= 0 {
		t.Fatalf("SysMB = %v, want > 0", stats.SysMB)
	}
}

func TestTickResetsWindow(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(time.Nanosecond))

	time.Sleep(time.Millisecond)
	if !p.Tick() {
		t.Fatal("first window did not flush")
	}
	first := p.LastStats()

	time.Sleep(time.Millisecond)
	if !p.Tick() {
		t.Fatal("second window did not flush")
	}
	second := p.LastStats()

	if second.TotalSamples != first.TotalSamples+1 {
		t.Fatalf("TotalSamples advanced %d -> %d, want +1 across windows", first.TotalSamples, second.TotalSamples)
	}
}

func TestWithUpdateIntervalRejectsNonPositive(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0))
	if p.updateInterval != time.Second {
		t.Fatalf("updateInterval = %v after WithUpdateInterval(0), want default", p.updateInterval)
	}
	p = NewProfiler(WithUpdateInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Fatalf("updateInterval = %v after negative option, want default", p.updateInterval)
	}
}

func TestStatsString(t *testing.T) {
	s := Stats{SamplesPerSecond: 120.5, TotalSamples: 241, HeapMB: 3.25, GCCycles: 2, AvgPauseMicros: 85, SysMB: 12}
	out := s.String()
	for _, want := range []string{"120.50", "241", "3.25", "85"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Stats.String() = %q, missing %q", out, want)
		}
	}
}
