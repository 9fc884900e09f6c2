// package sorter orders time-resolved keyframes for reconciliation. Camera
// keyframes are sorted purely by start time; entity keyframes are grouped
// into per-entity tracks and the tracks are topologically ordered so that any
// entity positioned via a marker reference is reconciled strictly after its
// parent entity.
package sorter

import (
	"sort"

	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

// Track is one entity's keyframe sequence, ordered by resolved start time
// with input order breaking ties.
type Track struct {
	// Entity is the track's target entity reference.
	Entity string

	// Keyframes are the entity's resolved keyframes in replay order.
	Keyframes []timeline.Resolved
}

// Plan is the reconciler's input: entity tracks in dependency order plus the
// camera timeline. A Plan is read-only after Sort and can back any number of
// concurrent reconciliations.
type Plan struct {
	// Tracks are the per-entity keyframe sequences; every marker-referenced
	// parent track precedes all of its children.
	Tracks []Track

	// Camera is the camera timeline, ordered by start time.
	Camera []timeline.Resolved
}

// Sort partitions resolved keyframes by target entity and orders the
// resulting tracks so marker parents always precede their children. A
// circular marker dependency aborts with a CycleError carrying a readable
// cycle witness.
//
// Parameters:
//   - resolved: time-resolved, extended keyframes in input order
//
// Returns:
//   - *Plan: the ordered reconciliation plan
//   - error: a CycleError or UnresolvedEntityError, or nil
func Sort(resolved []timeline.Resolved) (*Plan, error) {
	plan := &Plan{}

	// Partition camera vs entity keyframes, preserving input order so the
	// stable sorts below can use it as the tiebreak.
	tracks := make(map[string][]timeline.Resolved)
	var entityOrder []string
	for _, r := range resolved {
		if r.Keyframe.IsCamera() {
			plan.Camera = append(plan.Camera, r)
			continue
		}
		if _, ok := tracks[r.Keyframe.Entity]; !ok {
			entityOrder = append(entityOrder, r.Keyframe.Entity)
		}
		tracks[r.Keyframe.Entity] = append(tracks[r.Keyframe.Entity], r)
	}

	sort.SliceStable(plan.Camera, func(i, j int) bool {
		return plan.Camera[i].Start < plan.Camera[j].Start
	})
	for _, kfs := range tracks {
		sort.SliceStable(kfs, func(i, j int) bool {
			return kfs[i].Start < kfs[j].Start
		})
	}

	// Build the child -> parents marker dependency graph. Only parents that
	// have keyframes of their own constrain the ordering; a parent absent
	// from the batch is reported by the reconciler as missing state.
	parents := make(map[string][]string, len(entityOrder))
	for entity, kfs := range tracks {
		seen := make(map[string]bool)
		for _, r := range kfs {
			mp, ok := r.Keyframe.Position.(keyframe.MarkerPosition)
			if !ok {
				continue
			}
			parent := mp.Marker.Parent
			if parent == entity || seen[parent] {
				continue
			}
			seen[parent] = true
			if _, inBatch := tracks[parent]; inBatch {
				parents[entity] = append(parents[entity], parent)
			}
		}
		sort.Strings(parents[entity])
	}

	// Repeated-pass fixpoint: emit an entity once all of its parents have
	// been emitted. A stalled pass means a cycle or an unresolvable rest.
	emitted := make(map[string]bool, len(entityOrder))
	remaining := entityOrder
	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, entity := range remaining {
			ready := true
			for _, parent := range parents[entity] {
				if !emitted[parent] {
					ready = false
					break
				}
			}
			if !ready {
				next = append(next, entity)
				continue
			}
			emitted[entity] = true
			plan.Tracks = append(plan.Tracks, Track{Entity: entity, Keyframes: tracks[entity]})
			progressed = true
		}
		remaining = next

		if !progressed {
			if cycle := findCycle(remaining, parents); len(cycle) > 0 {
				return nil, &diagnostics.CycleError{Path: cycle}
			}
			stuck := make(map[string][]string, len(remaining))
			for _, entity := range remaining {
				var unmet []string
				for _, parent := range parents[entity] {
					if !emitted[parent] {
						unmet = append(unmet, parent)
					}
				}
				stuck[entity] = unmet
			}
			return nil, &diagnostics.UnresolvedEntityError{Remaining: stuck}
		}
	}

	return plan, nil
}

// findCycle runs a deterministic DFS over the child -> parent graph and
// extracts a single stable cycle witness, first entity repeated at the end.
func findCycle(entities []string, parents map[string][]string) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	sorted := make([]string, len(entities))
	copy(sorted, entities)
	sort.Strings(sorted)

	color := make(map[string]int, len(sorted))
	parent := make(map[string]string, len(sorted))

	var cycle []string

	var dfs func(u string) bool
	dfs = func(u string) bool {
		color[u] = gray
		for _, v := range parents[u] { // already sorted
			switch color[v] {
			case white:
				parent[v] = u
				if dfs(v) {
					return true
				}
			case gray:
				// Back-edge u -> v: reconstruct the cycle v ... u -> v.
				cycle = append(cycle, v)
				for cur := u; cur != v; cur = parent[cur] {
					cycle = append(cycle, cur)
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for _, entity := range sorted {
		if color[entity] != white {
			continue
		}
		if dfs(entity) {
			break
		}
	}

	if len(cycle) == 0 {
		return nil
	}

	// The walk was reconstructed backwards; reverse it into forward order.
	out := make([]string, len(cycle))
	for i := range cycle {
		out[i] = cycle[len(cycle)-1-i]
	}
	return out
}
