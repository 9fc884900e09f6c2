// package reconciler computes the interpolated visual state of every entity
// and the camera at an arbitrary query time. Reconciliation is a pure
// function of an ordered plan and a time: per-entity state maps are built
// fresh on every call and never retained, so concurrent reconciliations over
// the same plan are independent.
package reconciler

import (
	"fmt"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/camera"
	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
	"github.com/Carmen-Shannon/kinetic-go/engine/sorter"
)

// instantEpsilon is the window length below which a keyframe is treated as
// instantaneous: its progression snaps to 1 once the query time reaches the
// window start, avoiding division blow-up in the progression quotient.
const instantEpsilon = 1e-9

// EntityState is one entity's reconciled visual state. States are created
// lazily with defaults (opacity 0, identity transform, unit scale), mutated
// once per keyframe during a single reconciliation pass, and discarded with
// the snapshot.
type EntityState struct {
	// Opacity is the reconciled opacity. Not hard-clamped to [0, 1].
	Opacity float64 `json:"opacity"`

	// Position is the reconciled world-space position.
	Position common.Vec3 `json:"position"`

	// Rotation is the reconciled visual orientation.
	Rotation common.Quaternion `json:"rotation"`

	// CumulativeRotation tracks settled orientation for marker math only.
	// It follows Rotation's compose rules but world-space updates land
	// discontinuously: the value jumps to the target once a keyframe
	// completes instead of blending, so markers reflect only settled
	// orientation.
	CumulativeRotation common.Quaternion `json:"cumulativeRotation"`

	// Scale is the reconciled per-axis scale.
	Scale common.Vec3 `json:"scale"`

	// Properties holds reconciled generic named numeric values. Nil until
	// a keyframe drives one.
	Properties map[string]float64 `json:"properties,omitempty"`
}

// AnimationSnapshot is the output of a single reconciliation call: the full
// interpolated state of the scene at one query time. The snapshot is plain
// data owned by the caller; the pipeline holds no reference to it.
type AnimationSnapshot struct {
	// Entities maps entity ID to its reconciled state.
	Entities map[string]EntityState `json:"entities"`

	// Camera is the reconciled camera pose.
	Camera camera.Pose `json:"camera"`
}

// defaultEntityState returns the lazily-created initial state for an entity:
// invisible, untransformed, unit scale.
func defaultEntityState() EntityState {
	return EntityState{
		Rotation:           common.IdentityQuaternion(),
		CumulativeRotation: common.IdentityQuaternion(),
		Scale:              common.UnitScale(),
	}
}

// Reconcile replays every entity's ordered keyframes up to the query time and
// reconciles the camera timeline, producing a complete snapshot. It is a
// pure function of its inputs: reconciling twice at the same time over the
// same plan yields identical snapshots.
//
// Parameters:
//   - plan: the dependency-ordered reconciliation plan
//   - queryTime: the time to reconcile at, in seconds
//
// Returns:
//   - *AnimationSnapshot: the interpolated scene state
//   - error: a MissingParentStateError for marker references to entities
//     with no computed state, or an error for a non-finite query time
func Reconcile(plan *sorter.Plan, queryTime float64) (*AnimationSnapshot, error) {
	if !common.IsFinite(queryTime) {
		return nil, fmt.Errorf("reconcile: non-finite query time %v", queryTime)
	}

	snapshot := &AnimationSnapshot{
		Entities: make(map[string]EntityState, len(plan.Tracks)),
		Camera:   reconcileCamera(plan.Camera, queryTime),
	}

	// Tracks arrive in dependency order, so by the time a marker-positioned
	// keyframe replays, its parent's state is already in the map.
	for _, track := range plan.Tracks {
		state := defaultEntityState()
		for _, r := range track.Keyframes {
			next, err := applyKeyframe(state, r.Keyframe, track.Entity, progression(queryTime, r.Start, r.End), snapshot.Entities)
			if err != nil {
				return nil, err
			}
			state = next
		}
		snapshot.Entities[track.Entity] = state
	}

	return snapshot, nil
}

// progression is the normalized [0, 1] position of the query time within a
// resolved window. Windows shorter than instantEpsilon snap to 1 once the
// query time reaches the start.
func progression(queryTime, start, end float64) float64 {
	if end-start < instantEpsilon {
		if queryTime < start {
			return 0
		}
		return 1
	}
	return common.Clamp01((queryTime - start) / (end - start))
}

// applyKeyframe advances an entity's accumulated state through one keyframe
// at the given progression. Each interpolation starts from wherever the
// previous keyframe left the state, so successive keyframes chain instead of
// restarting from a fixed origin.
func applyKeyframe(state EntityState, k keyframe.Keyframe, entity string, p float64, computed map[string]EntityState) (EntityState, error) {
	if k.Opacity != nil {
		state.Opacity = common.Lerp(state.Opacity, *k.Opacity, p)
	}
	if k.Scale != nil {
		state.Scale = state.Scale.Lerp(*k.Scale, p)
	}
	if len(k.Properties) > 0 {
		if state.Properties == nil {
			state.Properties = make(map[string]float64, len(k.Properties))
		}
		for name, target := range k.Properties {
			state.Properties[name] = common.Lerp(state.Properties[name], target, p)
		}
	}

	switch r := k.Rotation.(type) {
	case keyframe.AbsoluteRotation:
		state.Rotation = state.Rotation.Slerp(r.Value, p)
		state.CumulativeRotation = state.CumulativeRotation.Slerp(r.Value, p)
	case keyframe.RelativeRotation:
		// Compose in local space: the delta rotates about the entity's own axes.
		state.Rotation = state.Rotation.Slerp(state.Rotation.Mul(r.Delta), p)
		state.CumulativeRotation = state.CumulativeRotation.Slerp(state.CumulativeRotation.Mul(r.Delta), p)
	case keyframe.WorldRotation:
		// Pre-multiply: the rotation is about world axes. The visual
		// rotation blends smoothly; the cumulative rotation jumps to the
		// target only once the keyframe completes, so in-flight world-space
		// spins never leak into marker math.
		state.Rotation = state.Rotation.Slerp(r.Value.Mul(state.Rotation), p)
		if p >= 1 {
			state.CumulativeRotation = r.Value.Mul(state.CumulativeRotation)
		}
	}

	switch pos := k.Position.(type) {
	case keyframe.AbsolutePosition:
		state.Position = state.Position.Lerp(pos.Value, p)
	case keyframe.RelativePosition:
		state.Position = state.Position.Lerp(state.Position.Add(pos.Delta), p)
	case keyframe.MarkerPosition:
		parent, ok := computed[pos.Marker.Parent]
		if !ok {
			return state, &diagnostics.MissingParentStateError{Entity: entity, Parent: pos.Marker.Parent}
		}

		offset := parent.CumulativeRotation.Rotate(pos.Marker.LocalPosition)
		state.Position = state.Position.Lerp(parent.Position.Add(offset), p)

		rotTarget := parent.CumulativeRotation.Mul(pos.Marker.LocalRotation)
		state.Rotation = state.Rotation.Slerp(rotTarget, p)
		state.CumulativeRotation = state.CumulativeRotation.Slerp(rotTarget, p)

		// Hiding a parent hides everything attached to its markers. Like
		// the other marker effects, the clamp only applies once the
		// keyframe's window has started.
		if p > 0 && state.Opacity > parent.Opacity {
			state.Opacity = parent.Opacity
		}
	}

	return state, nil
}
