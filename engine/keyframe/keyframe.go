// package keyframe defines the declarative animation instructions consumed by
// the reconciliation pipeline. A keyframe is plain data: the pipeline reads
// keyframes but never mutates them, so one batch can back any number of
// concurrent reconciliations.
package keyframe

import (
	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/scene"
)

// CameraEntity is the reserved entity reference that routes a keyframe to the
// camera timeline instead of a model entity track.
const CameraEntity = "camera"

// AnchorSide selects which edge of a parent keyframe's window a relative time
// specification anchors to.
type AnchorSide string

const (
	// AnchorStart anchors to the parent keyframe's start time.
	AnchorStart AnchorSide = "start"

	// AnchorEnd anchors to the parent keyframe's end time.
	AnchorEnd AnchorSide = "end"
)

// TimeSpec describes when a keyframe starts. It is a closed sum type: the
// only implementations are AbsoluteTime, RelativeTime, and CompositeTime, so
// a type switch over TimeSpec with those three cases is exhaustive.
type TimeSpec interface {
	isTimeSpec()
}

// AbsoluteTime starts the keyframe at a fixed time in seconds.
type AbsoluteTime struct {
	// At is the absolute start time in seconds.
	At float64 `json:"at"`
}

func (AbsoluteTime) isTimeSpec() {}

// TimeRef is a single reference to another keyframe's window edge plus an
// offset, used by RelativeTime and CompositeTime.
type TimeRef struct {
	// Offset is added to the referenced anchor, in seconds. May be negative.
	Offset float64 `json:"offset"`

	// Side selects the parent's start or end edge.
	Side AnchorSide `json:"side"`

	// Parent is the ID of the referenced keyframe. It must resolve to a
	// keyframe in the same batch; unresolved references abort resolution.
	Parent string `json:"parent"`
}

// RelativeTime starts the keyframe relative to one edge of another
// keyframe's resolved window.
type RelativeTime struct {
	// Offset is added to the referenced anchor, in seconds. May be negative.
	Offset float64 `json:"offset"`

	// Side selects the parent's start or end edge.
	Side AnchorSide `json:"side"`

	// Parent is the ID of the referenced keyframe.
	Parent string `json:"parent"`
}

func (RelativeTime) isTimeSpec() {}

// CompositeTime starts the keyframe at the latest of several resolved
// anchors: the start time is the max over all references, so the last
// dependency to finish wins.
type CompositeTime struct {
	// Refs are the anchors considered; all of them must resolve.
	Refs []TimeRef `json:"refs"`
}

func (CompositeTime) isTimeSpec() {}

// PositionSpec describes how a keyframe's target position is computed from
// the entity's accumulated state. Closed sum type over AbsolutePosition,
// RelativePosition, and MarkerPosition.
type PositionSpec interface {
	isPositionSpec()
}

// AbsolutePosition targets a fixed world-space position.
type AbsolutePosition struct {
	// Value is the world-space target position.
	Value common.Vec3 `json:"value"`
}

func (AbsolutePosition) isPositionSpec() {}

// RelativePosition targets the entity's current position displaced by Delta.
type RelativePosition struct {
	// Delta is the world-space displacement from the accumulated position.
	Delta common.Vec3 `json:"delta"`
}

func (RelativePosition) isPositionSpec() {}

// MarkerPosition targets a named attachment point on another entity. The
// target world position is the parent's reconciled position plus the
// marker's local offset rotated by the parent's cumulative rotation, so
// marker-attached entities track their parent through query time. The
// dependency sorter guarantees the parent's state is computed first.
type MarkerPosition struct {
	// Marker is the resolved attachment point, including the Parent entity
	// back-reference used for dependency ordering.
	Marker scene.Marker `json:"marker"`
}

func (MarkerPosition) isPositionSpec() {}

// RotationSpec describes how a keyframe's target rotation is computed from
// the entity's accumulated state. Closed sum type over AbsoluteRotation,
// RelativeRotation, and WorldRotation.
type RotationSpec interface {
	isRotationSpec()
}

// AbsoluteRotation targets a fixed orientation.
type AbsoluteRotation struct {
	// Value is the target orientation.
	Value common.Quaternion `json:"value"`
}

func (AbsoluteRotation) isRotationSpec() {}

// RelativeRotation composes Delta onto the entity's current rotation in
// local space (current ∘ delta), rotating about the entity's own axes.
type RelativeRotation struct {
	// Delta is the additional local-space rotation.
	Delta common.Quaternion `json:"delta"`
}

func (RelativeRotation) isRotationSpec() {}

// WorldRotation pre-multiplies Value onto the entity's current rotation
// (value ∘ current), rotating about the world axes rather than the entity's
// local axes.
type WorldRotation struct {
	// Value is the additional world-space rotation.
	Value common.Quaternion `json:"value"`
}

func (WorldRotation) isRotationSpec() {}

// Keyframe is a single timed animation instruction targeting one entity or
// the camera. All property fields are optional; a keyframe only drives the
// properties it specifies. Keyframes are created by ingestion and consumed
// read-only by the rest of the pipeline.
type Keyframe struct {
	// ID uniquely identifies the keyframe within a batch. Required.
	ID string `json:"id"`

	// Entity is the target entity reference, or CameraEntity for the
	// camera timeline.
	Entity string `json:"entity"`

	// Time specifies when the keyframe's window starts.
	Time TimeSpec `json:"-"`

	// Duration is the window length in seconds. Must be finite and >= 0.
	Duration float64 `json:"duration"`

	// Opacity is the target opacity, interpolated linearly from the
	// entity's accumulated value.
	Opacity *float64 `json:"opacity,omitempty"`

	// Scale is the target scale, interpolated linearly per component.
	Scale *common.Vec3 `json:"scale,omitempty"`

	// Position drives the entity's position for this window.
	Position PositionSpec `json:"-"`

	// Rotation drives the entity's rotation for this window.
	Rotation RotationSpec `json:"-"`

	// Properties are generic named numeric targets, interpolated linearly
	// from the entity's accumulated values (default 0).
	Properties map[string]float64 `json:"properties,omitempty"`

	// Pan is the camera pan target. Camera keyframes only.
	Pan *common.Vec3 `json:"pan,omitempty"`

	// Target is the camera look-at target. Camera keyframes only.
	Target *common.Vec3 `json:"target,omitempty"`

	// RotationX is the camera pitch angle target in radians. Camera
	// keyframes only.
	RotationX *float64 `json:"rotationX,omitempty"`

	// RotationY is the camera yaw angle target in radians. Camera
	// keyframes only.
	RotationY *float64 `json:"rotationY,omitempty"`

	// Zoom is the camera zoom factor target. Camera keyframes only.
	Zoom *float64 `json:"zoom,omitempty"`
}

// IsCamera reports whether the keyframe targets the camera timeline.
//
// Returns:
//   - bool: true if Entity is CameraEntity
func (k Keyframe) IsCamera() bool {
	return k.Entity == CameraEntity
}
