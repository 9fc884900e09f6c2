package keyframe

import (
	"github.com/google/uuid"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/scene"
)

// KeyframeBuilderOption is a functional option for configuring a Keyframe
// during construction. Use the With* functions to create options that are
// applied directly to the keyframe.
type KeyframeBuilderOption func(*Keyframe)

// NewKeyframe creates a keyframe targeting the given entity and applies the
// provided options. The zero keyframe starts at absolute time 0 with zero
// duration and drives no properties; callers that do not set an ID must do so
// before resolution (or use WithGeneratedID), since ID-less keyframes are
// dropped by validation.
//
// Parameters:
//   - entity: the target entity reference, or CameraEntity
//   - options: variadic list of KeyframeBuilderOption functions to apply
//
// Returns:
//   - Keyframe: the configured keyframe
func NewKeyframe(entity string, options ...KeyframeBuilderOption) Keyframe {
	k := Keyframe{
		Entity: entity,
		Time:   AbsoluteTime{},
	}
	for _, opt := range options {
		opt(&k)
	}
	return k
}

// WithID sets the keyframe's unique ID.
//
// Parameters:
//   - id: the unique keyframe ID
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithID(id string) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.ID = id
	}
}

// WithGeneratedID assigns a random UUID as the keyframe's ID, for callers
// that do not manage keyframe identity themselves. Generated IDs cannot be
// referenced by relative time specs authored ahead of time; use WithID when
// other keyframes need to anchor to this one.
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithGeneratedID() KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.ID = uuid.NewString()
	}
}

// WithTime sets the keyframe's time specification.
//
// Parameters:
//   - spec: the time specification
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithTime(spec TimeSpec) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Time = spec
	}
}

// WithAbsoluteTime starts the keyframe at a fixed time in seconds.
//
// Parameters:
//   - at: the absolute start time in seconds
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithAbsoluteTime(at float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Time = AbsoluteTime{At: at}
	}
}

// WithRelativeTime starts the keyframe relative to another keyframe's window
// edge.
//
// Parameters:
//   - offset: seconds added to the referenced anchor (may be negative)
//   - side: the parent's start or end edge
//   - parent: the referenced keyframe ID
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithRelativeTime(offset float64, side AnchorSide, parent string) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Time = RelativeTime{Offset: offset, Side: side, Parent: parent}
	}
}

// WithCompositeTime starts the keyframe at the latest of several resolved
// anchors (max over all references).
//
// Parameters:
//   - refs: the anchors to consider; all must resolve
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithCompositeTime(refs ...TimeRef) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Time = CompositeTime{Refs: refs}
	}
}

// WithDuration sets the keyframe's window length in seconds.
//
// Parameters:
//   - duration: the window length, finite and >= 0
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithDuration(duration float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Duration = duration
	}
}

// WithOpacity sets the keyframe's target opacity.
//
// Parameters:
//   - opacity: the target opacity
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithOpacity(opacity float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Opacity = &opacity
	}
}

// WithScale sets the keyframe's target scale.
//
// Parameters:
//   - scale: the target scale
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithScale(scale common.Vec3) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Scale = &scale
	}
}

// WithPosition sets the keyframe's position specification.
//
// Parameters:
//   - spec: the position specification
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithPosition(spec PositionSpec) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Position = spec
	}
}

// WithMarker positions the keyframe's entity at a named attachment point on
// another entity, shorthand for WithPosition(MarkerPosition{...}).
//
// Parameters:
//   - m: the resolved marker, typically from a scene.Registry lookup
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithMarker(m scene.Marker) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Position = MarkerPosition{Marker: m}
	}
}

// WithRotation sets the keyframe's rotation specification.
//
// Parameters:
//   - spec: the rotation specification
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithRotation(spec RotationSpec) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Rotation = spec
	}
}

// WithProperty sets a generic named numeric target on the keyframe.
//
// Parameters:
//   - name: the property name
//   - value: the target value
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithProperty(name string, value float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		if k.Properties == nil {
			k.Properties = make(map[string]float64)
		}
		k.Properties[name] = value
	}
}

// WithPan sets the camera pan target. Only meaningful on camera keyframes.
//
// Parameters:
//   - pan: the pan target
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithPan(pan common.Vec3) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Pan = &pan
	}
}

// WithTarget sets the camera look-at target. Only meaningful on camera
// keyframes.
//
// Parameters:
//   - target: the look-at target
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithTarget(target common.Vec3) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Target = &target
	}
}

// WithRotationX sets the camera pitch angle target in radians. Only
// meaningful on camera keyframes.
//
// Parameters:
//   - angle: the pitch angle in radians
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithRotationX(angle float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.RotationX = &angle
	}
}

// WithRotationY sets the camera yaw angle target in radians. Only meaningful
// on camera keyframes.
//
// Parameters:
//   - angle: the yaw angle in radians
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithRotationY(angle float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.RotationY = &angle
	}
}

// WithZoom sets the camera zoom factor target. Only meaningful on camera
// keyframes.
//
// Parameters:
//   - zoom: the zoom factor
//
// Returns:
//   - KeyframeBuilderOption: option function to apply
func WithZoom(zoom float64) KeyframeBuilderOption {
	return func(k *Keyframe) {
		k.Zoom = &zoom
	}
}
