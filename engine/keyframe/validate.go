package keyframe

import (
	"fmt"

	"github.com/Carmen-Shannon/kinetic-go/common"
)

// Validate checks a single keyframe for local, per-entry problems: missing
// ID, malformed or non-finite time specification, negative or non-finite
// duration, and non-finite property payloads. Batch-level problems
// (duplicate IDs, unresolved references) are the time resolver's concern.
//
// Parameters:
//   - k: the keyframe to check
//
// Returns:
//   - error: a descriptive validation error, or nil if the keyframe is valid
func Validate(k Keyframe) error {
	if k.ID == "" {
		return fmt.Errorf("keyframe has no id")
	}
	if k.Entity == "" {
		return fmt.Errorf("keyframe %q has no entity reference", k.ID)
	}
	if !common.IsFinite(k.Duration) {
		return fmt.Errorf("keyframe %q has non-finite duration", k.ID)
	}
	if k.Duration < 0 {
		return fmt.Errorf("keyframe %q has negative duration %v", k.ID, k.Duration)
	}

	if err := validateTimeSpec(k.Time); err != nil {
		return fmt.Errorf("keyframe %q: %w", k.ID, err)
	}

	if k.Opacity != nil && !common.IsFinite(*k.Opacity) {
		return fmt.Errorf("keyframe %q has non-finite opacity", k.ID)
	}
	if k.Scale != nil && !k.Scale.IsFinite() {
		return fmt.Errorf("keyframe %q has non-finite scale", k.ID)
	}
	for name, value := range k.Properties {
		if !common.IsFinite(value) {
			return fmt.Errorf("keyframe %q has non-finite property %q", k.ID, name)
		}
	}

	if err := validatePositionSpec(k.Position); err != nil {
		return fmt.Errorf("keyframe %q: %w", k.ID, err)
	}
	if err := validateRotationSpec(k.Rotation); err != nil {
		return fmt.Errorf("keyframe %q: %w", k.ID, err)
	}

	if k.Pan != nil && !k.Pan.IsFinite() {
		return fmt.Errorf("keyframe %q has non-finite pan", k.ID)
	}
	if k.Target != nil && !k.Target.IsFinite() {
		return fmt.Errorf("keyframe %q has non-finite target", k.ID)
	}
	if k.RotationX != nil && !common.IsFinite(*k.RotationX) {
		return fmt.Errorf("keyframe %q has non-finite rotationX", k.ID)
	}
	if k.RotationY != nil && !common.IsFinite(*k.RotationY) {
		return fmt.Errorf("keyframe %q has non-finite rotationY", k.ID)
	}
	if k.Zoom != nil && !common.IsFinite(*k.Zoom) {
		return fmt.Errorf("keyframe %q has non-finite zoom", k.ID)
	}

	return nil
}

func validateTimeSpec(spec TimeSpec) error {
	switch t := spec.(type) {
	case AbsoluteTime:
		if !common.IsFinite(t.At) {
			return fmt.Errorf("absolute time is non-finite")
		}
	case RelativeTime:
		return validateTimeRef(TimeRef{Offset: t.Offset, Side: t.Side, Parent: t.Parent})
	case CompositeTime:
		if len(t.Refs) == 0 {
			return fmt.Errorf("composite time has no references")
		}
		for i, ref := range t.Refs {
			if err := validateTimeRef(ref); err != nil {
				return fmt.Errorf("composite time ref %d: %w", i, err)
			}
		}
	case nil:
		return fmt.Errorf("time spec is missing")
	default:
		return fmt.Errorf("unknown time spec %T", spec)
	}
	return nil
}

func validateTimeRef(ref TimeRef) error {
	if ref.Parent == "" {
		return fmt.Errorf("relative time has no parent reference")
	}
	if ref.Side != AnchorStart && ref.Side != AnchorEnd {
		return fmt.Errorf("relative time has unknown anchor side %q", ref.Side)
	}
	if !common.IsFinite(ref.Offset) {
		return fmt.Errorf("relative time offset is non-finite")
	}
	return nil
}

func validatePositionSpec(spec PositionSpec) error {
	switch p := spec.(type) {
	case AbsolutePosition:
		if !p.Value.IsFinite() {
			return fmt.Errorf("absolute position is non-finite")
		}
	case RelativePosition:
		if !p.Delta.IsFinite() {
			return fmt.Errorf("relative position delta is non-finite")
		}
	case MarkerPosition:
		if p.Marker.Parent == "" {
			return fmt.Errorf("marker position has no parent entity")
		}
		if !p.Marker.LocalPosition.IsFinite() || !p.Marker.LocalRotation.IsFinite() {
			return fmt.Errorf("marker %q has non-finite local transform", p.Marker.Name)
		}
	case nil:
		// Position is optional.
	default:
		return fmt.Errorf("unknown position spec %T", spec)
	}
	return nil
}

func validateRotationSpec(spec RotationSpec) error {
	switch r := spec.(type) {
	case AbsoluteRotation:
		if !r.Value.IsFinite() {
			return fmt.Errorf("absolute rotation is non-finite")
		}
	case RelativeRotation:
		if !r.Delta.IsFinite() {
			return fmt.Errorf("relative rotation delta is non-finite")
		}
	case WorldRotation:
		if !r.Value.IsFinite() {
			return fmt.Errorf("world-space rotation is non-finite")
		}
	case nil:
		// Rotation is optional.
	default:
		return fmt.Errorf("unknown rotation spec %T", spec)
	}
	return nil
}
