// package camera defines the camera pose model reconciled by the animation
// pipeline. The camera timeline is entity-independent: keyframes carry
// absolute pose targets, and the reconciler blends between successive targets
// inside each keyframe's own window.
package camera

import (
	"github.com/Carmen-Shannon/kinetic-go/common"

	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
)

// Pose is the camera's complete reconciled state at a point in time. Poses
// are immutable values: blending and keyframe application return new poses.
type Pose struct {
	// Pan is the camera's pan offset.
	Pan common.Vec3 `json:"pan"`

	// Target is the look-at target.
	Target common.Vec3 `json:"target"`

	// RotationX is the pitch angle in radians.
	RotationX float64 `json:"rotationX"`

	// RotationY is the yaw angle in radians.
	RotationY float64 `json:"rotationY"`

	// Zoom is the zoom factor.
	Zoom float64 `json:"zoom"`
}

// DefaultPose returns the fixed pose reported before the first camera
// keyframe starts: zero pan, zero target, zero angles, unit zoom.
//
// Returns:
//   - Pose: the default camera pose
func DefaultPose() Pose {
	return Pose{Zoom: 1}
}

// Apply returns the pose with the fields the keyframe specifies replaced by
// the keyframe's targets. Unspecified fields carry over, so a camera
// keyframe only drives the properties it names.
//
// Parameters:
//   - k: the camera keyframe whose targets to merge
//
// Returns:
//   - Pose: the merged target pose
func (p Pose) Apply(k keyframe.Keyframe) Pose {
	out := p
	if k.Pan != nil {
		out.Pan = *k.Pan
	}
	if k.Target != nil {
		out.Target = *k.Target
	}
	if k.RotationX != nil {
		out.RotationX = *k.RotationX
	}
	if k.RotationY != nil {
		out.RotationY = *k.RotationY
	}
	if k.Zoom != nil {
		out.Zoom = *k.Zoom
	}
	return out
}

// Blend interpolates from p toward the target pose by t. Pan, target, and
// zoom blend linearly; the pitch and yaw angles blend along the shortest
// angular arc. t = 0 returns p exactly and t = 1 returns target exactly.
//
// Parameters:
//   - target: the pose to blend toward
//   - t: the interpolation factor, clamped to [0, 1]
//
// Returns:
//   - Pose: the blended pose
func (p Pose) Blend(target Pose, t float64) Pose {
	if t <= 0 {
		return p
	}
	if t >= 1 {
		return target
	}
	return Pose{
		Pan:       p.Pan.Lerp(target.Pan, t),
		Target:    p.Target.Lerp(target.Target, t),
		RotationX: common.LerpAngle(p.RotationX, target.RotationX, t),
		RotationY: common.LerpAngle(p.RotationY, target.RotationY, t),
		Zoom:      common.Lerp(p.Zoom, target.Zoom, t),
	}
}
