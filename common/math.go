package common

import (
	"math"
)

// slerpDotThreshold is the quaternion dot product above which Slerp falls back
// to normalized linear interpolation. Near-parallel quaternions make the
// spherical formula numerically unstable (sin of a tiny angle in the divisor).
const slerpDotThreshold = 0.9995

// Vec3 is an immutable three-component vector. All operations return a new
// value rather than mutating the receiver, so vectors can be freely shared
// between keyframes and reconciled states without aliasing.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
//
// Parameters:
//   - o: the vector to add
//
// Returns:
//   - Vec3: v + o
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
//
// Parameters:
//   - o: the vector to subtract
//
// Returns:
//   - Vec3: v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled uniformly by s.
//
// Parameters:
//   - s: the scalar multiplier
//
// Returns:
//   - Vec3: v * s
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
//
// Parameters:
//   - o: the other vector
//
// Returns:
//   - float64: v · o
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the Euclidean length of v.
//
// Returns:
//   - float64: |v|
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Lerp linearly interpolates from v toward o by t.
// t = 0 returns v exactly, t = 1 returns o exactly.
//
// Parameters:
//   - o: the target vector
//   - t: the interpolation factor
//
// Returns:
//   - Vec3: the interpolated vector
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	if t <= 0 {
		return v
	}
	if t >= 1 {
		return o
	}
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// IsFinite reports whether every component of v is a finite number.
//
// Returns:
//   - bool: true if no component is NaN or ±Inf
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// UnitScale returns the identity scale vector (1, 1, 1).
//
// Returns:
//   - Vec3: the unit scale
func UnitScale() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

// Quaternion is an immutable rotation quaternion with the scalar part in W.
// Like Vec3, every operation returns a new value; the zero value is not a
// valid rotation — use IdentityQuaternion for the no-rotation default.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// IdentityQuaternion returns the identity rotation.
//
// Returns:
//   - Quaternion: the identity quaternion (0, 0, 0, 1)
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

// Mul composes q with o using Hamilton product order: the result applies o
// first, then q.
//
// Parameters:
//   - o: the quaternion to compose with
//
// Returns:
//   - Quaternion: q ∘ o
func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Dot returns the four-component dot product of q and o.
//
// Parameters:
//   - o: the other quaternion
//
// Returns:
//   - float64: q · o
func (q Quaternion) Dot(o Quaternion) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalize returns q scaled to unit length. A degenerate (near-zero)
// quaternion normalizes to the identity rather than propagating NaNs.
//
// Returns:
//   - Quaternion: the unit-length quaternion
func (q Quaternion) Normalize() Quaternion {
	lenSq := q.Dot(q)
	if lenSq < 1e-18 {
		return IdentityQuaternion()
	}
	inv := 1.0 / math.Sqrt(lenSq)
	return Quaternion{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Negate returns the quaternion with all components negated. It represents
// the same rotation as q; Slerp uses it to pick the shortest arc.
//
// Returns:
//   - Quaternion: -q
func (q Quaternion) Negate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

// Rotate applies the rotation q to the vector v.
// Uses the optimized form v + 2w(u×v) + 2(u×(u×v)) where u is the vector
// part of q, equivalent to q*v*q⁻¹ for unit quaternions.
//
// Parameters:
//   - v: the vector to rotate
//
// Returns:
//   - Vec3: the rotated vector
func (q Quaternion) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := Vec3{
		X: u.Y*v.Z - u.Z*v.Y,
		Y: u.Z*v.X - u.X*v.Z,
		Z: u.X*v.Y - u.Y*v.X,
	}
	uuv := Vec3{
		X: u.Y*uv.Z - u.Z*uv.Y,
		Y: u.Z*uv.X - u.X*uv.Z,
		Z: u.X*uv.Y - u.Y*uv.X,
	}
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Slerp spherically interpolates from q toward o by t along the shortest arc.
// t = 0 returns q exactly and t = 1 returns o exactly — the near-parallel
// fallback path never leaves residual drift at the endpoints. Inputs are
// assumed unit length; the result is normalized.
//
// Parameters:
//   - o: the target rotation
//   - t: the interpolation factor, clamped to [0, 1]
//
// Returns:
//   - Quaternion: the interpolated rotation
func (q Quaternion) Slerp(o Quaternion, t float64) Quaternion {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return o
	}

	dot := q.Dot(o)
	target := o
	if dot < 0 {
		// Take the shorter of the two arcs between equivalent rotations.
		target = o.Negate()
		dot = -dot
	}

	if dot > slerpDotThreshold {
		// Nearly parallel: nlerp is stable and indistinguishable here.
		return Quaternion{
			X: q.X + (target.X-q.X)*t,
			Y: q.Y + (target.Y-q.Y)*t,
			Z: q.Z + (target.Z-q.Z)*t,
			W: q.W + (target.W-q.W)*t,
		}.Normalize()
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quaternion{
		X: wa*q.X + wb*target.X,
		Y: wa*q.Y + wb*target.Y,
		Z: wa*q.Z + wb*target.Z,
		W: wa*q.W + wb*target.W,
	}.Normalize()
}

// IsFinite reports whether every component of q is a finite number.
//
// Returns:
//   - bool: true if no component is NaN or ±Inf
func (q Quaternion) IsFinite() bool {
	return IsFinite(q.X) && IsFinite(q.Y) && IsFinite(q.Z) && IsFinite(q.W)
}

// QuaternionFromAxisAngle builds a rotation of angle radians about the given
// axis. The axis does not need to be normalized.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the rotation angle in radians
//
// Returns:
//   - Quaternion: the resulting unit rotation
func QuaternionFromAxisAngle(axis Vec3, angle float64) Quaternion {
	length := axis.Length()
	if length == 0 {
		return IdentityQuaternion()
	}
	half := angle / 2
	s := math.Sin(half) / length
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(half),
	}
}

// Lerp linearly interpolates from a toward b by t.
// t = 0 returns a exactly, t = 1 returns b exactly.
//
// Parameters:
//   - a: the start value
//   - b: the target value
//   - t: the interpolation factor
//
// Returns:
//   - float64: the interpolated value
func Lerp(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}

// LerpAngle interpolates from angle a toward angle b (radians) along the
// shortest angular arc, the scalar analogue of Slerp. Used for camera
// rotationX/rotationY blending where angles may wrap past ±π.
//
// Parameters:
//   - a: the start angle in radians
//   - b: the target angle in radians
//   - t: the interpolation factor
//
// Returns:
//   - float64: the interpolated angle
func LerpAngle(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	delta := math.Mod(b-a, 2*math.Pi)
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta < -math.Pi {
		delta += 2 * math.Pi
	}
	return a + delta*t
}

// Clamp01 clamps t to the [0, 1] range.
//
// Parameters:
//   - t: the value to clamp
//
// Returns:
//   - float64: t limited to [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// IsFinite reports whether f is neither NaN nor infinite.
//
// Parameters:
//   - f: the value to check
//
// Returns:
//   - bool: true if f is a finite number
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
