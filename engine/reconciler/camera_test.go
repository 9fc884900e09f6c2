package reconciler

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/camera"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

func cameraWindow(id string, start, end float64, options ...keyframe.KeyframeBuilderOption) timeline.Resolved {
	return window(keyframe.CameraEntity, id, start, end, options...)
}

func TestReconcileCameraDefaultPose(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam", 1, 3, keyframe.WithZoom(0.5)),
	}

	got := reconcileCamera(kfs, 0.5)
	if got != camera.DefaultPose() {
		t.Fatalf("pose before first keyframe = %+v, want default", got)
	}
	if got.Zoom != 1 {
		t.Fatalf("default zoom = %v, want 1", got.Zoom)
	}
}

func TestReconcileCameraBlendsInsideWindow(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam", 1, 3, keyframe.WithZoom(0.5), keyframe.WithPan(common.Vec3{X: 4})),
	}

	got := reconcileCamera(kfs, 2)
	if !almostEqual(got.Zoom, 0.75) {
		t.Fatalf("mid-window zoom = %v, want 0.75", got.Zoom)
	}
	if !vecAlmostEqual(got.Pan, common.Vec3{X: 2}) {
		t.Fatalf("mid-window pan = %v, want (2, 0, 0)", got.Pan)
	}
}

func TestReconcileCameraHoldsAfterWindow(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam", 1, 3, keyframe.WithZoom(0.5)),
	}

	got := reconcileCamera(kfs, 10)
	if got.Zoom != 0.5 {
		t.Fatalf("held zoom = %v, want 0.5", got.Zoom)
	}
}

func TestReconcileCameraMergesUnspecifiedFields(t *testing.T) {
	// The second keyframe drives only pan; zoom carries over from the first
	// keyframe's completed target.
	kfs := []timeline.Resolved{
		cameraWindow("cam-zoom", 0, 1, keyframe.WithZoom(2)),
		cameraWindow("cam-pan", 2, 3, keyframe.WithPan(common.Vec3{X: 4})),
	}

	got := reconcileCamera(kfs, 2.5)
	if got.Zoom != 2 {
		t.Fatalf("zoom during pan keyframe = %v, want 2 carried over", got.Zoom)
	}
	if !vecAlmostEqual(got.Pan, common.Vec3{X: 2}) {
		t.Fatalf("pan = %v, want (2, 0, 0)", got.Pan)
	}
}

func TestReconcileCameraHoldsBetweenWindows(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam-zoom", 0, 1, keyframe.WithZoom(2)),
		cameraWindow("cam-pan", 3, 4, keyframe.WithPan(common.Vec3{X: 4})),
	}

	got := reconcileCamera(kfs, 2)
	if got.Zoom != 2 || got.Pan != (common.Vec3{}) {
		t.Fatalf("pose between windows = %+v, want completed first target only", got)
	}
}

func TestReconcileCameraAngleShortestArc(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam-yaw1", 0, 0, keyframe.WithRotationY(3)),
		cameraWindow("cam-yaw2", 1, 2, keyframe.WithRotationY(-3)),
	}

	got := reconcileCamera(kfs, 1.5)
	// From 3 rad to -3 rad the short way crosses pi, not zero.
	want := 3 + (2*math.Pi-6)/2
	if !almostEqual(got.RotationY, want) {
		t.Fatalf("blended yaw = %v, want %v (shortest arc)", got.RotationY, want)
	}
}

func TestReconcileCameraInstantKeyframe(t *testing.T) {
	kfs := []timeline.Resolved{
		cameraWindow("cam", 1, 1, keyframe.WithZoom(3)),
	}

	if got := reconcileCamera(kfs, 0.5); got.Zoom != 1 {
		t.Fatalf("zoom before instant keyframe = %v, want 1", got.Zoom)
	}
	if got := reconcileCamera(kfs, 1); got.Zoom != 3 {
		t.Fatalf("zoom at instant keyframe = %v, want 3", got.Zoom)
	}
}

func TestReconcileCameraEmptyTimeline(t *testing.T) {
	if got := reconcileCamera(nil, 5); got != camera.DefaultPose() {
		t.Fatalf("pose with no camera keyframes = %+v, want default", got)
	}
}

func TestPoseApply(t *testing.T) {
	base := camera.Pose{Zoom: 2, RotationX: 0.5}
	k := keyframe.NewKeyframe(keyframe.CameraEntity,
		keyframe.WithID("cam"),
		keyframe.WithTarget(common.Vec3{Z: 7}),
	)

	got := base.Apply(k)
	if got.Target != (common.Vec3{Z: 7}) {
		t.Fatalf("Apply target = %v, want (0, 0, 7)", got.Target)
	}
	if got.Zoom != 2 || got.RotationX != 0.5 {
		t.Fatalf("Apply dropped unspecified fields: %+v", got)
	}
}

func TestPoseBlendEndpoints(t *testing.T) {
	a := camera.Pose{Zoom: 1}
	b := camera.Pose{Zoom: 3, Pan: common.Vec3{X: 1}}

	if got := a.Blend(b, 0); got != a {
		t.Fatalf("Blend(0) = %+v, want start exactly", got)
	}
	if got := a.Blend(b, 1); got != b {
		t.Fatalf("Blend(1) = %+v, want target exactly", got)
	}
}
