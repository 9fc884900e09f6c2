package engine

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/diagnostics"
	"github.com/Carmen-Shannon/kinetic-go/engine/keyframe"
	"github.com/Carmen-Shannon/kinetic-go/engine/scene"
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

func TestNewPipelineEndToEnd(t *testing.T) {
	mount := scene.Marker{Name: "mount", Parent: "hub", LocalPosition: common.Vec3{X: 10}}

	kfs := []keyframe.Keyframe{
		keyframe.NewKeyframe("hub",
			keyframe.WithID("hub-place"),
			keyframe.WithAbsoluteTime(0),
			keyframe.WithOpacity(1),
			keyframe.WithPosition(keyframe.AbsolutePosition{Value: common.Vec3{Y: 5}}),
		),
		keyframe.NewKeyframe("satellite",
			keyframe.WithID("sat-mount"),
			keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "hub-place"),
			keyframe.WithOpacity(1),
			keyframe.WithMarker(mount),
		),
		keyframe.NewKeyframe(keyframe.CameraEntity,
			keyframe.WithID("cam-zoom"),
			keyframe.WithAbsoluteTime(1),
			keyframe.WithDuration(2),
			keyframe.WithZoom(0.5),
		),
	}

	p, err := NewPipeline(kfs)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	if diags := p.Diagnostics(); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	snap, err := p.Snapshot(2)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	sat := snap.Entities["satellite"]
	if math.Abs(sat.Position.X-10) > 1e-9 || math.Abs(sat.Position.Y-5) > 1e-9 || math.Abs(sat.Position.Z) > 1e-9 {
		t.Fatalf("satellite position = %v, want (10, 5, 0)", sat.Position)
	}
	if sat.Opacity != 1 {
		t.Fatalf("satellite opacity = %v, want 1", sat.Opacity)
	}
	if math.Abs(snap.Camera.Zoom-0.75) > 1e-9 {
		t.Fatalf("camera zoom at t=2 = %v, want 0.75", snap.Camera.Zoom)
	}
}

func TestPipelineSnapshotBeforeFirstKeyframe(t *testing.T) {
	p, err := NewPipeline([]keyframe.Keyframe{
		keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithAbsoluteTime(1), keyframe.WithDuration(1), keyframe.WithOpacity(1)),
	})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	snap, err := p.Snapshot(0.5)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	state := snap.Entities["robot"]
	if state.Opacity != 0 || state.Scale != common.UnitScale() || state.Rotation != common.IdentityQuaternion() {
		t.Fatalf("state before first keyframe = %+v, want defaults", state)
	}
}

func TestPipelineSnapshotIdempotent(t *testing.T) {
	p, err := NewPipeline([]keyframe.Keyframe{
		keyframe.NewKeyframe("robot",
			keyframe.WithID("a"),
			keyframe.WithAbsoluteTime(0),
			keyframe.WithDuration(3),
			keyframe.WithOpacity(1),
			keyframe.WithRotation(keyframe.WorldRotation{Value: common.QuaternionFromAxisAngle(common.Vec3{Y: 1}, 1)}),
		),
	})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	first, err := p.Snapshot(1.3)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	second, err := p.Snapshot(1.3)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated snapshots diverged:\n%+v\n%+v", first, second)
	}
}

func TestNewPipelineCompileErrors(t *testing.T) {
	t.Run("duplicate ids", func(t *testing.T) {
		_, err := NewPipeline([]keyframe.Keyframe{
			keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithAbsoluteTime(0)),
			keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithAbsoluteTime(1)),
		})
		if !errors.Is(err, diagnostics.ErrDuplicateKeyframeID) {
			t.Fatalf("err = %v, want duplicate keyframe id", err)
		}
	})

	t.Run("time cycle", func(t *testing.T) {
		_, err := NewPipeline([]keyframe.Keyframe{
			keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "b")),
			keyframe.NewKeyframe("robot", keyframe.WithID("b"), keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "a")),
		})
		if !errors.Is(err, diagnostics.ErrUnresolvedTimeDependency) {
			t.Fatalf("err = %v, want unresolved time dependency", err)
		}
	})

	t.Run("marker cycle", func(t *testing.T) {
		_, err := NewPipeline([]keyframe.Keyframe{
			keyframe.NewKeyframe("a", keyframe.WithID("k1"), keyframe.WithAbsoluteTime(0),
				keyframe.WithMarker(scene.Marker{Name: "m", Parent: "b"})),
			keyframe.NewKeyframe("b", keyframe.WithID("k2"), keyframe.WithAbsoluteTime(0),
				keyframe.WithMarker(scene.Marker{Name: "m", Parent: "a"})),
		})
		if !errors.Is(err, diagnostics.ErrCircularMarkerDependency) {
			t.Fatalf("err = %v, want circular marker dependency", err)
		}
	})
}

func TestNewPipelineSurfacesDiagnostics(t *testing.T) {
	p, err := NewPipeline([]keyframe.Keyframe{
		keyframe.NewKeyframe("robot", keyframe.WithAbsoluteTime(0)), // dropped: no ID
		keyframe.NewKeyframe("robot", keyframe.WithID("ok"), keyframe.WithAbsoluteTime(0)),
	})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	diags := p.Diagnostics()
	if len(diags) != 1 || diags[0].Code != diagnostics.CodeValidation {
		t.Fatalf("diags = %v, want one validation diagnostic", diags)
	}

	// The returned slice is a copy; mutating it must not affect the pipeline.
	diags[0].Code = "mutated"
	if got := p.Diagnostics(); got[0].Code != diagnostics.CodeValidation {
		t.Fatal("Diagnostics exposed internal state")
	}
}

func TestWithMaxPassesLimitsChainDepth(t *testing.T) {
	// Deepest-first input so each pass resolves exactly one keyframe.
	kfs := []keyframe.Keyframe{
		keyframe.NewKeyframe("robot", keyframe.WithID("d"), keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "c")),
		keyframe.NewKeyframe("robot", keyframe.WithID("c"), keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "b")),
		keyframe.NewKeyframe("robot", keyframe.WithID("b"), keyframe.WithRelativeTime(0, keyframe.AnchorEnd, "a")),
		keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithAbsoluteTime(0)),
	}

	if _, err := NewPipeline(kfs); err != nil {
		t.Fatalf("default pass cap rejected a valid chain: %v", err)
	}
	if _, err := NewPipeline(kfs, WithMaxPasses(2)); !errors.Is(err, diagnostics.ErrUnresolvedTimeDependency) {
		t.Fatalf("err = %v, want unresolved time dependency under a 2-pass cap", err)
	}
	if _, err := NewPipeline(kfs, WithResolver(timeline.NewResolver(timeline.WithMaxPasses(3)))); err != nil {
		t.Fatalf("3-pass resolver rejected a 3-deep chain: %v", err)
	}
}

func TestPipelinePlanExposed(t *testing.T) {
	p, err := NewPipeline([]keyframe.Keyframe{
		keyframe.NewKeyframe("robot", keyframe.WithID("a"), keyframe.WithAbsoluteTime(0)),
		keyframe.NewKeyframe(keyframe.CameraEntity, keyframe.WithID("cam"), keyframe.WithAbsoluteTime(0)),
	})
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	plan := p.Plan()
	if plan == nil || len(plan.Tracks) != 1 || len(plan.Camera) != 1 {
		t.Fatalf("plan = %+v, want one track and one camera keyframe", plan)
	}
}
