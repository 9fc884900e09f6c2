package reconciler

import (
	"github.com/Carmen-Shannon/kinetic-go/engine/camera"
	"github.com/Carmen-Shannon/kinetic-go/engine/timeline"
)

// reconcileCamera replays the time-ordered camera keyframes up to the query
// time. Before the first keyframe the fixed default pose holds; inside a
// keyframe's window the previous target pose blends toward the keyframe's
// target using the keyframe's own window; between a keyframe's end and the
// next keyframe's start (and after the final keyframe) the completed target
// pose holds.
func reconcileCamera(kfs []timeline.Resolved, queryTime float64) camera.Pose {
	pose := camera.DefaultPose()
	for _, r := range kfs {
		if queryTime < r.Start {
			return pose
		}
		target := pose.Apply(r.Keyframe)
		if queryTime < r.End {
			return pose.Blend(target, progression(queryTime, r.Start, r.End))
		}
		pose = target
	}
	return pose
}
