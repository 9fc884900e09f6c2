package keyframe

import (
	"fmt"

	"github.com/Carmen-Shannon/kinetic-go/common"
	"github.com/Carmen-Shannon/kinetic-go/engine/scene"
)

// Spec type discriminators used by the serializable document form.
const (
	SpecTypeAbsolute  = "absolute"
	SpecTypeRelative  = "relative"
	SpecTypeComposite = "composite"
	SpecTypeMarker    = "marker"
	SpecTypeWorld     = "world"
)

// TimeDocument is the wire form of a TimeSpec, discriminated by Type.
type TimeDocument struct {
	// Type is one of SpecTypeAbsolute, SpecTypeRelative, SpecTypeComposite.
	Type string `json:"type" jsonschema:"required,enum=absolute,enum=relative,enum=composite"`

	// At is the absolute start time in seconds. SpecTypeAbsolute only.
	At float64 `json:"at,omitempty"`

	// Offset is added to the referenced anchor. SpecTypeRelative only.
	Offset float64 `json:"offset,omitempty"`

	// Side selects the parent's start or end edge. SpecTypeRelative only.
	Side AnchorSide `json:"side,omitempty"`

	// Parent is the referenced keyframe ID. SpecTypeRelative only.
	Parent string `json:"parent,omitempty"`

	// Refs are the anchors considered. SpecTypeComposite only.
	Refs []TimeRef `json:"refs,omitempty"`
}

// PositionDocument is the wire form of a PositionSpec, discriminated by Type.
type PositionDocument struct {
	// Type is one of SpecTypeAbsolute, SpecTypeRelative, SpecTypeMarker.
	Type string `json:"type" jsonschema:"required,enum=absolute,enum=relative,enum=marker"`

	// Value is the world-space target position. SpecTypeAbsolute only.
	Value *common.Vec3 `json:"value,omitempty"`

	// Delta is the displacement from the accumulated position.
	// SpecTypeRelative only.
	Delta *common.Vec3 `json:"delta,omitempty"`

	// Marker is the resolved attachment point. SpecTypeMarker only.
	Marker *scene.Marker `json:"marker,omitempty"`
}

// RotationDocument is the wire form of a RotationSpec, discriminated by Type.
type RotationDocument struct {
	// Type is one of SpecTypeAbsolute, SpecTypeRelative, SpecTypeWorld.
	Type string `json:"type" jsonschema:"required,enum=absolute,enum=relative,enum=world"`

	// Value is the target orientation for SpecTypeAbsolute, or the
	// world-space rotation for SpecTypeWorld.
	Value *common.Quaternion `json:"value,omitempty"`

	// Delta is the additional local-space rotation. SpecTypeRelative only.
	Delta *common.Quaternion `json:"delta,omitempty"`
}

// Document is the serializable wire form of a Keyframe: plain data with
// string-discriminated spec unions, suitable for JSON storage and for
// validation against DocumentSchema. Decode converts a Document into the
// closed sum types the pipeline consumes.
type Document struct {
	// ID uniquely identifies the keyframe within a batch.
	ID string `json:"id" jsonschema:"required"`

	// Entity is the target entity reference, or "camera".
	Entity string `json:"entity" jsonschema:"required"`

	// Time specifies when the keyframe's window starts.
	Time TimeDocument `json:"time" jsonschema:"required"`

	// Duration is the window length in seconds.
	Duration float64 `json:"duration" jsonschema:"minimum=0"`

	// Opacity is the optional target opacity.
	Opacity *float64 `json:"opacity,omitempty"`

	// Scale is the optional target scale.
	Scale *common.Vec3 `json:"scale,omitempty"`

	// Position optionally drives the entity's position.
	Position *PositionDocument `json:"position,omitempty"`

	// Rotation optionally drives the entity's rotation.
	Rotation *RotationDocument `json:"rotation,omitempty"`

	// Properties are generic named numeric targets.
	Properties map[string]float64 `json:"properties,omitempty"`

	// Pan is the camera pan target. Camera keyframes only.
	Pan *common.Vec3 `json:"pan,omitempty"`

	// Target is the camera look-at target. Camera keyframes only.
	Target *common.Vec3 `json:"target,omitempty"`

	// RotationX is the camera pitch target in radians. Camera keyframes only.
	RotationX *float64 `json:"rotationX,omitempty"`

	// RotationY is the camera yaw target in radians. Camera keyframes only.
	RotationY *float64 `json:"rotationY,omitempty"`

	// Zoom is the camera zoom factor target. Camera keyframes only.
	Zoom *float64 `json:"zoom,omitempty"`
}

// Decode converts the document into a pipeline Keyframe, mapping the string
// discriminators onto the closed sum types. Unknown discriminators are
// errors rather than silent defaults.
//
// Returns:
//   - Keyframe: the decoded keyframe
//   - error: error if a discriminator is unknown or a payload is missing
func (d Document) Decode() (Keyframe, error) {
	k := Keyframe{
		ID:         d.ID,
		Entity:     d.Entity,
		Duration:   d.Duration,
		Opacity:    d.Opacity,
		Scale:      d.Scale,
		Properties: d.Properties,
		Pan:        d.Pan,
		Target:     d.Target,
		RotationX:  d.RotationX,
		RotationY:  d.RotationY,
		Zoom:       d.Zoom,
	}

	switch d.Time.Type {
	case SpecTypeAbsolute:
		k.Time = AbsoluteTime{At: d.Time.At}
	case SpecTypeRelative:
		// Documents may omit the anchor side; it defaults to the parent's start.
		k.Time = RelativeTime{Offset: d.Time.Offset, Side: common.Coalesce(d.Time.Side, AnchorStart), Parent: d.Time.Parent}
	case SpecTypeComposite:
		refs := make([]TimeRef, len(d.Time.Refs))
		for i, ref := range d.Time.Refs {
			refs[i] = TimeRef{Offset: ref.Offset, Side: common.Coalesce(ref.Side, AnchorStart), Parent: ref.Parent}
		}
		k.Time = CompositeTime{Refs: refs}
	default:
		return Keyframe{}, fmt.Errorf("keyframe %q: unknown time spec type %q", d.ID, d.Time.Type)
	}

	if d.Position != nil {
		switch d.Position.Type {
		case SpecTypeAbsolute:
			if d.Position.Value == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: absolute position has no value", d.ID)
			}
			k.Position = AbsolutePosition{Value: *d.Position.Value}
		case SpecTypeRelative:
			if d.Position.Delta == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: relative position has no delta", d.ID)
			}
			k.Position = RelativePosition{Delta: *d.Position.Delta}
		case SpecTypeMarker:
			if d.Position.Marker == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: marker position has no marker", d.ID)
			}
			k.Position = MarkerPosition{Marker: *d.Position.Marker}
		default:
			return Keyframe{}, fmt.Errorf("keyframe %q: unknown position spec type %q", d.ID, d.Position.Type)
		}
	}

	if d.Rotation != nil {
		switch d.Rotation.Type {
		case SpecTypeAbsolute:
			if d.Rotation.Value == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: absolute rotation has no value", d.ID)
			}
			k.Rotation = AbsoluteRotation{Value: *d.Rotation.Value}
		case SpecTypeRelative:
			if d.Rotation.Delta == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: relative rotation has no delta", d.ID)
			}
			k.Rotation = RelativeRotation{Delta: *d.Rotation.Delta}
		case SpecTypeWorld:
			if d.Rotation.Value == nil {
				return Keyframe{}, fmt.Errorf("keyframe %q: world-space rotation has no value", d.ID)
			}
			k.Rotation = WorldRotation{Value: *d.Rotation.Value}
		default:
			return Keyframe{}, fmt.Errorf("keyframe %q: unknown rotation spec type %q", d.ID, d.Rotation.Type)
		}
	}

	return k, nil
}

// DecodeDocuments decodes a batch of documents in order.
//
// Parameters:
//   - docs: the documents to decode
//
// Returns:
//   - []Keyframe: the decoded keyframes, in input order
//   - error: the first decode failure encountered
func DecodeDocuments(docs []Document) ([]Keyframe, error) {
	out := make([]Keyframe, 0, len(docs))
	for i, doc := range docs {
		k, err := doc.Decode()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, k)
	}
	return out, nil
}
