package keyframe

import (
	"github.com/invopop/jsonschema"
)

// DocumentSchema produces a machine-readable JSON schema for the serializable
// keyframe record, so scene-authoring tools and editors can validate batches
// before handing them to the pipeline.
//
// Returns:
//   - *jsonschema.Schema: the schema for a single keyframe Document
func DocumentSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	schema := reflector.Reflect(&Document{})
	schema.Version = ""
	schema.Title = "Animation Keyframe"
	schema.Description = "A single timed animation instruction targeting one entity or the camera."
	return schema
}
