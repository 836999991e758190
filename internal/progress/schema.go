package progress

import "github.com/invopop/jsonschema"

// Schema describes a Record as JSON Schema for tools that inspect saves.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(Record))
	schema.Title = "Ocean fill progress"
	schema.Description = "Water level and milestone flags persisted between visits"
	return schema
}
