package llm

import (
	"github.com/bitrise-io/ai-deobfuscator/model"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// SchemaFor converts a reply shape into a strict JSON schema object
func SchemaFor(shape model.Shape) *jsonschema.Definition {
	properties := make(map[string]jsonschema.Definition, len(shape.Fields))
	for _, f := range shape.Fields {
		switch f.Type {
		case model.TypeTextList:
			properties[f.Name] = jsonschema.Definition{
				Type:        jsonschema.Array,
				Description: f.Description,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			}
		default:
			properties[f.Name] = jsonschema.Definition{
				Type:        jsonschema.String,
				Description: f.Description,
			}
		}
	}

	return &jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           properties,
		Required:             shape.Required(),
		AdditionalProperties: false,
	}
}
