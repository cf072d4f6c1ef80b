package agents

import (
	"github.com/invopop/jsonschema"
)

// Definition describes the destination frontmatter. It documents the format
// through GenerateSchema and is not used for parsing.
type Definition struct {
	Description string          `json:"description" jsonschema:"description=What the agent does and when to use it"`
	Mode        string          `json:"mode" jsonschema:"description=Where the agent can be selected,enum=primary,enum=subagent,enum=all"`
	Model       string          `json:"model,omitempty" jsonschema:"description=Provider qualified model id"`
	Temperature float64         `json:"temperature,omitempty" jsonschema:"description=Sampling temperature,minimum=0,maximum=1,default=0.3"`
	Tools       map[string]bool `json:"tools,omitempty" jsonschema:"description=Capabilities the agent may use"`
}

// GenerateSchema returns the JSON schema of the destination frontmatter
func GenerateSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := r.Reflect(&Definition{})
	schema.Title = "Agent frontmatter"
	return schema
}
