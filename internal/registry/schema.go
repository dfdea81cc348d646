package registry

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// compiledSchema wraps a gojsonschema schema built from a handler's parameter
// declarations. Validation failures are logical errors, not protocol errors:
// the body parsed as JSON but the values don't fit the handler's contract.
type compiledSchema struct {
	schema *gojsonschema.Schema
}

// compileSchema builds a JSON schema document from ordered parameter
// declarations. Handlers without parameters get no schema and skip validation.
func compileSchema(params []Param) (*compiledSchema, error) {
	if len(params) == 0 {
		return nil, nil
	}

	properties := make(map[string]any, len(params))
	var required []string
	for _, p := range params {
		prop := map[string]any{"type": schemaType(p.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("schema compilation failed: %w", err)
	}
	return &compiledSchema{schema: schema}, nil
}

// validate returns one message per violation, or nil when the body is valid.
func (c *compiledSchema) validate(body map[string]any) []string {
	raw, err := json.Marshal(body)
	if err != nil {
		return []string{fmt.Sprintf("body not serializable: %v", err)}
	}

	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return []string{fmt.Sprintf("schema validation error: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return details
}

func schemaType(t string) string {
	switch t {
	case "number", "integer", "boolean", "array", "object", "string":
		return t
	default:
		return "string"
	}
}
