package schema

import (
	"strconv"
	"strings"
)

// ToJSONSchema converts the schema to a JSON Schema object.
func (s Schema) ToJSONSchema() map[string]any {
	properties := make(map[string]any, len(s.Fields))
	required := make([]string, 0)

	for _, field := range s.Fields {
		properties[field.Name] = fieldToJSONSchema(field)
		if field.Required {
			required = append(required, field.Name)
		}
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	if s.Description != "" {
		schema["description"] = s.Description
	}
	return schema
}

func fieldToJSONSchema(f Field) map[string]any {
	schema := map[string]any{
		"type": string(f.Type),
	}
	if f.Description != "" {
		schema["description"] = f.Description
	}
	if len(f.Examples) > 0 {
		schema["examples"] = f.Examples
	}

	own, items := splitDive(f.Validators)
	applyConstraints(schema, f.Type, own)

	if f.Type == TypeArray && f.Items != nil {
		itemSchema := fieldToJSONSchema(*f.Items)
		applyConstraints(itemSchema, f.Items.Type, items)
		schema["items"] = itemSchema
	}

	if f.Type == TypeObject && len(f.Properties) > 0 {
		props := make(map[string]any, len(f.Properties))
		req := make([]string, 0)
		for _, p := range f.Properties {
			props[p.Name] = fieldToJSONSchema(p)
			if p.Required {
				req = append(req, p.Name)
			}
		}
		schema["properties"] = props
		schema["additionalProperties"] = false
		if len(req) > 0 {
			schema["required"] = req
		}
	}

	return schema
}

// splitDive separates a field's own rules from the rules after "dive",
// which apply to each element.
func splitDive(validators []string) (own, items []string) {
	for i, v := range validators {
		if v == "dive" {
			return validators[:i], validators[i+1:]
		}
	}
	return validators, nil
}

// applyConstraints maps validator rules with a JSON Schema equivalent.
func applyConstraints(schema map[string]any, t FieldType, rules []string) {
	for _, rule := range rules {
		name, param, _ := strings.Cut(rule, "=")
		switch name {
		case "gte", "min", "lte", "max":
			n, err := strconv.ParseFloat(param, 64)
			if err != nil {
				continue
			}
			lower := name == "gte" || name == "min"
			switch t {
			case TypeString:
				schema[pick(lower, "minLength", "maxLength")] = int(n)
			case TypeArray:
				schema[pick(lower, "minItems", "maxItems")] = int(n)
			case TypeNumber, TypeInteger:
				schema[pick(lower, "minimum", "maximum")] = n
			}
		case "oneof":
			schema["enum"] = strings.Fields(param)
		}
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
