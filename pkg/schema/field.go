// Package schema derives JSON Schema documents from Go structs and validates
// decoded values against the same struct tags.
//
// Tool arguments and LLM structured output are both described by a Go type.
// The `json` tag names a field, `description` documents it and `validate`
// carries go-playground/validator rules, which also become JSON Schema
// constraints where a direct equivalent exists.
package schema

// FieldType represents the type of a schema field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeInteger FieldType = "integer"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// Field represents a single field in the schema.
type Field struct {
	Name        string    `json:"name,omitempty"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required,omitempty"`
	Items       *Field    `json:"items,omitempty"`      // For array types
	Properties  []Field   `json:"properties,omitempty"` // For object types
	Validators  []string  `json:"validators,omitempty"` // Validation tags
	Examples    []string  `json:"examples,omitempty"`
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
