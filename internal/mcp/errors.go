package mcp

import (
	"errors"

	"github.com/amineremache/dafty-mcp/internal/query"
	"github.com/amineremache/dafty-mcp/pkg/daft"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/schema"
)

// ToolError is the error envelope returned by a failed tool call. It never
// carries partial payload. Search failures echo the criteria that were asked.
type ToolError struct {
	Kind     daft.Kind                `json:"error"`
	Stage    string                   `json:"stage,omitempty"`
	Message  string                   `json:"message"`
	Fields   []schema.ValidationError `json:"fields,omitempty"`
	Criteria *listing.Criteria        `json:"criteria,omitempty"`
}

func (e *ToolError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func invalidArgs(message string, fields []schema.ValidationError) *ToolError {
	return &ToolError{Kind: daft.KindValidation, Stage: "arguments", Message: message, Fields: fields}
}

// toToolError maps an operation failure onto the envelope.
func toToolError(err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}

	var verr *listing.ValidationError
	if errors.As(err, &verr) {
		fields := make([]schema.ValidationError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = schema.ValidationError{Field: f.Field, Message: f.Message}
		}
		return invalidArgs("invalid search criteria", fields)
	}

	if errors.Is(err, query.ErrEmptyQuery) {
		return invalidArgs(err.Error(), nil)
	}

	out := &ToolError{Kind: daft.KindOf(err), Stage: daft.StageOf(err), Message: err.Error()}
	var de *daft.Error
	if errors.As(err, &de) {
		out.Message = de.Message
		out.Criteria = de.Criteria
		if de.Err != nil {
			out.Message += ": " + de.Err.Error()
		}
	}
	return out
}
