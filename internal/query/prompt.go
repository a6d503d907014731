package query

import (
	"strings"

	"github.com/amineremache/dafty-mcp/pkg/schema"
)

const systemPrompt = `You convert rental property requests into search filters for an Irish property site.

Rules:
1. Only fill fields the request actually states
2. Prices are monthly rent in euro; convert weekly amounts to monthly (x52/12)
3. "location" holds area names as written, e.g. "Dublin 4" or "Carrigaline, Cork"
4. A studio counts as 1 bedroom
5. propertyType is a singular noun such as "apartment" or "house"
6. Return valid JSON matching the schema and nothing else`

// buildPrompt creates the user prompt. previousErr carries validation
// feedback from a rejected attempt.
func buildPrompt(text string, s schema.Schema, previousErr error) string {
	var prompt strings.Builder

	prompt.WriteString("Extract search filters from this request.\n\n")
	prompt.WriteString("## Fields\n")
	for _, f := range s.Fields {
		prompt.WriteString("- ")
		prompt.WriteString(f.Name)
		prompt.WriteString(" (")
		prompt.WriteString(string(f.Type))
		prompt.WriteString(")")
		if f.Description != "" {
			prompt.WriteString(": ")
			prompt.WriteString(f.Description)
		}
		prompt.WriteString("\n")
	}

	if previousErr != nil {
		prompt.WriteString("\n## Previous Attempt Errors\n")
		prompt.WriteString(previousErr.Error())
		prompt.WriteString("\n\nCorrect these errors in your response.\n")
	}

	prompt.WriteString("\n## Request\n")
	prompt.WriteString(text)
	prompt.WriteString("\n")

	return prompt.String()
}
