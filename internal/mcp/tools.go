package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amineremache/dafty-mcp/internal/query"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/schema"
)

// Tool names.
const (
	ToolSearch  = "search_rental_properties"
	ToolDetails = "get_daft_property_details"
	ToolParse   = "parse_rental_query"
)

// Searcher is the listing backend, normally a *daft.Client.
type Searcher interface {
	Search(ctx context.Context, criteria listing.Criteria) ([]listing.Listing, error)
	GetDetails(ctx context.Context, id string) (json.RawMessage, error)
}

// Translator turns free text into criteria, normally a *query.Translator.
type Translator interface {
	Translate(ctx context.Context, text string) (query.Result, error)
}

// DetailsArgs are the arguments of get_daft_property_details.
type DetailsArgs struct {
	ID string `json:"id" validate:"required,max=32" description:"Listing id as shown in the listing URL"`
}

// ParseArgs are the arguments of parse_rental_query.
type ParseArgs struct {
	Query string `json:"query" validate:"required,max=500" description:"Free-text rental request, e.g. '2 bed in Ringsend under 2500'"`
}

// Tool is a callable operation with a declared input schema.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`

	args      schema.Schema
	rawSchema json.RawMessage
	handler   func(ctx context.Context, raw json.RawMessage) (any, error)
}

func (s *Server) registerTools() {
	s.register(&Tool{
		Name:        ToolSearch,
		Description: "Search Daft.ie rental listings by location, monthly price range, bedroom count and property type. Returns one record per rentable unit.",
		args:        schema.MustSchema[listing.Criteria](schema.WithDescription("Rental search criteria")),
		handler:     s.handleSearch,
	})
	s.register(&Tool{
		Name:        ToolDetails,
		Description: "Fetch the full record of one listing from the Daft.ie API. Requires an API key.",
		args:        schema.MustSchema[DetailsArgs](),
		handler:     s.handleDetails,
	})
	s.register(&Tool{
		Name:        ToolParse,
		Description: "Convert a free-text rental request into search_rental_properties arguments.",
		args:        schema.MustSchema[ParseArgs](),
		handler:     s.handleParse,
	})
}

func (s *Server) register(t *Tool) {
	t.InputSchema = t.args.ToJSONSchema()
	raw, err := json.Marshal(t.InputSchema)
	if err != nil {
		panic(fmt.Sprintf("tool %s: input schema: %v", t.Name, err))
	}
	t.rawSchema = raw
	s.tools = append(s.tools, t)
	s.byName[t.Name] = t
}

// decodeArgs strictly decodes raw into v and checks its validate tags.
func decodeArgs(t *Tool, raw json.RawMessage, v any) error {
	verrs, err := t.args.Decode(raw, v)
	if err != nil {
		return invalidArgs(err.Error(), nil)
	}
	if len(verrs) > 0 {
		return invalidArgs("invalid arguments", verrs)
	}
	return nil
}

func (s *Server) handleSearch(ctx context.Context, raw json.RawMessage) (any, error) {
	var c listing.Criteria
	if err := decodeArgs(s.byName[ToolSearch], raw, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results, err := s.searcher.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []listing.Listing{}
	}
	return results, nil
}

func (s *Server) handleDetails(ctx context.Context, raw json.RawMessage) (any, error) {
	var args DetailsArgs
	if err := decodeArgs(s.byName[ToolDetails], raw, &args); err != nil {
		return nil, err
	}
	return s.searcher.GetDetails(ctx, args.ID)
}

func (s *Server) handleParse(ctx context.Context, raw json.RawMessage) (any, error) {
	var args ParseArgs
	if err := decodeArgs(s.byName[ToolParse], raw, &args); err != nil {
		return nil, err
	}
	return s.translator.Translate(ctx, args.Query)
}
