// Package query turns free-text rental requests into search criteria.
//
// A language model is used when one is configured; the heuristic parser in
// heuristic.go covers the remaining cases and any model failure.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amineremache/dafty-mcp/internal/logger"
	"github.com/amineremache/dafty-mcp/pkg/listing"
	"github.com/amineremache/dafty-mcp/pkg/llm"
	"github.com/amineremache/dafty-mcp/pkg/schema"
)

// ErrEmptyQuery is returned for blank input.
var ErrEmptyQuery = errors.New("query is empty")

var criteriaSchema = schema.MustSchema[listing.Criteria](
	schema.WithDescription("Rental search filters"),
)

// Source records which parser produced a result.
type Source string

const (
	SourceLLM       Source = "llm"
	SourceHeuristic Source = "heuristic"
)

// Result is a translated query.
type Result struct {
	Criteria listing.Criteria `json:"criteria"`
	Source   Source           `json:"source"`
	Usage    llm.Usage        `json:"-"`
}

// Config holds translator settings.
type Config struct {
	MaxRetries  int
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  1,
		Temperature: 0,
		MaxTokens:   512,
	}
}

// Option configures the translator.
type Option func(*Config)

// WithMaxRetries sets how many times a rejected model answer is retried
// with the validation errors fed back.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens(n int) Option {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// Translator converts text to criteria.
type Translator struct {
	provider llm.Provider
	config   Config
}

// New creates a Translator. provider may be nil, in which case only the
// heuristic parser is used.
func New(provider llm.Provider, opts ...Option) *Translator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Translator{provider: provider, config: cfg}
}

// Translate returns the criteria described by text.
func (t *Translator) Translate(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyQuery
	}

	if t.provider != nil {
		res, err := t.translateLLM(ctx, text)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		logger.Warn("model translation failed, using heuristic parser",
			"provider", t.provider.Name(),
			"error", err)
	}

	c := Parse(text)
	logger.Debug("query translated", "source", SourceHeuristic, "criteria", c)
	return Result{Criteria: c, Source: SourceHeuristic}, nil
}

func (t *Translator) translateLLM(ctx context.Context, text string) (Result, error) {
	jsonSchema := criteriaSchema.ToJSONSchema()

	var lastErr error
	var usage llm.Usage

	for attempt := 0; attempt <= t.config.MaxRetries; attempt++ {
		resp, err := t.provider.Execute(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: systemPrompt},
				{Role: llm.RoleUser, Content: buildPrompt(text, criteriaSchema, lastErr)},
			},
			MaxTokens:   t.config.MaxTokens,
			Temperature: t.config.Temperature,
			JSONSchema:  jsonSchema,
			SchemaName:  "search_criteria",
		})
		if err != nil {
			return Result{}, err
		}
		usage.InputTokens += resp.Usage.InputTokens
		usage.OutputTokens += resp.Usage.OutputTokens

		logger.Debug("query model attempt complete",
			"attempt", attempt+1,
			"model", resp.Model,
			"duration", resp.Duration)

		c, err := decodeCriteria(resp.Content)
		if err == nil {
			return Result{Criteria: c, Source: SourceLLM, Usage: usage}, nil
		}
		lastErr = err
	}

	return Result{}, fmt.Errorf("model output rejected after %d attempts: %w", t.config.MaxRetries+1, lastErr)
}

func decodeCriteria(content string) (listing.Criteria, error) {
	var c listing.Criteria
	verrs, err := criteriaSchema.Decode([]byte(stripCodeFence(content)), &c)
	if err != nil {
		return listing.Criteria{}, err
	}
	if len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, v := range verrs {
			msgs[i] = v.Error()
		}
		return listing.Criteria{}, errors.New(strings.Join(msgs, "; "))
	}
	if err := c.Validate(); err != nil {
		return listing.Criteria{}, err
	}
	return c, nil
}

// stripCodeFence removes a markdown fence some models wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
