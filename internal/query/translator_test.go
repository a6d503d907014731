package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amineremache/dafty-mcp/pkg/llm"
)

type fakeProvider struct {
	responses []string
	err       error
	requests  []llm.Request
}

func (f *fakeProvider) Execute(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.requests) - 1
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return &llm.Response{Content: f.responses[i], Model: "fake-1"}, nil
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-1" }

// --- Translator Tests ---

func TestTranslate_UsesModel(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"location":["Ringsend"],"maxPrice":2500,"numBeds":2}`}}
	tr := New(p)

	res, err := tr.Translate(context.Background(), "2 bed in Ringsend, max 2500")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res.Source != SourceLLM {
		t.Errorf("expected source llm, got %s", res.Source)
	}
	c := res.Criteria
	if len(c.Locations) != 1 || c.Locations[0] != "Ringsend" {
		t.Errorf("expected [Ringsend], got %v", c.Locations)
	}
	if c.MaxPrice == nil || *c.MaxPrice != 2500 {
		t.Errorf("expected max price 2500, got %v", c.MaxPrice)
	}
	if c.Beds == nil || *c.Beds != 2 {
		t.Errorf("expected 2 beds, got %v", c.Beds)
	}

	req := p.requests[0]
	if req.SchemaName != "search_criteria" {
		t.Errorf("expected schema name search_criteria, got %q", req.SchemaName)
	}
	if req.JSONSchema["type"] != "object" {
		t.Errorf("expected object schema, got %v", req.JSONSchema["type"])
	}
}

func TestTranslate_RetriesWithValidationFeedback(t *testing.T) {
	p := &fakeProvider{responses: []string{
		`{"numBeds":99}`,
		`{"numBeds":3}`,
	}}
	tr := New(p, WithMaxRetries(1))

	res, err := tr.Translate(context.Background(), "three bed house")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(p.requests) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(p.requests))
	}
	if !strings.Contains(p.requests[1].Messages[1].Content, "Previous Attempt Errors") {
		t.Error("expected second prompt to carry the previous errors")
	}
	if res.Criteria.Beds == nil || *res.Criteria.Beds != 3 {
		t.Errorf("expected 3 beds, got %v", res.Criteria.Beds)
	}
}

func TestTranslate_RejectsMinAboveMax(t *testing.T) {
	p := &fakeProvider{responses: []string{`{"minPrice":3000,"maxPrice":1000}`}}
	tr := New(p, WithMaxRetries(0))

	res, err := tr.Translate(context.Background(), "apartment under 1000")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res.Source != SourceHeuristic {
		t.Errorf("expected heuristic fallback, got %s", res.Source)
	}
	if res.Criteria.MaxPrice == nil || *res.Criteria.MaxPrice != 1000 {
		t.Errorf("expected heuristic max price 1000, got %v", res.Criteria.MaxPrice)
	}
}

func TestTranslate_ProviderErrorFallsBack(t *testing.T) {
	p := &fakeProvider{err: errors.New("rate limited")}
	tr := New(p)

	res, err := tr.Translate(context.Background(), "studio in Dublin 8 max 1800")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res.Source != SourceHeuristic {
		t.Errorf("expected heuristic, got %s", res.Source)
	}
	if len(p.requests) != 1 {
		t.Errorf("expected provider errors not to be retried, got %d calls", len(p.requests))
	}
}

func TestTranslate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakeProvider{err: context.Canceled}
	_, err := New(p).Translate(ctx, "house in Cork")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTranslate_NoProvider(t *testing.T) {
	res, err := New(nil).Translate(context.Background(), "house in Cork")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if res.Source != SourceHeuristic || res.Criteria.PropertyType != "house" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestTranslate_Empty(t *testing.T) {
	_, err := New(nil).Translate(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"```json\n{\"numBeds\":1}\n```": `{"numBeds":1}`,
		"```\n{}\n```":                  `{}`,
		`{"a":1}`:                       `{"a":1}`,
	}
	for in, want := range tests {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q): expected %q, got %q", in, want, got)
		}
	}
}
