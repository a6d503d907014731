package llm

import (
	"context"
	"strings"
	"testing"
)

type stubProvider struct{}

func (stubProvider) Execute(context.Context, Request) (*Response, error) {
	return &Response{Content: "{}"}, nil
}
func (stubProvider) Name() string  { return "stub" }
func (stubProvider) Model() string { return "stub-1" }

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider("nope", ProviderConfig{})
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("expected unknown provider error, got %v", err)
	}
}

func TestNewProvider_RequiresKey(t *testing.T) {
	for _, name := range []string{"anthropic", "openai"} {
		if _, err := NewProvider(name, ProviderConfig{}); err == nil {
			t.Errorf("%s: expected error without API key", name)
		}
	}
}

func TestNewProvider_DefaultModel(t *testing.T) {
	p, err := NewProvider("anthropic", ProviderConfig{APIKey: "test"})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if p.Model() != DefaultModels["anthropic"] || p.Name() != "anthropic" {
		t.Errorf("unexpected provider %s/%s", p.Name(), p.Model())
	}
}

func TestRegisterProvider(t *testing.T) {
	RegisterProvider("stub", func(ProviderConfig) (Provider, error) { return stubProvider{}, nil })
	defer delete(registry, "stub")

	p, err := NewProvider("stub", ProviderConfig{})
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if p.Name() != "stub" {
		t.Errorf("expected stub, got %s", p.Name())
	}
}

func TestDetectProvider(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	name, key := DetectProvider()
	if name != "openai" || key != "sk-test" {
		t.Errorf("expected openai/sk-test, got %s/%s", name, key)
	}

	t.Setenv("ANTHROPIC_API_KEY", "ant-test")
	if name, _ := DetectProvider(); name != "anthropic" {
		t.Errorf("expected anthropic to take priority, got %s", name)
	}
}

func TestRequiredNames(t *testing.T) {
	if got := requiredNames([]any{"a", 1, "b"}); len(got) != 2 || got[1] != "b" {
		t.Errorf("unexpected %v", got)
	}
	if got := requiredNames([]string{"id"}); len(got) != 1 {
		t.Errorf("unexpected %v", got)
	}
	if got := requiredNames(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
