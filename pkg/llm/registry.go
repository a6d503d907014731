package llm

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ProviderFactory creates providers from config.
type ProviderFactory func(cfg ProviderConfig) (Provider, error)

// DefaultModels maps provider names to their default models.
var DefaultModels = map[string]string{
	"anthropic": "claude-3-5-haiku-20241022",
	"openai":    "gpt-4o-mini",
}

// providerEnvKeys maps provider names to their API key environment variables,
// in detection priority order.
var providerEnvKeys = []struct {
	name string
	env  string
}{
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
}

var registry = map[string]ProviderFactory{}

func init() {
	RegisterProvider("anthropic", func(cfg ProviderConfig) (Provider, error) {
		p, err := NewAnthropicProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	RegisterProvider("openai", func(cfg ProviderConfig) (Provider, error) {
		p, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s (available: %s)", name, strings.Join(AvailableProviders(), ", "))
	}
	return factory(cfg)
}

// RegisterProvider adds a provider factory.
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// AvailableProviders returns the registered provider names, sorted.
func AvailableProviders() []string {
	providers := make([]string, 0, len(registry))
	for name := range registry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// DetectProvider picks a provider from the API keys present in the
// environment. It returns empty strings when none is set.
func DetectProvider() (provider string, apiKey string) {
	for _, p := range providerEnvKeys {
		if key := os.Getenv(p.env); key != "" {
			return p.name, key
		}
	}
	return "", ""
}

// APIKeyFromEnv returns the conventional environment key for provider.
func APIKeyFromEnv(provider string) string {
	for _, p := range providerEnvKeys {
		if p.name == provider {
			return os.Getenv(p.env)
		}
	}
	return ""
}
