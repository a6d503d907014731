package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// isolate keeps the test independent of the developer's environment and
// home directory config.
func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DAFTY_BASE_URL", "DAFTY_MAX_PAGES", "DAFTY_API_KEY", "DAFT_API_KEY",
		"DAFTY_FETCH_MODE", "DAFTY_PAGE_DELAY", "DAFTY_LOG_LEVEL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dafty.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// --- Load Tests ---

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL != "https://www.daft.ie" {
		t.Errorf("expected default base URL, got %s", cfg.BaseURL)
	}
	if cfg.APIBaseURL != "https://api.daft.ie/v3" {
		t.Errorf("expected default API base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.MaxPages != 5 {
		t.Errorf("expected max pages 5, got %d", cfg.MaxPages)
	}
	if cfg.MaxRetries != 2 || cfg.RetryDelay != time.Second {
		t.Errorf("expected 2 retries at 1s, got %d at %s", cfg.MaxRetries, cfg.RetryDelay)
	}
	if cfg.PageDelay != time.Second || cfg.DetailDelay != 500*time.Millisecond {
		t.Errorf("unexpected delays %s/%s", cfg.PageDelay, cfg.DetailDelay)
	}
	if cfg.FetchMode != FetchStatic || cfg.LogLevel != "info" {
		t.Errorf("unexpected mode/level %s/%s", cfg.FetchMode, cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "max_pages: 3\npage_delay: 250ms\nfetch_mode: Dynamic\n")

	v := viper.New()
	v.Set("config", path)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPages != 3 {
		t.Errorf("expected 3, got %d", cfg.MaxPages)
	}
	if cfg.PageDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.PageDelay)
	}
	if cfg.FetchMode != FetchDynamic {
		t.Errorf("expected dynamic, got %s", cfg.FetchMode)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "max_pages: 3\n")
	t.Setenv("DAFTY_MAX_PAGES", "7")

	v := viper.New()
	v.Set("config", path)
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPages != 7 {
		t.Errorf("expected env value 7, got %d", cfg.MaxPages)
	}
}

func TestLoad_LegacyAPIKeyEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DAFT_API_KEY", "legacy-key")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "legacy-key" {
		t.Errorf("expected legacy-key, got %q", cfg.APIKey)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"max pages":  "max_pages: 0\n",
		"retries":    "max_retries: 11\n",
		"fetch mode": "fetch_mode: carrier-pigeon\n",
		"base url":   "base_url: not a url\n",
		"log level":  "log_level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			v := viper.New()
			v.Set("config", writeConfig(t, body))
			_, err := Load(v)
			if err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Errorf("expected invalid config error, got %v", err)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	v := viper.New()
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(v); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// --- Derived settings Tests ---

func TestFetchConfig(t *testing.T) {
	cfg := Config{RequestTimeout: 3 * time.Second, MaxRetries: 4, RetryDelay: 10 * time.Millisecond}
	fc := cfg.FetchConfig()
	if fc.Timeout != 3*time.Second || fc.MaxRetries != 4 || fc.RetryDelay != 10*time.Millisecond {
		t.Errorf("unexpected fetch config %+v", fc)
	}
	if fc.UserAgent == "" {
		t.Error("expected default user agent to be kept")
	}
}

func TestNewLLMProvider(t *testing.T) {
	isolate(t)

	p, err := Config{}.NewLLMProvider()
	if err != nil || p != nil {
		t.Fatalf("expected no provider without keys, got %v, %v", p, err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	p, err = Config{LLMModel: "gpt-test"}.NewLLMProvider()
	if err != nil {
		t.Fatalf("NewLLMProvider() error = %v", err)
	}
	if p.Name() != "openai" || p.Model() != "gpt-test" {
		t.Errorf("unexpected provider %s/%s", p.Name(), p.Model())
	}

	if _, err := (Config{LLMProvider: "anthropic"}).NewLLMProvider(); err == nil {
		t.Error("expected error for anthropic without a key")
	}
}
