// Package config loads dafty settings from flags, the environment, an
// optional .dafty.yaml and a .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/amineremache/dafty-mcp/pkg/daft"
	"github.com/amineremache/dafty-mcp/pkg/daftapi"
	"github.com/amineremache/dafty-mcp/pkg/fetcher"
	"github.com/amineremache/dafty-mcp/pkg/llm"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "DAFTY"

// Fetch modes.
const (
	FetchStatic  = "static"
	FetchDynamic = "dynamic"
)

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	APIBaseURL        string        `mapstructure:"api_base_url" validate:"required,url"`
	APIKey            string        `mapstructure:"api_key"`
	MaxPages          int           `mapstructure:"max_pages" validate:"gte=1,lte=50"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelay        time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	UserAgent         string        `mapstructure:"user_agent"`
	PageDelay         time.Duration `mapstructure:"page_delay" validate:"gte=0"`
	DetailDelay       time.Duration `mapstructure:"detail_delay" validate:"gte=0"`
	DetailConcurrency int           `mapstructure:"detail_concurrency" validate:"gte=0"`
	FetchMode         string        `mapstructure:"fetch_mode" validate:"oneof=static dynamic"`
	LogLevel          string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LLMProvider       string        `mapstructure:"llm_provider" validate:"omitempty,oneof=anthropic openai"`
	LLMModel          string        `mapstructure:"llm_model"`
	LLMAPIKey         string        `mapstructure:"llm_api_key"`
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	fc := fetcher.DefaultConfig()
	dc := daft.DefaultConfig()

	v.SetDefault("base_url", dc.BaseURL)
	v.SetDefault("api_base_url", daftapi.DefaultConfig().BaseURL)
	v.SetDefault("api_key", "")
	v.SetDefault("max_pages", dc.MaxPages)
	v.SetDefault("max_retries", fc.MaxRetries)
	v.SetDefault("retry_delay", fc.RetryDelay)
	v.SetDefault("request_timeout", fc.Timeout)
	v.SetDefault("user_agent", fc.UserAgent)
	v.SetDefault("page_delay", dc.PageDelay)
	v.SetDefault("detail_delay", dc.DetailDelay)
	v.SetDefault("detail_concurrency", 0)
	v.SetDefault("fetch_mode", FetchStatic)
	v.SetDefault("log_level", "info")
	v.SetDefault("llm_provider", "")
	v.SetDefault("llm_model", "")
	v.SetDefault("llm_api_key", "")
}

// Load resolves the configuration. A "config" key on v names an explicit
// config file; otherwise .dafty.yaml is looked up in the working directory
// and the home directory, and its absence is not an error.
func Load(v *viper.Viper) (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "DAFT_API_KEY")

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".dafty")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.FetchMode = strings.ToLower(strings.TrimSpace(cfg.FetchMode))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %s", fe.Field(), tagWithParam(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func tagWithParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// FetchConfig returns the fetcher settings.
func (c Config) FetchConfig() fetcher.Config {
	fc := fetcher.DefaultConfig()
	fc.Timeout = c.RequestTimeout
	fc.MaxRetries = c.MaxRetries
	fc.RetryDelay = c.RetryDelay
	if c.UserAgent != "" {
		fc.UserAgent = c.UserAgent
	}
	return fc
}

// ClientOptions translates the configuration into daft.Client options.
// In dynamic mode a headless browser fetcher is created; the client owns it
// and releases it on Close.
func (c Config) ClientOptions() []daft.Option {
	fc := c.FetchConfig()
	opts := []daft.Option{
		daft.WithBaseURL(c.BaseURL),
		daft.WithMaxPages(c.MaxPages),
		daft.WithDelays(c.PageDelay, c.DetailDelay),
		daft.WithDetailConcurrency(c.DetailConcurrency),
		daft.WithFetchConfig(fc),
		daft.WithAPI(daftapi.Config{
			BaseURL: c.APIBaseURL,
			APIKey:  c.APIKey,
			Timeout: c.RequestTimeout,
		}),
	}
	if c.FetchMode == FetchDynamic {
		opts = append(opts, daft.WithFetcher(fetcher.NewDynamic(fc, "")))
	}
	return opts
}

// NewLLMProvider returns the provider for the query translator, or nil when
// no provider is configured or detectable from the environment.
func (c Config) NewLLMProvider() (llm.Provider, error) {
	name, key := c.LLMProvider, c.LLMAPIKey
	if name == "" {
		name, key = llm.DetectProvider()
		if name == "" {
			return nil, nil
		}
	}
	if key == "" {
		key = llm.APIKeyFromEnv(name)
	}

	pc := llm.DefaultProviderConfig()
	pc.APIKey = key
	pc.Model = c.LLMModel
	return llm.NewProvider(name, pc)
}
