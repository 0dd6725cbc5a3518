package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. An empty Provider disables
// LLM features.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig has no provider selected. Hints are short, so the
// defaults favour small fast models and a tight timeout.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2,
		},
		Timeout: 15 * time.Second,
	}
}

// envOverrides lists the FLASHIZ_* variables and the field each sets.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"FLASHIZ_LLM_PROVIDER":       &cfg.Provider,
		"FLASHIZ_ANTHROPIC_API_KEY":  &cfg.Anthropic.APIKey,
		"FLASHIZ_ANTHROPIC_MODEL":    &cfg.Anthropic.Model,
		"FLASHIZ_OPENAI_API_KEY":     &cfg.OpenAI.APIKey,
		"FLASHIZ_OPENAI_MODEL":       &cfg.OpenAI.Model,
		"FLASHIZ_OPENAI_BASE_URL":    &cfg.OpenAI.BaseURL,
		"FLASHIZ_GEMINI_API_KEY":     &cfg.Gemini.APIKey,
		"FLASHIZ_GEMINI_MODEL":       &cfg.Gemini.Model,
		"FLASHIZ_OPENROUTER_API_KEY": &cfg.OpenRouter.APIKey,
		"FLASHIZ_OPENROUTER_MODEL":   &cfg.OpenRouter.Model,
	}
}

// ConfigFromEnv applies FLASHIZ_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range envOverrides(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if d, err := time.ParseDuration(os.Getenv("FLASHIZ_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	return cfg
}

// discoverKeys are the vendors' own API key variables, probed in order.
var discoverKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Resolve returns the FLASHIZ_* configuration when it names a provider,
// otherwise the first vendor key found in the environment. The result has
// an empty Provider when neither is set.
func Resolve() Config {
	cfg := ConfigFromEnv()
	if cfg.Provider != "" {
		return cfg
	}
	for _, k := range discoverKeys {
		key := os.Getenv(k.env)
		if key == "" {
			continue
		}
		cfg.Provider = k.provider
		switch k.provider {
		case ProviderGemini:
			cfg.Gemini.APIKey = key
		case ProviderOpenAI:
			cfg.OpenAI.APIKey = key
		case ProviderAnthropic:
			cfg.Anthropic.APIKey = key
		case ProviderOpenRouter:
			cfg.OpenRouter.APIKey = key
		}
		break
	}
	return cfg
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != "none"
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "", "none", ProviderMock:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("FLASHIZ_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
