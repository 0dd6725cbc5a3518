// Package config loads flashiz settings from defaults, an optional config
// file, a .env file, FLASHIZ_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/flashiz/internal/api"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FLASHIZ"

// Config is the resolved application configuration.
type Config struct {
	APIURL         string        `mapstructure:"api_url"`
	DB             string        `mapstructure:"db"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	Log   LogConfig   `mapstructure:"log"`
	Retry RetryConfig `mapstructure:"retry"`
	Quiz  QuizConfig  `mapstructure:"quiz"`
	Serve ServeConfig `mapstructure:"serve"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
}

// QuizConfig holds the answer-feedback pacing.
type QuizConfig struct {
	RevealDelay     time.Duration `mapstructure:"reveal_delay"`
	TransitionDelay time.Duration `mapstructure:"transition_delay"`
}

// ServeConfig configures the bundled reference backend.
type ServeConfig struct {
	Addr      string `mapstructure:"addr"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"api-url":   "api_url",
	"db":        "db",
	"log-level": "log.level",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", api.DefaultBaseURL)
	v.SetDefault("db", "")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("retry.max_attempts", 1)
	v.SetDefault("retry.initial_wait", 500*time.Millisecond)
	v.SetDefault("retry.max_wait", 5*time.Second)
	v.SetDefault("quiz.reveal_delay", 2*time.Second)
	v.SetDefault("quiz.transition_delay", 600*time.Millisecond)
	v.SetDefault("serve.addr", ":5000")
	v.SetDefault("serve.jwt_secret", "")
}

// Load resolves the configuration. configFile may be empty, in which case
// config.yaml is looked up in the user config directory and the working
// directory; a missing file is not an error. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &c, nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/flashiz or ~/.config/flashiz.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "flashiz")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flashiz")
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url cannot be empty")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.InitialWait < 0 || c.Retry.MaxWait < c.Retry.InitialWait {
		return fmt.Errorf("retry.max_wait must be >= retry.initial_wait")
	}
	if c.Quiz.RevealDelay < 0 || c.Quiz.TransitionDelay < 0 {
		return fmt.Errorf("quiz delays cannot be negative")
	}
	return nil
}

// APIRetry converts the retry settings for the API client.
func (c *Config) APIRetry() api.RetryConfig {
	rc := api.DefaultRetryConfig()
	rc.MaxAttempts = c.Retry.MaxAttempts
	rc.InitialWait = c.Retry.InitialWait
	rc.MaxWait = c.Retry.MaxWait
	return rc
}

// FeedbackDelay is how long an answer's feedback stays before the next card.
func (c *Config) FeedbackDelay() time.Duration {
	return c.Quiz.RevealDelay + c.Quiz.TransitionDelay
}
