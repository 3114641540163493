// cmd/truthlens/config.go
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LLMConfig holds the chat-completion settings. It is built once at
// startup and never modified.
type LLMConfig struct {
	APIKey      string  `yaml:"-" json:"-"`
	Endpoint    string  `yaml:"endpoint" json:"endpoint"`
	Model       string  `yaml:"model" json:"model"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
}

// DiscordConfig holds the optional Discord front-end settings
type DiscordConfig struct {
	BotToken string `yaml:"-" json:"-"`
	AppID    string `yaml:"app_id" json:"app_id"`
	GuildID  string `yaml:"guild_id" json:"guild_id"`
}

// Enabled reports whether enough is configured to start the bot
func (d DiscordConfig) Enabled() bool {
	return d.BotToken != "" && d.AppID != ""
}

// Config holds application configuration
type Config struct {
	Version            string        `yaml:"version" json:"version"`
	Port               int           `yaml:"port" json:"port"`
	LogPath            string        `yaml:"log_path" json:"log_path"`
	LogLevel           string        `yaml:"log_level" json:"log_level"`
	UserAgentString    string        `yaml:"user_agent" json:"user_agent"`
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
	LLM                LLMConfig     `yaml:"llm" json:"llm"`
	Discord            DiscordConfig `yaml:"discord" json:"discord"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Version:            AppVersion,
		Port:               DefaultPort,
		LogPath:            DefaultLogPath,
		LogLevel:           "info",
		UserAgentString:    DefaultUserAgent,
		RateLimitPerMinute: MaxRequestsPerMinute,
		LLM: LLMConfig{
			Endpoint:    DefaultEndpoint,
			Model:       DefaultModel,
			Temperature: DefaultTemperature,
			MaxTokens:   DefaultMaxTokens,
		},
	}
}

// LoadConfigFile overlays a YAML file onto cfg. A missing file is not an error.
func LoadConfigFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return NewConfigError(ErrConfigLoad, fmt.Sprintf("failed to read %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return NewConfigError(ErrConfigLoad, fmt.Sprintf("failed to parse %s", path), err)
	}
	return nil
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// and finally the environment.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	if err := LoadConfigFile(cfg, GetEnvString("TRUTHLENS_CONFIG", DefaultConfigPath)); err != nil {
		return nil, err
	}

	ApplyEnvConfig(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateConfig validates the configuration. A missing API key is allowed
// here; it is reported per request instead.
func ValidateConfig(cfg *Config) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return NewConfigError(ErrConfigValidation, fmt.Sprintf("invalid port %d", cfg.Port), nil)
	}
	if cfg.LLM.MaxTokens < 0 {
		return NewConfigError(ErrConfigValidation, "LLM_MAX_TOKENS must not be negative", nil)
	}
	if cfg.LLM.Endpoint == "" {
		return NewConfigError(ErrConfigValidation, "OPENROUTER_ENDPOINT must not be empty", nil)
	}
	if cfg.RateLimitPerMinute <= 0 {
		return NewConfigError(ErrConfigValidation, "RATE_LIMIT_PER_MINUTE must be positive", nil)
	}
	return nil
}
