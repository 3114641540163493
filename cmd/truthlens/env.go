// cmd/truthlens/env.go
package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env if present. Variables already set in the environment win.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			Logger().Warning("Failed to load %s: %v", p, err)
		}
	}
}

// GetEnvString gets a string from environment variables with a default value
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer from environment variables with a default value
func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		Logger().Warning("Ignoring invalid integer for %s: %q", key, value)
	}
	return defaultValue
}

// GetEnvFloat gets a float64 from environment variables with a default value
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		Logger().Warning("Ignoring invalid number for %s: %q", key, value)
	}
	return defaultValue
}

// ApplyEnvConfig overrides cfg with any environment variables that are set
func ApplyEnvConfig(cfg *Config) {
	cfg.Port = GetEnvInt("PORT", cfg.Port)
	cfg.LogPath = GetEnvString("LOG_PATH", cfg.LogPath)
	cfg.LogLevel = GetEnvString("LOG_LEVEL", cfg.LogLevel)
	cfg.UserAgentString = GetEnvString("USER_AGENT", cfg.UserAgentString)
	cfg.RateLimitPerMinute = GetEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)

	cfg.LLM.APIKey = GetEnvString("OPENROUTER_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Endpoint = GetEnvString("OPENROUTER_ENDPOINT", cfg.LLM.Endpoint)
	cfg.LLM.Model = GetEnvString("OPENROUTER_MODEL", cfg.LLM.Model)
	cfg.LLM.Temperature = GetEnvFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.MaxTokens = GetEnvInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)

	cfg.Discord.BotToken = GetEnvString("DISCORD_BOT_TOKEN", cfg.Discord.BotToken)
	cfg.Discord.AppID = GetEnvString("DISCORD_APP_ID", cfg.Discord.AppID)
	cfg.Discord.GuildID = GetEnvString("DISCORD_GUILD_ID", cfg.Discord.GuildID)
}
