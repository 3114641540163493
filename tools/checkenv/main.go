package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: could not load .env: %v\n", err)
		}
	}

	required := []string{
		"OPENROUTER_API_KEY",
	}
	optional := []string{
		"OPENROUTER_ENDPOINT",
		"OPENROUTER_MODEL",
		"LLM_TEMPERATURE",
		"LLM_MAX_TOKENS",
		"PORT",
		"DISCORD_BOT_TOKEN",
		"DISCORD_APP_ID",
		"DISCORD_GUILD_ID",
	}
	missing := []string{}

	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		} else {
			fmt.Printf("%s is set\n", key)
		}
	}
	for _, key := range optional {
		if os.Getenv(key) == "" {
			fmt.Printf("%s not set (default applies)\n", key)
		} else {
			fmt.Printf("%s is set\n", key)
		}
	}

	if len(missing) > 0 {
		fmt.Printf("Missing environment variables: %v\n", missing)
		os.Exit(1)
	}
	fmt.Println("All required environment variables are set.")
}
