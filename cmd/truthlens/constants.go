// cmd/truthlens/constants.go
package main

import "time"

// Application constants
const (
	// Application information
	AppName    = "TruthLens"
	AppVersion = "1.0.0"

	// Default configuration
	DefaultConfigPath = "config/truthlens.yml"
	DefaultLogPath    = "data/logs/truthlens.log"
	DefaultPort       = 8501

	// LLM defaults
	DefaultEndpoint    = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.0
	DefaultMaxTokens   = 400

	// Scraping
	DefaultUserAgent = "TruthLensBot/1.0 (+https://example.com)"
	MaxPageSize      = 10 * 1024 * 1024 // 10MB

	// Timeouts
	FetchTimeout      = 10 * time.Second
	CompletionTimeout = 30 * time.Second
	ShutdownTimeout   = 15 * time.Second

	// Text preparation
	MaxSnippetChars = 1500
	LeadSentences   = 2

	// Rate limits
	MaxRequestsPerMinute = 60

	// Error buffer
	MaxRecentErrors = 100
)

// Verdict labels the prompt asks for. Replies are not validated against these.
const (
	LabelReal       = "Real"
	LabelFake       = "Fake"
	LabelMisleading = "Misleading"
	LabelBiased     = "Biased"
)

// Input modes
const (
	ModeText = "text"
	ModeURL  = "url"
)
