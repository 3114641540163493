// cmd/truthlens/llm_client.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// APIResponse is the decoded chat-completion body. Its shape varies between
// providers, so it is kept as a generic map and navigated defensively.
type APIResponse map[string]interface{}

// chatCompletionPayload mirrors openai.ChatCompletionRequest but always
// serializes temperature, which go-openai omits when it is zero.
type chatCompletionPayload struct {
	Model       string                         `json:"model"`
	Messages    []openai.ChatCompletionMessage `json:"messages"`
	Temperature float64                        `json:"temperature"`
	MaxTokens   int                            `json:"max_tokens"`
	TopP        float64                        `json:"top_p"`
	N           int                            `json:"n"`
}

// LLMClient sends chat-completion requests to the configured endpoint
type LLMClient struct {
	cfg    LLMConfig
	client *http.Client
}

// NewLLMClient creates a client bound to an immutable LLM configuration
func NewLLMClient(cfg LLMConfig) *LLMClient {
	return &LLMClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: CompletionTimeout,
		},
	}
}

// Config returns the client's configuration
func (c *LLMClient) Config() LLMConfig {
	return c.cfg
}

// Complete sends prompt as the user message and returns the decoded
// response body unmodified. No request is made without an API key.
func (c *LLMClient) Complete(ctx context.Context, prompt, model string, temperature float64, maxTokens int) (APIResponse, error) {
	if c.cfg.APIKey == "" {
		return nil, NewConfigError(ErrAuthMissing, "OPENROUTER_API_KEY not set in environment", nil)
	}

	payload := chatCompletionPayload{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        1.0,
		N:           1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewError(ErrorTypeInternal, "INTERNAL_002", "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewUpstreamError(ErrUpstreamTransport, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewUpstreamError(ErrUpstreamTransport, "chat completion request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUpstreamError(ErrUpstreamTransport, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstreamErr := NewUpstreamError(ErrUpstreamStatus,
			fmt.Sprintf("chat completion returned status %s", resp.Status),
			describeUpstreamError(respBody))
		upstreamErr.StatusCode = resp.StatusCode
		return nil, upstreamErr
	}

	var decoded APIResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, NewUpstreamError(ErrUpstreamDecode, "response body is not a JSON object", err)
	}
	if decoded == nil {
		return nil, NewUpstreamError(ErrUpstreamDecode, "response body is not a JSON object", nil)
	}

	return decoded, nil
}

// describeUpstreamError turns a provider error body into an error, using
// the OpenAI error envelope when the body has one.
func describeUpstreamError(body []byte) error {
	var errResp openai.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != nil && errResp.Error.Message != "" {
		return errors.New(errResp.Error.Message)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return nil
	}
	if runes := []rune(text); len(runes) > 300 {
		text = string(runes[:300]) + "..."
	}
	return errors.New(text)
}
