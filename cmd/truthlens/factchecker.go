// cmd/truthlens/factchecker.go
package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Verdict is the normalized result of one verification. Optional fields are
// nil when the model did not supply them.
type Verdict struct {
	Claim        *string  `json:"claim"`
	Label        *string  `json:"label"`
	Confidence   *float64 `json:"confidence"`
	Explanation  *string  `json:"explanation"`
	EvidenceURLs []string `json:"evidence_urls"`
	RawLLMText   string   `json:"raw_llm_text"`
}

// ErrorVerdict renders a failed verification as a Verdict so the user
// always gets a result.
func ErrorVerdict(err error) *Verdict {
	explanation := fmt.Sprintf("LLM error: %v", err)
	return &Verdict{
		Explanation:  &explanation,
		EvidenceURLs: []string{},
		RawLLMText:   err.Error(),
	}
}

// LabelOrUnknown returns the label, or "Unknown" when it is absent
func (v *Verdict) LabelOrUnknown() string {
	if v.Label == nil || *v.Label == "" {
		return "Unknown"
	}
	return *v.Label
}

// FactChecker runs the prompt, completion and extraction pipeline
type FactChecker struct {
	client *LLMClient
}

// NewFactChecker creates a new fact checker instance
func NewFactChecker(client *LLMClient) *FactChecker {
	return &FactChecker{client: client}
}

// Verify asks the model to judge articleText and normalizes its reply.
// An unparseable reply is not an error: the Verdict then only carries the
// raw text. A non-numeric confidence is an error.
func (fc *FactChecker) Verify(ctx context.Context, articleText string) (*Verdict, error) {
	prompt := BuildPrompt(articleText)
	cfg := fc.client.Config()

	resp, err := fc.client.Complete(ctx, prompt, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	if err != nil {
		return nil, err
	}

	rawMessage := ExtractMessageText(resp)
	parsed, ok := ExtractJSONFromText(rawMessage)
	if !ok {
		Logger().Debug("No JSON object found in model reply (%d chars)", len(rawMessage))
		parsed = map[string]interface{}{}
	}

	verdict := &Verdict{
		Claim:        optionalString(parsed["claim"]),
		Label:        optionalString(parsed["label"]),
		Explanation:  optionalString(parsed["explanation"]),
		EvidenceURLs: []string{},
		RawLLMText:   rawMessage,
	}

	if raw, ok := parsed["confidence"]; ok && raw != nil {
		confidence, err := coerceConfidence(raw)
		if err != nil {
			return nil, err
		}
		verdict.Confidence = &confidence
	}

	if urls, ok := parsed["evidence_urls"].([]interface{}); ok {
		for _, u := range urls {
			verdict.EvidenceURLs = append(verdict.EvidenceURLs, stringValue(u))
		}
	}

	return verdict, nil
}

// optionalString passes a parsed field through, rendering non-string
// values as text.
func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := stringValue(v)
	return &s
}

// coerceConfidence converts numbers, numeric strings and booleans to a
// finite float64. NaN and infinities cannot be rendered as JSON.
func coerceConfidence(v interface{}) (float64, error) {
	f, err := parseConfidence(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, NewParseError(ErrConfidenceCoercion,
			fmt.Sprintf("confidence %v is not a finite number", v), nil)
	}
	return f, nil
}

func parseConfidence(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, NewParseError(ErrConfidenceCoercion,
				fmt.Sprintf("could not convert confidence %q to float", val), err)
		}
		return f, nil
	}
	return 0, NewParseError(ErrConfidenceCoercion,
		fmt.Sprintf("confidence has non-numeric type %T", v), nil)
}
