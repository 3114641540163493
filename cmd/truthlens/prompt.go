// cmd/truthlens/prompt.go
package main

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert fact-checker."

const factCheckPromptTemplate = `
You are a careful fact-checker. Read the article snippet below and return ONLY a JSON object with these fields:
- claim: the single central factual claim (one sentence).
- label: one of ["Real","Fake","Misleading","Biased"].
- confidence: a number between 0.0 and 1.0.
- explanation: one short sentence explaining the label.
- evidence_urls: an array of up to 2 trustworthy URLs that support or refute the claim (or [] if none).

Output EXACTLY this JSON (no extra text):

{
  "claim": "...",
  "label": "Real|Fake|Misleading|Biased",
  "confidence": 0.00,
  "explanation": "...",
  "evidence_urls": ["https://...", "https://..."]
}

Article snippet:
%s
`

// BuildPrompt embeds the article snippet in the fact-check instructions.
// The snippet is capped at MaxSnippetChars characters with a "..." marker.
func BuildPrompt(articleText string) string {
	snippet := strings.TrimSpace(articleText)
	if runes := []rune(snippet); len(runes) > MaxSnippetChars {
		snippet = string(runes[:MaxSnippetChars]) + "..."
	}
	return fmt.Sprintf(factCheckPromptTemplate, snippet)
}
