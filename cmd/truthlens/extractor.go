// cmd/truthlens/extractor.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const codeFence = "```"

// jsonBlockPattern spans the first '{' to the last '}' with no regard for
// nesting.
var jsonBlockPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractMessageText pulls the assistant text out of a chat-completion
// response. It looks at the first element of "choices" (or "result") for
// message.content, text or content. Anything it cannot navigate is returned
// as the serialized response so the caller always has something to show.
func ExtractMessageText(resp APIResponse) string {
	choices := resp["choices"]
	if isEmptyValue(choices) {
		choices = resp["result"]
	}

	if list, ok := choices.([]interface{}); ok && len(list) > 0 {
		if first, ok := list[0].(map[string]interface{}); ok {
			if msg, ok := first["message"].(map[string]interface{}); ok {
				return stringValue(msg["content"])
			}
			if text, ok := first["text"]; ok {
				return stringValue(text)
			}
			if content, ok := first["content"]; ok {
				return stringValue(content)
			}
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(resp))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// ExtractJSONFromText locates and parses the JSON object embedded in a
// model reply. A leading code fence is unwrapped when one of its segments
// starts with '{'. If strict parsing fails, every single quote is replaced
// by a double quote and parsing is retried; that also rewrites apostrophes
// inside values. ok is false when no object could be parsed.
func ExtractJSONFromText(raw string) (map[string]interface{}, bool) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, codeFence) {
		for _, part := range strings.Split(s, codeFence) {
			if strings.HasPrefix(strings.TrimSpace(part), "{") {
				s = part
				break
			}
		}
	}

	block := jsonBlockPattern.FindString(s)
	if block == "" {
		return nil, false
	}

	if parsed, ok := decodeObject(block); ok {
		return parsed, true
	}
	if parsed, ok := decodeObject(strings.ReplaceAll(block, "'", `"`)); ok {
		return parsed, true
	}
	return nil, false
}

func decodeObject(s string) (map[string]interface{}, bool) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return nil, false
	}
	return parsed, parsed != nil
}

// isEmptyValue matches the values that count as missing when choosing
// between "choices" and "result".
func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	}
	return false
}

// stringValue renders a decoded JSON value as display text. null becomes
// the empty string and structured values are re-encoded as JSON.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, bool:
		return fmt.Sprint(val)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
