package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

// newReplyChecker returns a FactChecker whose model always replies with content
func newReplyChecker(t *testing.T, content string) *FactChecker {
	t.Helper()
	client, _ := newTestLLMClient(t, "sk", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, completionBody(content))
	})
	return NewFactChecker(client)
}

func strPtr(s string) *string { return &s }

func TestVerifyFullVerdict(t *testing.T) {
	reply := `{"claim":"Courts received bomb threats","label":"Real","confidence":0.82,"explanation":"Widely reported.","evidence_urls":["https://a.example","https://b.example"]}`
	v, err := newReplyChecker(t, reply).Verify(context.Background(), "delhi courts got threats")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	want := &Verdict{
		Claim:        strPtr("Courts received bomb threats"),
		Label:        strPtr("Real"),
		Explanation:  strPtr("Widely reported."),
		EvidenceURLs: []string{"https://a.example", "https://b.example"},
		RawLLMText:   reply,
	}
	confidence := 0.82
	want.Confidence = &confidence

	if !reflect.DeepEqual(v, want) {
		t.Fatalf("Verify() = %+v, want %+v", v, want)
	}
}

func TestVerifyUnparseableReply(t *testing.T) {
	v, err := newReplyChecker(t, "no json here").Verify(context.Background(), "text")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if v.Claim != nil || v.Label != nil || v.Confidence != nil || v.Explanation != nil {
		t.Errorf("expected empty fields, got %+v", v)
	}
	if v.EvidenceURLs == nil || len(v.EvidenceURLs) != 0 {
		t.Errorf("EvidenceURLs = %#v, want empty list", v.EvidenceURLs)
	}
	if v.RawLLMText != "no json here" {
		t.Errorf("RawLLMText = %q", v.RawLLMText)
	}
	if v.LabelOrUnknown() != "Unknown" {
		t.Errorf("LabelOrUnknown() = %q", v.LabelOrUnknown())
	}
}

func TestVerifyConfidenceCoercion(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    *float64
		wantErr bool
	}{
		{"numeric string", `{"confidence":"0.7"}`, floatPtr(0.7), false},
		{"integer", `{"confidence":1}`, floatPtr(1), false},
		{"boolean", `{"confidence":true}`, floatPtr(1), false},
		{"null", `{"confidence":null}`, nil, false},
		{"absent", `{"label":"Real"}`, nil, false},
		{"out of range kept", `{"confidence":1.7}`, floatPtr(1.7), false},
		{"word", `{"confidence":"high"}`, nil, true},
		{"nan string", `{"confidence":"NaN"}`, nil, true},
		{"infinity string", `{"confidence":"inf"}`, nil, true},
		{"negative infinity string", `{"confidence":"-Infinity"}`, nil, true},
		{"list", `{"confidence":[0.5]}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newReplyChecker(t, tt.reply).Verify(context.Background(), "text")
			if tt.wantErr {
				if !HasErrorCode(err, ErrConfidenceCoercion) {
					t.Fatalf("Verify() error = %v, want %s", err, ErrConfidenceCoercion)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if !reflect.DeepEqual(v.Confidence, tt.want) {
				t.Fatalf("Confidence = %v, want %v", deref(v.Confidence), deref(tt.want))
			}
		})
	}
}

func TestVerifyPassesThroughUnexpectedValues(t *testing.T) {
	reply := "```json\n{'claim': 'x', 'label': 'Satire', 'evidence_urls': 'https://single.example'}\n```"
	v, err := newReplyChecker(t, reply).Verify(context.Background(), "text")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if v.Label == nil || *v.Label != "Satire" {
		t.Errorf("Label = %v, want Satire", v.Label)
	}
	if len(v.EvidenceURLs) != 0 {
		t.Errorf("non-list evidence produced %v", v.EvidenceURLs)
	}
	if v.RawLLMText != reply {
		t.Errorf("RawLLMText = %q", v.RawLLMText)
	}
}

func TestVerifyUsesConfiguredModel(t *testing.T) {
	var payload map[string]interface{}
	client, _ := newTestLLMClient(t, "sk", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		io.WriteString(w, completionBody(`{"label":"Fake"}`))
	})

	if _, err := NewFactChecker(client).Verify(context.Background(), "the article"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if payload["model"] != "test-model" || payload["max_tokens"] != 400.0 || payload["temperature"] != 0.0 {
		t.Errorf("payload = %v", payload)
	}

	messages, _ := payload["messages"].([]interface{})
	user, _ := messages[len(messages)-1].(map[string]interface{})
	content, _ := user["content"].(string)
	if !strings.Contains(content, "Article snippet:\nthe article\n") {
		t.Errorf("prompt does not embed the snippet: %q", content)
	}
}

func TestVerifyPropagatesClientErrors(t *testing.T) {
	client := NewLLMClient(LLMConfig{Endpoint: "http://127.0.0.1:0"})
	_, err := NewFactChecker(client).Verify(context.Background(), "text")
	if !HasErrorCode(err, ErrAuthMissing) {
		t.Fatalf("Verify() error = %v, want %s", err, ErrAuthMissing)
	}
}

func TestErrorVerdict(t *testing.T) {
	err := NewUpstreamError(ErrUpstreamStatus, "chat completion returned status 500", errors.New("boom"))
	v := ErrorVerdict(err)

	if v.Explanation == nil || !strings.HasPrefix(*v.Explanation, "LLM error: ") {
		t.Fatalf("Explanation = %v", v.Explanation)
	}
	if !strings.Contains(*v.Explanation, "boom") {
		t.Errorf("Explanation %q does not describe the failure", *v.Explanation)
	}
	if v.RawLLMText != err.Error() {
		t.Errorf("RawLLMText = %q", v.RawLLMText)
	}
	if v.Label != nil || v.Claim != nil || v.Confidence != nil {
		t.Errorf("error verdict has model fields: %+v", v)
	}
	if v.EvidenceURLs == nil {
		t.Error("EvidenceURLs is nil")
	}
}

func TestVerdictJSONShape(t *testing.T) {
	data, err := json.Marshal(&Verdict{EvidenceURLs: []string{}, RawLLMText: "r"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"claim":null,"label":null,"confidence":null,"explanation":null,"evidence_urls":[],"raw_llm_text":"r"}`
	if string(data) != want {
		t.Fatalf("json = %s, want %s", data, want)
	}
}

func floatPtr(f float64) *float64 { return &f }

func deref(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
