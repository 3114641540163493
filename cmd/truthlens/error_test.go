package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTruthLensErrorFormatting(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewUpstreamError(ErrUpstreamTransport, "chat completion request failed", inner)

	if got := err.Error(); got != "[upstream-UPSTREAM_002] chat completion request failed: connection reset" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("inner error not unwrapped")
	}

	bare := NewConfigError(ErrAuthMissing, "OPENROUTER_API_KEY not set in environment", nil)
	if got := bare.Error(); got != "[config-AUTH_001] OPENROUTER_API_KEY not set in environment" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHasErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", NewParseError(ErrConfidenceCoercion, "bad confidence", nil))

	if !HasErrorCode(wrapped, ErrConfidenceCoercion) {
		t.Error("code not found through wrapping")
	}
	if HasErrorCode(wrapped, ErrAuthMissing) {
		t.Error("matched the wrong code")
	}
	if HasErrorCode(errors.New("plain"), ErrAuthMissing) || HasErrorCode(nil, ErrAuthMissing) {
		t.Error("matched a non-TruthLens error")
	}
}

func TestErrorBuffer(t *testing.T) {
	b := NewErrorBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Add(&ErrorEvent{Code: fmt.Sprintf("E%d", i), Time: time.Now()})
	}

	if b.Len() != 3 {
		t.Fatalf("Len() = %d", b.Len())
	}

	var codes []string
	for _, ev := range b.GetRecent(0) {
		codes = append(codes, ev.Code)
	}
	if got := strings.Join(codes, ","); got != "E5,E4,E3" {
		t.Fatalf("GetRecent(0) = %s", got)
	}
	if got := b.GetRecent(2); len(got) != 2 || got[0].Code != "E5" {
		t.Fatalf("GetRecent(2) = %v", got)
	}
}

func TestErrorHandlerRecordsEvents(t *testing.T) {
	h := NewErrorHandler(10)
	h.Handle(nil, "ignored", "")
	h.Handle(NewFetchError("failed to scrape", errors.New("timeout")), "fetch", "req-1")
	h.Handle(errors.New("unexpected"), "verify", "req-2")

	if h.Count() != 2 {
		t.Fatalf("Count() = %d", h.Count())
	}

	events := h.GetRecentErrors(0)
	if events[0].Type != ErrorTypeInternal || events[0].Code != "INTERNAL_001" || events[0].RequestID != "req-2" {
		t.Errorf("internal event = %+v", events[0])
	}
	if events[0].Stack == "" {
		t.Error("internal event has no stack")
	}
	if events[1].Type != ErrorTypeFetch || events[1].Code != ErrFetchFailure || events[1].Component != "fetch" {
		t.Errorf("fetch event = %+v", events[1])
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{2*time.Hour + 5*time.Second, "2h 5s"},
		{26*time.Hour + 3*time.Minute, "1d 2h 3m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
