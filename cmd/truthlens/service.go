// cmd/truthlens/service.go
package main

import (
	"context"
	"strings"
	"time"
)

// PageFetcher turns a URL into readable text, returning "" on failure
type PageFetcher interface {
	FetchReadableText(ctx context.Context, url string) string
}

// ClaimVerifier judges a prepared snippet
type ClaimVerifier interface {
	Verify(ctx context.Context, articleText string) (*Verdict, error)
}

// Verification stages reported to progress callbacks
const (
	StageFetching    = "fetching"
	StageNormalizing = "normalizing"
	StageVerifying   = "verifying"
)

// VerificationService wires input handling to the fact checker. Every
// front-end (web form, JSON API, websocket, Discord) goes through Run.
type VerificationService struct {
	fetcher  PageFetcher
	verifier ClaimVerifier
	errors   *ErrorHandler
}

// NewVerificationService creates the shared request pipeline
func NewVerificationService(fetcher PageFetcher, verifier ClaimVerifier, errs *ErrorHandler) *VerificationService {
	if errs == nil {
		errs = NewErrorHandler(MaxRecentErrors)
	}
	return &VerificationService{
		fetcher:  fetcher,
		verifier: verifier,
		errors:   errs,
	}
}

// ResolveText trims the input and, in URL mode, replaces it with the
// scraped page text when scraping succeeds.
func (vs *VerificationService) ResolveText(ctx context.Context, mode, input string) string {
	text := strings.TrimSpace(input)
	if mode == ModeURL && text != "" {
		if scraped := vs.fetcher.FetchReadableText(ctx, text); scraped != "" {
			return scraped
		}
		Logger().Info("Scrape of %s returned nothing, verifying the input as text", text)
	}
	return text
}

// PrepareSnippet reduces text to its lead, caps its length and cleans it
func PrepareSnippet(text string) string {
	snippet := ExtractLead(text, LeadSentences)
	if snippet == "" {
		snippet = text
	}
	snippet = SafeShorten(snippet, MaxSnippetChars)
	return CleanText(snippet)
}

// Run executes one verification. ok is false when there is no text to
// verify. Errors are recorded and returned as an error Verdict.
func (vs *VerificationService) Run(ctx context.Context, mode, input, requestID string, progress func(stage string)) (verdict *Verdict, ok bool) {
	report := func(stage string) {
		if progress != nil {
			progress(stage)
		}
	}

	if mode == ModeURL {
		report(StageFetching)
	}
	text := vs.ResolveText(ctx, mode, input)
	if text == "" {
		return nil, false
	}

	report(StageNormalizing)
	snippet := PrepareSnippet(text)

	report(StageVerifying)
	start := time.Now()
	verdict, err := vs.verifier.Verify(ctx, snippet)
	if err != nil {
		vs.errors.Handle(err, "verify", requestID)
		return ErrorVerdict(err), true
	}

	Logger().Info("Verified [%s] label=%s in %s", requestID, verdict.LabelOrUnknown(), time.Since(start).Round(time.Millisecond))
	return verdict, true
}
