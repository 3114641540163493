package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestVerdictEmbedColors(t *testing.T) {
	tests := []struct {
		label *string
		title string
		color int
	}{
		{strPtr("Real"), "Verdict: Real", colorReal},
		{strPtr("FAKE"), "Verdict: FAKE", colorFake},
		{strPtr("misleading"), "Verdict: misleading", colorMisleading},
		{strPtr("Biased"), "Verdict: Biased", colorBiased},
		{strPtr("Satire"), "Verdict: Satire", colorUnknown},
		{nil, "Verdict: Unknown", colorUnknown},
	}

	for _, tt := range tests {
		embed := VerdictEmbed(&Verdict{Label: tt.label})
		if embed.Title != tt.title || embed.Color != tt.color {
			t.Errorf("VerdictEmbed(%v) = %q %#x, want %q %#x", tt.label, embed.Title, embed.Color, tt.title, tt.color)
		}
	}
}

func TestVerdictEmbedFields(t *testing.T) {
	embed := VerdictEmbed(sampleVerdict())

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	if fields["Claim"] != "Courts received bomb threats" {
		t.Errorf("Claim = %q", fields["Claim"])
	}
	if fields["Confidence"] != "0.82" {
		t.Errorf("Confidence = %q", fields["Confidence"])
	}
	if fields["Evidence"] != "https://evidence.example/a" {
		t.Errorf("Evidence = %q", fields["Evidence"])
	}
}

func TestVerdictEmbedMissingValues(t *testing.T) {
	embed := VerdictEmbed(&Verdict{Claim: strPtr("  "), EvidenceURLs: []string{}})

	for _, f := range embed.Fields {
		switch f.Name {
		case "Claim", "Explanation":
			if f.Value != "—" {
				t.Errorf("%s = %q", f.Name, f.Value)
			}
		case "Confidence":
			if f.Value != "N/A" {
				t.Errorf("Confidence = %q", f.Value)
			}
		case "Evidence":
			t.Error("empty evidence rendered")
		}
	}
}

func TestVerdictEmbedTruncatesLongFields(t *testing.T) {
	long := strings.Repeat("é", 2000)
	embed := VerdictEmbed(&Verdict{Explanation: &long})

	for _, f := range embed.Fields {
		if f.Name != "Explanation" {
			continue
		}
		if n := utf8.RuneCountInString(f.Value); n != maxEmbedFieldLength {
			t.Fatalf("Explanation has %d characters", n)
		}
		if !strings.HasSuffix(f.Value, "...") {
			t.Fatalf("Explanation not marked as truncated")
		}
		return
	}
	t.Fatal("no Explanation field")
}

func TestVerifyCommandDefinition(t *testing.T) {
	if verifyCommand.Name != "verify" || len(verifyCommand.Options) != 2 {
		t.Fatalf("command = %+v", verifyCommand)
	}
	if opt := verifyCommand.Options[0]; opt.Name != "text" || !opt.Required {
		t.Errorf("text option = %+v", opt)
	}
	mode := verifyCommand.Options[1]
	if len(mode.Choices) != 2 || mode.Choices[0].Value != ModeText || mode.Choices[1].Value != ModeURL {
		t.Errorf("mode choices = %+v", mode.Choices)
	}
}
