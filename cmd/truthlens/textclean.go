// cmd/truthlens/textclean.go
package main

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// isBasicRune reports whether r survives CleanText: ASCII letters and
// digits, whitespace, . , ! ? - and the em dash plus straight and curly quotes.
func isBasicRune(r rune) bool {
	switch {
	case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return true
	case unicode.IsSpace(r):
		return true
	}
	switch r {
	case '.', ',', '!', '?', '-', '—', '\'', '"', '‘', '’', '“', '”':
		return true
	}
	return false
}

// CleanText prepares text for prompting: NFKC normalization, HTML unescape,
// tag and URL removal, allow-list filtering, lowercasing and whitespace
// collapsing.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)

	text = html.UnescapeString(text)
	text = htmlTagPattern.ReplaceAllString(text, " ")

	text = urlPattern.ReplaceAllString(text, " ")

	text = strings.Map(func(r rune) rune {
		if isBasicRune(r) {
			return r
		}
		return ' '
	}, text)

	text = strings.ToLower(text)

	return strings.Join(strings.Fields(text), " ")
}

// SafeShorten truncates text to maxChars characters, backing off to the last
// space so no word is split, and appends "...". Shorter text is returned as is.
func SafeShorten(text string, maxChars int) string {
	runes := []rune(text)
	if text == "" || len(runes) <= maxChars {
		return text
	}

	if maxChars < 0 {
		maxChars = 0
	}
	cut := string(runes[:maxChars])
	if lastSpace := strings.LastIndex(cut, " "); lastSpace != -1 {
		cut = cut[:lastSpace]
	}
	return cut + "..."
}

// ExtractLead returns roughly the first n sentences of text. Sentences end
// at whitespace following '.', '!' or '?'; abbreviations and decimals are
// not special-cased.
func ExtractLead(text string, sentences int) string {
	if text == "" || sentences <= 0 {
		return ""
	}

	parts := splitSentences(text)
	if len(parts) > sentences {
		parts = parts[:sentences]
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// splitSentences splits on every whitespace run that directly follows a
// sentence terminator. The whitespace itself is dropped.
func splitSentences(text string) []string {
	var (
		parts []string
		start int
		prev  rune
	)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) && (prev == '.' || prev == '!' || prev == '?') {
			end := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			parts = append(parts, string(runes[start:end]))
			start = i
			if i < len(runes) {
				prev = runes[i]
			}
			continue
		}
		prev = r
	}

	return append(parts, string(runes[start:]))
}
