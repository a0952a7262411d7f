// Package text prepares raw article text for lexicon matching.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lower-cases s, drops every character that is not an ASCII word
// character or whitespace, collapses whitespace runs to one space and trims
// the ends. Accented letters are folded to their base letter first, so
// "Café" becomes "cafe". The output is ASCII, which makes Normalize idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)

	// transform.Chain keeps state, build one per call
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))

	pendingSpace := false
	for _, r := range folded {
		if unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if !isWordRune(r) {
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Words splits normalized text into whitespace separated tokens
func Words(normalized string) []string {
	return strings.Fields(normalized)
}

// SplitSentences splits raw text into sentences on '.', '!' and '?' followed
// by whitespace. Terminators stay attached to their sentence.
func SplitSentences(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		current.WriteByte(c)

		if c == '.' || c == '!' || c == '?' {
			// Swallow runs like "!!!" or "?!" before deciding
			for i+1 < len(raw) && (raw[i+1] == '.' || raw[i+1] == '!' || raw[i+1] == '?') {
				i++
				current.WriteByte(raw[i])
			}
			if i+1 >= len(raw) || raw[i+1] == ' ' || raw[i+1] == '\t' || raw[i+1] == '\n' {
				flush()
			}
		}
	}
	flush()

	return sentences
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}
