package text

import "strings"

// Term is a lexicon entry prepared for matching against a Document.
// A single word matches whole words only; a trailing '*' turns it into a
// word-prefix match. Terms with more than one word are phrases and match
// as a word-bounded substring of the normalized text.
type Term struct {
	Text   string
	Prefix bool
	Phrase bool
}

// ParseTerm normalizes a raw lexicon entry. It reports false when nothing
// matchable is left after normalization.
func ParseTerm(raw string) (Term, bool) {
	raw = strings.TrimSpace(raw)
	prefix := strings.HasSuffix(raw, "*")
	normalized := Normalize(strings.TrimSuffix(raw, "*"))
	if normalized == "" {
		return Term{}, false
	}
	return Term{
		Text:   normalized,
		Prefix: prefix,
		Phrase: strings.Contains(normalized, " "),
	}, true
}

// ParseTerms parses a list of raw entries, dropping empty and duplicate ones
func ParseTerms(raw []string) []Term {
	terms := make([]Term, 0, len(raw))
	seen := make(map[Term]bool)
	for _, r := range raw {
		t, ok := ParseTerm(r)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		terms = append(terms, t)
	}
	return terms
}

// String returns the term in lexicon notation
func (t Term) String() string {
	if t.Prefix {
		return t.Text + "*"
	}
	return t.Text
}

// MatchWord reports whether a single normalized token matches the term.
// Phrases never match a single token.
func (t Term) MatchWord(word string) bool {
	if t.Phrase {
		return false
	}
	if t.Prefix {
		return strings.HasPrefix(word, t.Text)
	}
	return word == t.Text
}

// Document holds the raw, normalized and tokenized forms of one input text.
// It is immutable after construction and safe to share between scorers.
type Document struct {
	Raw        string
	Normalized string
	Words      []string
	Sentences  []string

	vocab  map[string]int
	padded string
}

// NewDocument normalizes raw and prepares it for matching
func NewDocument(raw string) *Document {
	normalized := Normalize(raw)
	words := Words(normalized)

	vocab := make(map[string]int, len(words))
	for _, w := range words {
		vocab[w]++
	}

	return &Document{
		Raw:        raw,
		Normalized: normalized,
		Words:      words,
		Sentences:  SplitSentences(raw),
		vocab:      vocab,
		padded:     " " + normalized + " ",
	}
}

// WordCount returns the number of normalized tokens
func (d *Document) WordCount() int {
	return len(d.Words)
}

// Contains reports whether the term occurs anywhere in the document
func (d *Document) Contains(t Term) bool {
	if t.Phrase {
		needle := " " + t.Text
		if !t.Prefix {
			needle += " "
		}
		return strings.Contains(d.padded, needle)
	}

	if !t.Prefix {
		return d.vocab[t.Text] > 0
	}
	for w := range d.vocab {
		if strings.HasPrefix(w, t.Text) {
			return true
		}
	}
	return false
}

// Matched returns the terms that occur in the document, preserving order
func (d *Document) Matched(terms []Term) []string {
	var matched []string
	for _, t := range terms {
		if d.Contains(t) {
			matched = append(matched, t.String())
		}
	}
	return matched
}
