// Package lexicon holds the keyword tables that drive credibility, subject and
// sentiment scoring.
//
// A Lexicon is plain data that can be written to and read from YAML or TOML.
// Compile turns it into matchable terms. Entries follow the term notation of
// the text package: single words match whole words, a trailing '*' matches a
// word prefix, and multi-word entries match as phrases. Suspicious patterns are
// the exception: they are literal, case-sensitive substrings of the original
// text (for example "!!" or "SHOCKING").
package lexicon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/credence/internal/text"
)

// Lexicon is the complete, serializable set of keyword tables
type Lexicon struct {
	Credibility CredibilityTable `yaml:"credibility" toml:"credibility"`
	Subjects    []Category       `yaml:"subjects" toml:"subjects"`
	Sentiment   SentimentTable   `yaml:"sentiment" toml:"sentiment"`
}

// CredibilityTable lists the terms that raise or lower the credibility score
type CredibilityTable struct {
	CredibleKeywords   []string `yaml:"credible_keywords" toml:"credible_keywords"`
	CredibleSources    []string `yaml:"credible_sources" toml:"credible_sources"`
	SuspiciousKeywords []string `yaml:"suspicious_keywords" toml:"suspicious_keywords"`
	SuspiciousPatterns []string `yaml:"suspicious_patterns" toml:"suspicious_patterns"`
}

// Category is one subject bucket. Declaration order is the output order.
type Category struct {
	Name     string   `yaml:"name" toml:"name"`
	Keywords []string `yaml:"keywords" toml:"keywords"`
}

// SentimentTable lists sentiment words and the multi-word context phrases
// that count extra
type SentimentTable struct {
	Positive        []string `yaml:"positive" toml:"positive"`
	Neutral         []string `yaml:"neutral" toml:"neutral"`
	Negative        []string `yaml:"negative" toml:"negative"`
	PositivePhrases []string `yaml:"positive_phrases" toml:"positive_phrases"`
	NegativePhrases []string `yaml:"negative_phrases" toml:"negative_phrases"`
}

// Validate checks that the lexicon can be compiled into a usable scorer
func (l *Lexicon) Validate() error {
	var errs []error

	if len(l.Subjects) == 0 {
		errs = append(errs, errors.New("at least one subject category is required"))
	}

	seen := make(map[string]bool)
	for i, c := range l.Subjects {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("subject %d: name is empty", i))
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("subject %q: duplicate category", name))
		}
		seen[key] = true
		if len(text.ParseTerms(c.Keywords)) == 0 {
			errs = append(errs, fmt.Errorf("subject %q: no usable keywords", name))
		}
	}

	for _, p := range l.Credibility.SuspiciousPatterns {
		if p == "" {
			errs = append(errs, errors.New("credibility: empty suspicious pattern"))
			break
		}
	}

	for _, list := range []struct {
		name  string
		terms []string
	}{
		{"positive_phrases", l.Sentiment.PositivePhrases},
		{"negative_phrases", l.Sentiment.NegativePhrases},
	} {
		for _, t := range text.ParseTerms(list.terms) {
			if !t.Phrase {
				errs = append(errs, fmt.Errorf("sentiment %s: %q is not a multi-word phrase", list.name, t.Text))
			}
		}
	}

	return errors.Join(errs...)
}

// Compiled is a lexicon ready for matching. It is never mutated after
// Compile returns and may be shared between goroutines.
type Compiled struct {
	CredibleKeywords   []text.Term
	CredibleSources    []text.Term
	SuspiciousKeywords []text.Term
	SuspiciousPatterns []string

	Subjects []CompiledCategory

	Positive        []text.Term
	Neutral         []text.Term
	Negative        []text.Term
	PositivePhrases []text.Term
	NegativePhrases []text.Term
}

// CompiledCategory is a subject bucket with parsed terms
type CompiledCategory struct {
	Name  string
	Terms []text.Term
}

// Compile validates the lexicon and parses every entry
func (l *Lexicon) Compile() (*Compiled, error) {
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}

	c := &Compiled{
		CredibleKeywords:   text.ParseTerms(l.Credibility.CredibleKeywords),
		CredibleSources:    text.ParseTerms(l.Credibility.CredibleSources),
		SuspiciousKeywords: text.ParseTerms(l.Credibility.SuspiciousKeywords),
		SuspiciousPatterns: append([]string(nil), l.Credibility.SuspiciousPatterns...),
		Positive:           text.ParseTerms(l.Sentiment.Positive),
		Neutral:            text.ParseTerms(l.Sentiment.Neutral),
		Negative:           text.ParseTerms(l.Sentiment.Negative),
		PositivePhrases:    text.ParseTerms(l.Sentiment.PositivePhrases),
		NegativePhrases:    text.ParseTerms(l.Sentiment.NegativePhrases),
	}

	for _, cat := range l.Subjects {
		c.Subjects = append(c.Subjects, CompiledCategory{
			Name:  strings.TrimSpace(cat.Name),
			Terms: text.ParseTerms(cat.Keywords),
		})
	}

	return c, nil
}

// SubjectLabels returns category names in declaration order
func (c *Compiled) SubjectLabels() []string {
	labels := make([]string, len(c.Subjects))
	for i, cat := range c.Subjects {
		labels[i] = cat.Name
	}
	return labels
}

// MustCompileDefault compiles the built-in lexicon
func MustCompileDefault() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(fmt.Sprintf("built-in lexicon: %v", err))
	}
	return c
}
