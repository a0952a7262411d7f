// Package score implements the three heuristic scorers: credibility, subject
// and sentiment. Scorers are pure functions of a text.Document and the
// compiled lexicon; they hold no mutable state.
package score

import (
	"github.com/ppiankov/credence/internal/lexicon"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/text"
)

// Scorer calculates credibility, subject and sentiment scores
type Scorer struct {
	lex *lexicon.Compiled
	cfg model.ScoringConfig
}

// NewScorer creates a new scorer. A nil lexicon selects the built-in tables.
func NewScorer(lex *lexicon.Compiled, cfg model.ScoringConfig) *Scorer {
	if lex == nil {
		lex = lexicon.MustCompileDefault()
	}
	return &Scorer{lex: lex, cfg: cfg}
}

// Lexicon returns the compiled lexicon in use
func (s *Scorer) Lexicon() *lexicon.Compiled {
	return s.lex
}

// Config returns the weighting table in use
func (s *Scorer) Config() model.ScoringConfig {
	return s.cfg
}

func matchAny(terms []text.Term, word string) bool {
	for _, t := range terms {
		if t.MatchWord(word) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
