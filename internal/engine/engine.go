// Package engine assembles the credibility, subject and sentiment scorers into
// a single analysis. It has no I/O and keeps no state between calls, so one
// Engine may serve any number of goroutines.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/credence/internal/lexicon"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/score"
	"github.com/ppiankov/credence/internal/text"
)

// ErrEmptyInput is returned for input that is empty after trimming whitespace
var ErrEmptyInput = errors.New("empty input: nothing to analyze")

// Engine runs the heuristic scorers over a text
type Engine struct {
	scorer *score.Scorer
}

// New creates an engine. A nil lexicon selects the built-in tables.
func New(lex *lexicon.Compiled, cfg model.ScoringConfig) *Engine {
	return &Engine{scorer: score.NewScorer(lex, cfg)}
}

// NewFromConfig loads the configured lexicon and creates an engine
func NewFromConfig(cfg *model.Config) (*Engine, error) {
	lex, err := lexicon.LoadCompiled(cfg.Lexicon.Path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return New(lex, cfg.Scoring), nil
}

// SubjectLabels returns the subject labels in distribution order
func (e *Engine) SubjectLabels() []string {
	return e.scorer.Lexicon().SubjectLabels()
}

// Lexicon returns the compiled lexicon in use
func (e *Engine) Lexicon() *lexicon.Compiled {
	return e.scorer.Lexicon()
}

// Analyze scores raw text. The text is normalized once and shared by the
// three scorers.
func (e *Engine) Analyze(raw string) (*model.Analysis, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	doc := text.NewDocument(raw)

	credibility := e.scorer.Credibility(doc)
	subjects := e.scorer.Subjects(doc)
	sentiment := e.scorer.Sentiment(doc)

	return &model.Analysis{
		Result: model.ScoreResult{
			CredibilityScore:      credibility.Score,
			SubjectDistribution:   append([]float64(nil), subjects.Distribution...),
			SentimentDistribution: sentiment.Distribution,
		},
		Credibility: credibility,
		Subjects:    subjects,
		Sentiment:   sentiment,
		Input: model.InputStats{
			Characters: utf8.RuneCountInString(raw),
			Words:      doc.WordCount(),
			Sentences:  len(doc.Sentences),
		},
	}, nil
}
