package score

import (
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/text"
)

// Sentiment distributes a text over positive, neutral and negative.
//
// Every token lands in at most one bucket, checked in the order positive,
// negative, neutral. Context phrases add SentimentPhraseWeight to their
// bucket. Buckets are floored at SentimentFloor before normalizing, so a
// text without sentiment words comes out uniform.
func (s *Scorer) Sentiment(doc *text.Document) model.Sentiment {
	var pos, neu, neg float64

	for _, w := range doc.Words {
		switch {
		case matchAny(s.lex.Positive, w):
			pos++
		case matchAny(s.lex.Negative, w):
			neg++
		case matchAny(s.lex.Neutral, w):
			neu++
		}
	}

	for _, p := range s.lex.PositivePhrases {
		if doc.Contains(p) {
			pos += s.cfg.SentimentPhraseWeight
		}
	}
	for _, p := range s.lex.NegativePhrases {
		if doc.Contains(p) {
			neg += s.cfg.SentimentPhraseWeight
		}
	}

	floor := s.cfg.SentimentFloor
	counts := [3]float64{max(pos, floor), max(neu, floor), max(neg, floor)}

	var dist [3]float64
	sum := counts[0] + counts[1] + counts[2]
	if sum == 0 {
		dist = [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
	} else {
		for i, c := range counts {
			dist[i] = c / sum
		}
	}

	return model.Sentiment{
		Positive:     dist[0],
		Neutral:      dist[1],
		Negative:     dist[2],
		Counts:       counts,
		Distribution: dist,
	}
}
