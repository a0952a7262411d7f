package score

import (
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/text"
)

// Subjects distributes a text over the subject categories. Each category
// scores the number of distinct keywords it matched; with no matches at all
// the distribution is uniform.
func (s *Scorer) Subjects(doc *text.Document) model.Subjects {
	n := len(s.lex.Subjects)
	result := model.Subjects{
		Labels:       s.lex.SubjectLabels(),
		Counts:       make([]int, n),
		Distribution: make([]float64, n),
		Matched:      make([][]string, n),
	}

	total := 0
	for i, cat := range s.lex.Subjects {
		matched := doc.Matched(cat.Terms)
		result.Matched[i] = matched
		result.Counts[i] = len(matched)
		total += len(matched)
	}

	if total == 0 {
		result.Uniform = true
		for i := range result.Distribution {
			result.Distribution[i] = 1 / float64(n)
		}
		return result
	}

	for i, c := range result.Counts {
		result.Distribution[i] = float64(c) / float64(total)
	}
	return result
}
