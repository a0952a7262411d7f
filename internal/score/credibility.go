package score

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/text"
)

var (
	quotePattern = regexp.MustCompile(`"[^"\n]{3,}"|“[^”\n]{3,}”`)

	statisticPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s?(?:%|percent\b|per cent\b)` +
		`|\b\d{1,3}(?:,\d{3})+\b` +
		`|\b\d+(?:\.\d+)?\s?(?:thousand|million|billion|trillion|km|kg|miles|tons|people|points)\b`)

	datePattern = regexp.MustCompile(`(?i)\b(?:january|february|march|april|june|july|august|september|october|november|december)\b` +
		`|\b(?:may|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\.?\s+\d{1,2}\b` +
		`|\b\d{4}-\d{2}-\d{2}\b` +
		`|\b\d{1,2}/\d{1,2}/\d{2,4}\b` +
		`|\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

	citationPattern = regexp.MustCompile(`\([A-Z][A-Za-z.&' -]{1,40}\)`)
)

// Credibility scores how trustworthy the wording of a text looks. Each factor
// that moves the score away from the baseline is reported as a signal.
func (s *Scorer) Credibility(doc *text.Document) model.Credibility {
	cfg := s.cfg
	total := cfg.Baseline
	var signals []model.Signal

	add := func(sig model.Signal) {
		total += sig.Delta
		signals = append(signals, sig)
	}

	// 1. Lexicon matches, each list counted once
	if matched := doc.Matched(s.lex.CredibleKeywords); len(matched) > 0 {
		add(lexiconSignal(model.SignalCredibleKeywords, model.SeverityInfo,
			"Attribution language found", cfg.CredibleKeywordWeight, matched))
	}
	if matched := doc.Matched(s.lex.CredibleSources); len(matched) > 0 {
		add(lexiconSignal(model.SignalCredibleSources, model.SeverityInfo,
			"Named credible source found", cfg.CredibleSourceWeight, matched))
	}
	if matched := doc.Matched(s.lex.SuspiciousKeywords); len(matched) > 0 {
		add(lexiconSignal(model.SignalSuspiciousKeywords, model.SeverityWarning,
			"Sensationalist language found", -cfg.SuspiciousKeywordWeight, matched))
	}
	if matched := s.suspiciousPatterns(doc.Raw); len(matched) > 0 {
		add(lexiconSignal(model.SignalSuspiciousPatterns, model.SeverityCritical,
			"Clickbait markers found", -cfg.SuspiciousPatternWeight, matched))
	}

	// 2. Length
	add(s.lengthSignal(doc.WordCount()))

	// 3. Structure
	for _, check := range []struct {
		typ  model.SignalType
		desc string
		hit  string
	}{
		{model.SignalQuotations, "Contains quoted speech", quotePattern.FindString(doc.Raw)},
		{model.SignalStatistics, "Contains numeric statistics", statisticPattern.FindString(doc.Raw)},
		{model.SignalDates, "Contains a date", datePattern.FindString(doc.Raw)},
		{model.SignalCitations, "Contains a parenthetical citation", citationPattern.FindString(doc.Raw)},
	} {
		if check.hit == "" {
			continue
		}
		add(model.Signal{
			Type:        check.typ,
			Severity:    model.SeverityInfo,
			Description: check.desc,
			Delta:       cfg.StructureBonus,
			Data: map[string]interface{}{
				"example": check.hit,
				"formula": "+structure_bonus",
			},
		})
	}
	if properlyCapitalized(doc.Raw) {
		add(model.Signal{
			Type:        model.SignalCapitalization,
			Severity:    model.SeverityInfo,
			Description: "Starts with a capital letter and ends with proper punctuation",
			Delta:       cfg.StructureBonus,
			Data:        map[string]interface{}{"formula": "+structure_bonus"},
		})
	}

	// 4. Shouting
	upper, letters := countCase(doc.Raw)
	if letters >= 10 {
		ratio := float64(upper) / float64(letters)
		if ratio > cfg.CapsRatioThreshold {
			add(model.Signal{
				Type:        model.SignalExcessiveCaps,
				Severity:    model.SeverityWarning,
				Description: fmt.Sprintf("%.0f%% of letters are uppercase", ratio*100),
				Delta:       -cfg.CapsPenalty,
				Data: map[string]interface{}{
					"uppercase": upper,
					"letters":   letters,
					"ratio":     ratio,
					"threshold": cfg.CapsRatioThreshold,
					"formula":   "uppercase / letters > caps_ratio_threshold",
				},
			})
		}
	}

	exclamations := strings.Count(doc.Raw, "!")
	if exclamations > cfg.MaxExclamations || strings.Contains(doc.Raw, "!!") {
		add(model.Signal{
			Type:        model.SignalExclamations,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d exclamation marks", exclamations),
			Delta:       -cfg.ExclamationPenalty,
			Data: map[string]interface{}{
				"count":   exclamations,
				"max":     cfg.MaxExclamations,
				"formula": "count > max_exclamations or contains \"!!\"",
			},
		})
	}

	// 5. Clamp and snap
	result := model.Credibility{
		Raw:     total,
		Clamped: clamp01(total),
	}
	result.Score = result.Clamped

	if snap := cfg.Snap; snap.Enabled {
		switch {
		case result.Clamped < snap.Low:
			result.Score, result.Snapped = snap.FakeValue, true
		case result.Clamped > snap.High:
			result.Score, result.Snapped = snap.RealValue, true
		}
		if result.Snapped {
			signals = append(signals, model.Signal{
				Type:        model.SignalSnapping,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("Score snapped from %.3f to %.3f", result.Clamped, result.Score),
				Delta:       result.Score - result.Clamped,
				Data: map[string]interface{}{
					"low":     snap.Low,
					"high":    snap.High,
					"formula": "score < low -> fake_value, score > high -> real_value",
				},
			})
		}
	}

	result.Verdict = model.VerdictFor(result.Score, cfg.Snap)
	result.Signals = signals
	return result
}

func (s *Scorer) suspiciousPatterns(raw string) []string {
	var matched []string
	for _, p := range s.lex.SuspiciousPatterns {
		if strings.Contains(raw, p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (s *Scorer) lengthSignal(words int) model.Signal {
	cfg := s.cfg
	kind, ideal := "body", cfg.BodyWords
	if words <= cfg.TitleMaxWords {
		kind, ideal = "title", cfg.TitleWords
	}

	sig := model.Signal{
		Type: model.SignalLength,
		Data: map[string]interface{}{
			"words":   words,
			"kind":    kind,
			"min":     ideal.Min,
			"max":     ideal.Max,
			"formula": "min <= words <= max ? +length_bonus : -length_penalty",
		},
	}
	if ideal.Contains(words) {
		sig.Severity = model.SeverityInfo
		sig.Description = fmt.Sprintf("%d words, within the ideal %s length", words, kind)
		sig.Delta = cfg.LengthBonus
	} else {
		sig.Severity = model.SeverityWarning
		sig.Description = fmt.Sprintf("%d words, outside the ideal %s length (%d-%d)", words, kind, ideal.Min, ideal.Max)
		sig.Delta = -cfg.LengthPenalty
	}
	return sig
}

func lexiconSignal(typ model.SignalType, sev model.SignalSeverity, desc string, delta float64, matched []string) model.Signal {
	return model.Signal{
		Type:        typ,
		Severity:    sev,
		Description: fmt.Sprintf("%s: %s", desc, strings.Join(matched, ", ")),
		Delta:       delta,
		Data: map[string]interface{}{
			"matched": matched,
			"formula": "applied once when any term matches",
		},
	}
}

// properlyCapitalized reports whether the text starts with an uppercase
// letter and ends with '.', '?' or a closing quote
func properlyCapitalized(raw string) bool {
	raw = strings.TrimSpace(raw)
	first, _ := utf8.DecodeRuneInString(raw)
	last, _ := utf8.DecodeLastRuneInString(raw)
	if !unicode.IsUpper(first) {
		return false
	}
	switch last {
	case '.', '?', '"', '\'', '”', '’':
		return true
	}
	return false
}

func countCase(raw string) (upper, letters int) {
	for _, r := range raw {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper, letters
}
