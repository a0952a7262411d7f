package model

import "time"

// ScoreResult is the core output of one analysis. Field names match the
// JSON contract consumed by presentation layers.
type ScoreResult struct {
	CredibilityScore      float64    `json:"credibility_score"`
	SubjectDistribution   []float64  `json:"subject_distribution"`   // aligned with the subject lexicon order
	SentimentDistribution [3]float64 `json:"sentiment_distribution"` // positive, neutral, negative
}

// Analysis is a ScoreResult plus everything needed to explain it
type Analysis struct {
	Result      ScoreResult `json:"result"`
	Credibility Credibility `json:"credibility"`
	Subjects    Subjects    `json:"subjects"`
	Sentiment   Sentiment   `json:"sentiment"`
	Input       InputStats  `json:"input"`
}

// Credibility is the transparent breakdown of the credibility score
type Credibility struct {
	Score   float64  `json:"score"`   // final value, after clamping and snapping
	Raw     float64  `json:"raw"`     // unclamped running total
	Clamped float64  `json:"clamped"` // raw clamped to [0,1]
	Snapped bool     `json:"snapped"`
	Verdict Verdict  `json:"verdict"`
	Signals []Signal `json:"signals"`
}

// Subjects is the subject distribution with its labels and raw counts
type Subjects struct {
	Labels       []string   `json:"labels"`
	Counts       []int      `json:"counts"`
	Distribution []float64  `json:"distribution"`
	Matched      [][]string `json:"matched,omitempty"`
	Uniform      bool       `json:"uniform"` // true when nothing matched
}

// Top returns the label with the largest share, or "" when the
// distribution is uniform
func (s Subjects) Top() string {
	if s.Uniform || len(s.Distribution) == 0 {
		return ""
	}
	best := 0
	for i, v := range s.Distribution {
		if v > s.Distribution[best] {
			best = i
		}
	}
	return s.Labels[best]
}

// Sentiment is the sentiment distribution with its bucket counts
type Sentiment struct {
	Positive     float64    `json:"positive"`
	Neutral      float64    `json:"neutral"`
	Negative     float64    `json:"negative"`
	Counts       [3]float64 `json:"counts"` // floored raw counts: positive, neutral, negative
	Distribution [3]float64 `json:"distribution"`
}

// Dominant returns the polarity with the largest share; ties favour neutral
func (s Sentiment) Dominant() Polarity {
	switch {
	case s.Positive > s.Neutral && s.Positive > s.Negative:
		return PolarityPositive
	case s.Negative > s.Neutral && s.Negative > s.Positive:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}

// Polarity names a sentiment bucket
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNeutral  Polarity = "neutral"
	PolarityNegative Polarity = "negative"
)

// InputStats describes the analysed text
type InputStats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
}

// Verdict is a coarse label derived from the credibility score
type Verdict string

const (
	VerdictLikelyFake Verdict = "likely-fake"
	VerdictUncertain  Verdict = "uncertain"
	VerdictLikelyReal Verdict = "likely-real"
)

// VerdictFor labels a score using the snap thresholds, whether or not
// snapping is enabled
func VerdictFor(score float64, policy SnapPolicy) Verdict {
	switch {
	case score < policy.Low:
		return VerdictLikelyFake
	case score > policy.High:
		return VerdictLikelyReal
	default:
		return VerdictUncertain
	}
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Delta       float64                `json:"delta"` // contribution to the credibility score
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalCredibleKeywords   SignalType = "credible_keywords"
	SignalCredibleSources    SignalType = "credible_sources"
	SignalSuspiciousKeywords SignalType = "suspicious_keywords"
	SignalSuspiciousPatterns SignalType = "suspicious_patterns"
	SignalLength             SignalType = "length"
	SignalQuotations         SignalType = "quotations"
	SignalStatistics         SignalType = "statistics"
	SignalDates              SignalType = "dates"
	SignalCitations          SignalType = "citations"
	SignalCapitalization     SignalType = "capitalization"
	SignalExcessiveCaps      SignalType = "excessive_caps"
	SignalExclamations       SignalType = "exclamations"
	SignalSnapping           SignalType = "snapping"
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)

// Report wraps an Analysis with its provenance. Reports are rendered and
// discarded; nothing is stored.
type Report struct {
	ID         string      `json:"id"`
	AnalyzedAt time.Time   `json:"analyzed_at"`
	Source     *SourceInfo `json:"source,omitempty"`
	Analysis   Analysis    `json:"analysis"`
	Principles Principles  `json:"principles"`

	Model *ModelAdvice `json:"model,omitempty"` // advisory only, never affects the analysis
}

// Principles documents how the score should be read
type Principles struct {
	Heuristic      bool `json:"heuristic"`       // keyword and pattern matching only
	NotStatistical bool `json:"not_statistical"` // no claim of statistical validity
	Transparent    bool `json:"transparent"`     // every score contribution is listed
}

// DefaultPrinciples returns the standard principles
func DefaultPrinciples() Principles {
	return Principles{
		Heuristic:      true,
		NotStatistical: true,
		Transparent:    true,
	}
}

// ModelAdvice is the optional output of a remote model.
// CRITICAL: this never affects the heuristic scores and is kept separate.
type ModelAdvice struct {
	Available             bool      `json:"available"`
	Provider              string    `json:"provider,omitempty"`
	Model                 string    `json:"model,omitempty"`
	Cached                bool      `json:"cached,omitempty"`
	CredibilityScore      float64   `json:"credibility_score,omitempty"`
	SubjectDistribution   []float64 `json:"subject_distribution,omitempty"`
	SentimentDistribution []float64 `json:"sentiment_distribution,omitempty"`
	Agreement             *float64  `json:"agreement,omitempty"` // 1 - |model - heuristic| credibility
	Warnings              []string  `json:"warnings,omitempty"`
}
