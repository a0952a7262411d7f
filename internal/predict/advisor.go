package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/text"
)

// Advisor wraps a Predictor with caching and turns every failure into a
// warning. A nil Advisor is valid and disabled.
type Advisor struct {
	predictor Predictor
	model     string
	cache     cache.Cache
	ttl       time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAdvisor creates a new advisor. A nil cache disables caching and a nil
// logger discards log output.
func NewAdvisor(p Predictor, config Config, c cache.Cache, ttl time.Duration, logger *slog.Logger) *Advisor {
	if c == nil {
		c = cache.Nop{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Advisor{
		predictor: p,
		model:     config.Model,
		cache:     c,
		ttl:       ttl,
		timeout:   timeout,
		logger:    logger,
	}
}

// IsEnabled reports whether a predictor is configured
func (a *Advisor) IsEnabled() bool {
	return a != nil && a.predictor != nil
}

// ProviderName returns the configured provider, or "" when disabled
func (a *Advisor) ProviderName() string {
	if !a.IsEnabled() {
		return ""
	}
	return a.predictor.Name()
}

// Advise asks the model about raw text. It returns nil when disabled and
// never returns an error: failures are reported as warnings on the advice.
func (a *Advisor) Advise(ctx context.Context, raw string) *model.ModelAdvice {
	if !a.IsEnabled() {
		return nil
	}

	advice := &model.ModelAdvice{
		Provider: a.predictor.Name(),
		Model:    a.model,
	}

	key := cache.Key(cache.NamespacePrediction, advice.Provider+"\x00"+a.model+"\x00"+text.Normalize(raw))

	vector, cached := a.cached(key)
	if !cached {
		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		v, err := a.predictor.Predict(ctx, raw)
		if err != nil {
			a.logger.Warn("model prediction failed", "provider", advice.Provider, "error", err)
			advice.Warnings = append(advice.Warnings, warningFor(err))
			return advice
		}
		vector = v
	}

	prediction, err := Decode(vector, 0)
	if err != nil {
		a.logger.Warn("model prediction malformed", "provider", advice.Provider, "values", len(vector), "error", err)
		advice.Warnings = append(advice.Warnings, fmt.Sprintf("Model returned an unusable prediction: %v", err))
		return advice
	}

	if !cached {
		if data, err := msgpack.Marshal(vector); err == nil {
			if err := a.cache.Set(key, data, a.ttl); err != nil {
				a.logger.Debug("prediction cache write failed", "error", err)
			}
		}
	}

	advice.Available = true
	advice.Cached = cached
	advice.CredibilityScore = prediction.Credibility
	advice.SubjectDistribution = prediction.Subjects
	advice.SentimentDistribution = prediction.Sentiment[:]
	return advice
}

func (a *Advisor) cached(key string) ([]float64, bool) {
	data, found := a.cache.Get(key)
	if !found {
		return nil, false
	}
	var vector []float64
	if err := msgpack.Unmarshal(data, &vector); err != nil {
		_ = a.cache.Delete(key)
		return nil, false
	}
	return vector, true
}

func warningFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "Model did not answer in time; showing heuristic results only"
	case errors.Is(err, ErrMalformedVector):
		return fmt.Sprintf("Model returned an unusable prediction: %v", err)
	default:
		return fmt.Sprintf("Model unavailable: %v", err)
	}
}

// Compare fills in how closely the model agrees with the heuristic
// credibility score. It only reads the analysis.
func Compare(advice *model.ModelAdvice, analysis *model.Analysis) {
	if advice == nil || !advice.Available || analysis == nil {
		return
	}
	agreement := 1 - math.Abs(advice.CredibilityScore-analysis.Result.CredibilityScore)
	advice.Agreement = &agreement

	if len(advice.SubjectDistribution) != len(analysis.Result.SubjectDistribution) {
		advice.Warnings = append(advice.Warnings, fmt.Sprintf(
			"Model reports %d subjects, the lexicon has %d; subject shares are not comparable",
			len(advice.SubjectDistribution), len(analysis.Result.SubjectDistribution)))
	}
}
