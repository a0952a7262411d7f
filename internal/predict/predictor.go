// Package predict consults an externally hosted model for a second opinion.
//
// The model is advisory only. Its output is reported next to the heuristic
// analysis and never changes it.
package predict

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Predictor asks a model for a prediction vector. The vector layout is
// [credibility, subject shares..., positive, neutral, negative].
type Predictor interface {
	// Name returns the provider name
	Name() string

	// Predict returns the raw prediction vector for a text
	Predict(ctx context.Context, text string) ([]float64, error)
}

// ErrMalformedVector is returned when a prediction cannot be decoded
var ErrMalformedVector = errors.New("malformed prediction vector")

// Config holds predictor configuration
type Config struct {
	// Provider name: "endpoint", "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL is the model endpoint URL, or a custom API base URL
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// InputLength is the vector length sent to an endpoint model
	InputLength int

	// Labels are the subject categories requested from language models
	Labels []string

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts the application config to a predictor config
func ConfigFromModel(cfg model.ModelConfig, httpCfg model.HTTPConfig, labels []string) Config {
	return Config{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.URL,
		Timeout:     cfg.Timeout,
		MaxTokens:   cfg.MaxTokens,
		InputLength: cfg.InputLength,
		Labels:      labels,
		HTTPProxy:   httpCfg.HTTPProxy,
		HTTPSProxy:  httpCfg.HTTPSProxy,
		NoProxy:     httpCfg.NoProxy,
	}
}

// Prediction is a decoded prediction vector
type Prediction struct {
	Credibility float64
	Subjects    []float64
	Sentiment   [3]float64
}

// Encode builds the fixed-length input vector of an endpoint model: slot i
// is 1 when the normalized text has an i-th word, 0 otherwise
func Encode(normalized string, length int) []float64 {
	vector := make([]float64, length)
	words := strings.Fields(normalized)
	for i := 0; i < len(words) && i < length; i++ {
		vector[i] = 1
	}
	return vector
}

// Decode splits a prediction vector into its parts and clamps every value to
// [0,1]. With subjects <= 0 the subject count is inferred from the length.
func Decode(vector []float64, subjects int) (*Prediction, error) {
	if subjects <= 0 {
		subjects = len(vector) - 4
	}
	if subjects < 1 || len(vector) < subjects+4 {
		return nil, fmt.Errorf("%w: %d values", ErrMalformedVector, len(vector))
	}
	for i, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d is not finite", ErrMalformedVector, i)
		}
	}

	p := &Prediction{
		Credibility: clamp01(vector[0]),
		Subjects:    make([]float64, subjects),
	}
	for i := range p.Subjects {
		p.Subjects[i] = clamp01(vector[1+i])
	}
	for i := range p.Sentiment {
		p.Sentiment[i] = clamp01(vector[1+subjects+i])
	}
	return p, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
