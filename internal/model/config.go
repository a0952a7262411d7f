package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds every tunable of credence. Zero values are not meaningful;
// start from DefaultConfig.
type Config struct {
	Scoring      ScoringConfig      `yaml:"scoring" mapstructure:"scoring"`
	Lexicon      LexiconConfig      `yaml:"lexicon" mapstructure:"lexicon"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Model        ModelConfig        `yaml:"model" mapstructure:"model"`
	Authority    AuthorityConfig    `yaml:"authority" mapstructure:"authority"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// ScoringConfig is the weighting table of the heuristic engine
type ScoringConfig struct {
	// Baseline is the neutral starting credibility
	Baseline float64 `yaml:"baseline" mapstructure:"baseline"`

	CredibleKeywordWeight   float64 `yaml:"credible_keyword_weight" mapstructure:"credible_keyword_weight"`
	CredibleSourceWeight    float64 `yaml:"credible_source_weight" mapstructure:"credible_source_weight"`
	SuspiciousKeywordWeight float64 `yaml:"suspicious_keyword_weight" mapstructure:"suspicious_keyword_weight"`
	SuspiciousPatternWeight float64 `yaml:"suspicious_pattern_weight" mapstructure:"suspicious_pattern_weight"`

	// Texts with at most TitleMaxWords words are judged against TitleWords,
	// longer ones against BodyWords
	TitleMaxWords int       `yaml:"title_max_words" mapstructure:"title_max_words"`
	TitleWords    WordRange `yaml:"title_words" mapstructure:"title_words"`
	BodyWords     WordRange `yaml:"body_words" mapstructure:"body_words"`
	LengthBonus   float64   `yaml:"length_bonus" mapstructure:"length_bonus"`
	LengthPenalty float64   `yaml:"length_penalty" mapstructure:"length_penalty"`

	// StructureBonus is added once for each structural signal found
	// (quotes, statistics, dates, citations, capitalization)
	StructureBonus float64 `yaml:"structure_bonus" mapstructure:"structure_bonus"`

	CapsRatioThreshold float64 `yaml:"caps_ratio_threshold" mapstructure:"caps_ratio_threshold"`
	CapsPenalty        float64 `yaml:"caps_penalty" mapstructure:"caps_penalty"`
	MaxExclamations    int     `yaml:"max_exclamations" mapstructure:"max_exclamations"`
	ExclamationPenalty float64 `yaml:"exclamation_penalty" mapstructure:"exclamation_penalty"`

	Snap SnapPolicy `yaml:"snap" mapstructure:"snap"`

	// SentimentPhraseWeight is added to a sentiment bucket per matched context phrase
	SentimentPhraseWeight float64 `yaml:"sentiment_phrase_weight" mapstructure:"sentiment_phrase_weight"`
	// SentimentFloor is the minimum raw count of every sentiment bucket
	SentimentFloor float64 `yaml:"sentiment_floor" mapstructure:"sentiment_floor"`
}

// WordRange is an inclusive word-count range
type WordRange struct {
	Min int `yaml:"min" mapstructure:"min"`
	Max int `yaml:"max" mapstructure:"max"`
}

// Contains reports whether n lies inside the range
func (r WordRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// SnapPolicy replaces a clamped credibility score with a sentinel once it
// crosses a decision threshold
type SnapPolicy struct {
	Enabled   bool    `yaml:"enabled" mapstructure:"enabled"`
	Low       float64 `yaml:"low" mapstructure:"low"`
	High      float64 `yaml:"high" mapstructure:"high"`
	FakeValue float64 `yaml:"fake_value" mapstructure:"fake_value"`
	RealValue float64 `yaml:"real_value" mapstructure:"real_value"`
}

// LexiconConfig points at an optional custom lexicon file
type LexiconConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the page and prediction caches
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig limits requests per domain
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ModelConfig selects the optional remote model. An empty Provider disables it.
type ModelConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // endpoint, openai, anthropic, ollama
	Model     string `yaml:"model,omitempty" mapstructure:"model"`
	URL       string `yaml:"url,omitempty" mapstructure:"url"` // endpoint URL or API base URL
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	// InputLength is the fixed vector length sent to an endpoint model
	InputLength int `yaml:"input_length" mapstructure:"input_length"`
}

// AuthorityConfig classifies article hosts
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // host -> tier name
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern assigns a tier to URLs whose path matches a regular expression
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	Color         bool `yaml:"color" mapstructure:"color"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
	ShowSignals   bool `yaml:"show_signals" mapstructure:"show_signals"`
}

// DefaultScoringConfig returns the canonical weighting
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Baseline:                0.5,
		CredibleKeywordWeight:   0.10,
		CredibleSourceWeight:    0.15,
		SuspiciousKeywordWeight: 0.15,
		SuspiciousPatternWeight: 0.20,
		TitleMaxWords:           30,
		TitleWords:              WordRange{Min: 8, Max: 15},
		BodyWords:               WordRange{Min: 150, Max: 2000},
		LengthBonus:             0.05,
		LengthPenalty:           0.05,
		StructureBonus:          0.05,
		CapsRatioThreshold:      0.30,
		CapsPenalty:             0.10,
		MaxExclamations:         2,
		ExclamationPenalty:      0.10,
		Snap: SnapPolicy{
			Enabled:   false,
			Low:       0.4,
			High:      0.6,
			FakeValue: 0.014,
			RealValue: 0.922,
		},
		SentimentPhraseWeight: 2,
		SentimentFloor:        1,
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: DefaultScoringConfig(),
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Credence/0.1 (+https://github.com/ppiankov/credence)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Model: ModelConfig{
			Timeout:     30,
			MaxTokens:   300,
			InputLength: 100,
		},
		Authority: DefaultAuthorityConfig(),
		Output: OutputConfig{
			Color:         true,
			IncludeFooter: true,
		},
	}
}

// DefaultAuthorityConfig lists well-known hosts per tier
func DefaultAuthorityConfig() AuthorityConfig {
	return AuthorityConfig{
		PrimaryDomains: []string{
			"gov", "gov.uk", "europa.eu", "who.int", "un.org", "cdc.gov", "nih.gov",
			"nature.com", "science.org", "doi.org", "pubmed.ncbi.nlm.nih.gov",
		},
		SecondaryDomains: []string{
			"reuters.com", "apnews.com", "afp.com", "bbc.co.uk", "bbc.com", "npr.org",
			"nytimes.com", "washingtonpost.com", "wsj.com", "ft.com", "theguardian.com",
			"economist.com", "bloomberg.com", "aljazeera.com", "pbs.org", "wikipedia.org",
		},
	}
}

// Validate checks the configuration for contradictory values
func (c *Config) Validate() error {
	var errs []error

	s := c.Scoring
	if s.Baseline < 0 || s.Baseline > 1 {
		errs = append(errs, fmt.Errorf("scoring.baseline must be within [0,1], got %v", s.Baseline))
	}
	if s.TitleWords.Min > s.TitleWords.Max {
		errs = append(errs, fmt.Errorf("scoring.title_words: min %d > max %d", s.TitleWords.Min, s.TitleWords.Max))
	}
	if s.BodyWords.Min > s.BodyWords.Max {
		errs = append(errs, fmt.Errorf("scoring.body_words: min %d > max %d", s.BodyWords.Min, s.BodyWords.Max))
	}
	if s.CapsRatioThreshold <= 0 || s.CapsRatioThreshold > 1 {
		errs = append(errs, fmt.Errorf("scoring.caps_ratio_threshold must be within (0,1], got %v", s.CapsRatioThreshold))
	}
	if s.SentimentFloor < 0 {
		errs = append(errs, errors.New("scoring.sentiment_floor must not be negative"))
	}
	if s.Snap.Enabled {
		if s.Snap.Low > s.Snap.High {
			errs = append(errs, fmt.Errorf("scoring.snap: low %v > high %v", s.Snap.Low, s.Snap.High))
		}
		for name, v := range map[string]float64{"fake_value": s.Snap.FakeValue, "real_value": s.Snap.RealValue} {
			if v < 0 || v > 1 {
				errs = append(errs, fmt.Errorf("scoring.snap.%s must be within [0,1], got %v", name, v))
			}
		}
	}

	if c.Concurrency.Workers < 1 {
		errs = append(errs, errors.New("concurrency.workers must be at least 1"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if c.Model.InputLength < 1 {
		errs = append(errs, errors.New("model.input_length must be at least 1"))
	}

	return errors.Join(errs...)
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "credence")
	}
	return filepath.Join(dir, "credence")
}
