package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultConfig_Validates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Baseline = 1.5
	cfg.Scoring.TitleWords = WordRange{Min: 20, Max: 10}
	cfg.Scoring.Snap.Enabled = true
	cfg.Scoring.Snap.Low = 0.8
	cfg.Scoring.Snap.High = 0.2
	cfg.Concurrency.Workers = 0
	cfg.HTTP.MaxBodyBytes = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	for _, want := range []string{"baseline", "title_words", "snap", "workers", "max_body_bytes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error mentioning %q, got %v", want, err)
		}
	}
}

func TestConfig_Validate_MaxBodyBytes(t *testing.T) {
	for _, n := range []int64{0, -1} {
		cfg := DefaultConfig()
		cfg.HTTP.MaxBodyBytes = n
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "http.max_body_bytes") {
			t.Errorf("max_body_bytes=%d: expected validation error, got %v", n, err)
		}
	}
}

func TestVerdictFor(t *testing.T) {
	policy := DefaultScoringConfig().Snap

	tests := []struct {
		score float64
		want  Verdict
	}{
		{0.0, VerdictLikelyFake},
		{0.39, VerdictLikelyFake},
		{0.4, VerdictUncertain},
		{0.5, VerdictUncertain},
		{0.6, VerdictUncertain},
		{0.61, VerdictLikelyReal},
		{1.0, VerdictLikelyReal},
	}
	for _, tt := range tests {
		if got := VerdictFor(tt.score, policy); got != tt.want {
			t.Errorf("VerdictFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestAuthorityTier_Text(t *testing.T) {
	data, err := json.Marshal(SourceInfo{Host: "reuters.com", Authority: TierSecondary})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"authority":"secondary"`) {
		t.Errorf("Expected tier by name, got %s", data)
	}

	var info SourceInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatal(err)
	}
	if info.Authority != TierSecondary {
		t.Errorf("Expected secondary, got %v", info.Authority)
	}

	if _, err := ParseAuthorityTier("bogus"); err == nil {
		t.Error("Expected error for unknown tier")
	}
}

func TestArticle_Text(t *testing.T) {
	tests := []struct {
		article Article
		want    string
	}{
		{Article{Title: "Headline", Body: "Body text."}, "Headline\n\nBody text."},
		{Article{Title: "Headline", Body: "Headline and more."}, "Headline and more."},
		{Article{Title: " Headline "}, "Headline"},
		{Article{Body: "Only body."}, "Only body."},
	}
	for _, tt := range tests {
		if got := tt.article.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestSubjects_Top(t *testing.T) {
	s := Subjects{Labels: []string{"A", "B"}, Distribution: []float64{0.25, 0.75}}
	if s.Top() != "B" {
		t.Errorf("Expected B, got %q", s.Top())
	}
	s.Uniform = true
	if s.Top() != "" {
		t.Errorf("Expected no top label for uniform, got %q", s.Top())
	}
}
