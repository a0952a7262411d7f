package predict

import (
	"errors"
	"math"
	"strings"
	"testing"
)

var testLabels = []string{"Politics", "Technology", "Science", "Entertainment"}

func TestEncode(t *testing.T) {
	v := Encode("one two three", 5)
	want := []float64{1, 1, 1, 0, 0}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, v)
		}
	}

	long := Encode(strings.Repeat("w ", 150), 100)
	if len(long) != 100 {
		t.Fatalf("Expected length 100, got %d", len(long))
	}
	for i, x := range long {
		if x != 1 {
			t.Fatalf("Expected slot %d set for a long text", i)
		}
	}

	if empty := Encode("", 3); empty[0] != 0 {
		t.Errorf("Expected an all-zero vector for empty text, got %v", empty)
	}
}

func TestDecode(t *testing.T) {
	p, err := Decode([]float64{1.4, 0.5, -0.2, 0.3, 0.2, 0.1, 0.7, 0.2}, 4)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if p.Credibility != 1 {
		t.Errorf("Expected credibility clamped to 1, got %v", p.Credibility)
	}
	if len(p.Subjects) != 4 || p.Subjects[1] != 0 {
		t.Errorf("Expected 4 subjects with the negative one clamped, got %v", p.Subjects)
	}
	if p.Sentiment != [3]float64{0.1, 0.7, 0.2} {
		t.Errorf("Unexpected sentiment: %v", p.Sentiment)
	}
}

func TestDecode_InfersSubjects(t *testing.T) {
	p, err := Decode([]float64{0.5, 0.1, 0.2, 0.3, 0.2, 0.1, 0.1, 0.3, 0.3, 0.4}, 0)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(p.Subjects) != 6 {
		t.Errorf("Expected 6 inferred subjects, got %d", len(p.Subjects))
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		vector   []float64
		subjects int
	}{
		{"empty", nil, 0},
		{"too short", []float64{0.5, 0.1, 0.2, 0.3}, 0},
		{"short for subjects", []float64{0.5, 0.1, 0.2, 0.3, 0.4}, 4},
		{"nan", []float64{math.NaN(), 0.1, 0.2, 0.3, 0.4}, 0},
		{"inf", []float64{0.5, math.Inf(1), 0.2, 0.3, 0.4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.vector, tt.subjects); !errors.Is(err, ErrMalformedVector) {
				t.Errorf("Expected ErrMalformedVector, got %v", err)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Officials said the bridge reopened.", testLabels)

	for _, want := range []string{`"Politics": <0..1>`, `"Entertainment": <0..1>`, "Officials said the bridge reopened.", `"credibility"`} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}

	long := BuildPrompt(strings.Repeat("a", maxPromptChars+100), testLabels)
	if !strings.Contains(long, "[truncated]") {
		t.Error("Expected long text to be truncated")
	}
}

func TestParseAnswer(t *testing.T) {
	content := "Here you go:\n```json\n" +
		`{"credibility": 0.8, "subjects": {"politics": 0.6, "Science": 0.4}, "sentiment": {"Positive": 0.1, "neutral": 0.8, "negative": 0.1}}` +
		"\n```"

	v, err := ParseAnswer(content, testLabels)
	if err != nil {
		t.Fatalf("ParseAnswer failed: %v", err)
	}

	want := []float64{0.8, 0.6, 0, 0.4, 0, 0.1, 0.8, 0.1}
	if len(v) != len(want) {
		t.Fatalf("Expected %v, got %v", want, v)
	}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, v)
		}
	}
}

func TestParseAnswer_Errors(t *testing.T) {
	for _, content := range []string{
		"no json here",
		`{"credibility": "high"}`,
		`{"subjects": {"Politics": 1}}`,
		`} backwards {`,
	} {
		if _, err := ParseAnswer(content, testLabels); !errors.Is(err, ErrMalformedVector) {
			t.Errorf("%q: expected ErrMalformedVector, got %v", content, err)
		}
	}
}

func TestNewPredictor(t *testing.T) {
	p, err := NewPredictor(Config{})
	if err != nil || p != nil {
		t.Errorf("Expected disabled predictor, got %v %v", p, err)
	}

	if _, err := NewPredictor(Config{Provider: "nope"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if _, err := NewPredictor(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for OpenAI without key")
	}
	if _, err := NewPredictor(Config{Provider: "anthropic"}); err == nil {
		t.Error("Expected error for Anthropic without key")
	}
	if _, err := NewPredictor(Config{Provider: "ollama"}); err == nil {
		t.Error("Expected error for Ollama without model")
	}
	if _, err := NewPredictor(Config{Provider: "endpoint"}); err == nil {
		t.Error("Expected error for endpoint without URL")
	}

	tests := []struct {
		config Config
		name   string
	}{
		{Config{Provider: "endpoint", BaseURL: "http://localhost:8501/v1/models/news:predict"}, "endpoint"},
		{Config{Provider: "OpenAI", APIKey: "k"}, "openai"},
		{Config{Provider: "claude", APIKey: "k"}, "anthropic"},
		{Config{Provider: "ollama", Model: "llama3.1"}, "ollama"},
	}
	for _, tt := range tests {
		p, err := NewPredictor(tt.config)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if p.Name() != tt.name {
			t.Errorf("Expected %s, got %s", tt.name, p.Name())
		}
	}
}
