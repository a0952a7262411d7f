package predict

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const systemPrompt = "You rate news text for a heuristic credibility tool. Reply with a single JSON object and nothing else."

// maxPromptChars bounds the article text sent to language models
const maxPromptChars = 6000

// BuildPrompt asks a language model for the prediction as JSON
func BuildPrompt(text string, labels []string) string {
	if utf8.RuneCountInString(text) > maxPromptChars {
		text = string([]rune(text)[:maxPromptChars]) + " [truncated]"
	}

	subjects := make([]string, len(labels))
	for i, l := range labels {
		subjects[i] = fmt.Sprintf("%q: <0..1>", l)
	}

	return fmt.Sprintf(`Rate the following news text.

Answer with JSON in exactly this shape:
{"credibility": <0..1>, "subjects": {%s}, "sentiment": {"positive": <0..1>, "neutral": <0..1>, "negative": <0..1>}}

Rules:
1. credibility is how trustworthy the wording and sourcing look, not whether the events are true.
2. subject shares sum to 1; sentiment shares sum to 1.
3. Do not add any other keys or any prose.

Text:
"""
%s
"""`, strings.Join(subjects, ", "), text)
}

type answer struct {
	Credibility *float64           `json:"credibility"`
	Subjects    map[string]float64 `json:"subjects"`
	Sentiment   map[string]float64 `json:"sentiment"`
}

// ParseAnswer converts a language model's JSON answer into a prediction
// vector. Text around the JSON object is ignored; missing subjects count 0.
func ParseAnswer(content string, labels []string) ([]float64, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in answer", ErrMalformedVector)
	}

	var a answer
	if err := json.Unmarshal([]byte(content[start:end+1]), &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedVector, err)
	}
	if a.Credibility == nil {
		return nil, fmt.Errorf("%w: missing credibility", ErrMalformedVector)
	}

	subjects := make(map[string]float64, len(a.Subjects))
	for k, v := range a.Subjects {
		subjects[strings.ToLower(strings.TrimSpace(k))] = v
	}
	sentiment := make(map[string]float64, len(a.Sentiment))
	for k, v := range a.Sentiment {
		sentiment[strings.ToLower(strings.TrimSpace(k))] = v
	}

	vector := make([]float64, 0, len(labels)+4)
	vector = append(vector, *a.Credibility)
	for _, l := range labels {
		vector = append(vector, subjects[strings.ToLower(l)])
	}
	vector = append(vector, sentiment["positive"], sentiment["neutral"], sentiment["negative"])
	return vector, nil
}
