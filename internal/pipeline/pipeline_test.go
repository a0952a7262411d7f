package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/engine"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/predict"
)

const articleHTML = `<html>
<head><title>Council approves budget</title></head>
<body>
<nav>Home | World | Sports</nav>
<article>
<h1>Council approves budget</h1>
<p>The city council confirmed the new budget on Tuesday, officials said.</p>
<p>According to Reuters, the plan includes funding for the hospital and public transport.</p>
</article>
</body>
</html>`

type stubPredictor struct {
	vector []float64
	err    error
}

func (s *stubPredictor) Name() string { return "stub" }

func (s *stubPredictor) Predict(ctx context.Context, text string) ([]float64, error) {
	return s.vector, s.err
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.HTTP.RespectRobots = false
	cfg.HTTP.Timeout = 5 * time.Second
	cfg.Output.Color = false
	return cfg
}

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(testConfig(), nil, opts...)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	return p
}

func TestAnalyzeText(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.AnalyzeText(context.Background(), "Officials said the senate vote was confirmed, according to Reuters.", nil)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if report.ID == "" {
		t.Error("Expected a report ID")
	}
	if report.Model != nil {
		t.Error("Expected no model advice without a provider")
	}
	if report.Analysis.Result.CredibilityScore <= 0.5 {
		t.Errorf("Expected credible text above 0.5, got %v", report.Analysis.Result.CredibilityScore)
	}
	if !report.Principles.Heuristic {
		t.Error("Expected default principles")
	}
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.AnalyzeText(context.Background(), "   \n\t", nil)
	if !errors.Is(err, engine.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeText_ModelNeverChangesScores(t *testing.T) {
	const input = "SHOCKING!! You wont believe what they found"

	plain, err := newTestPipeline(t).AnalyzeText(context.Background(), input, nil)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	vector := []float64{0.9, 0.1, 0.1, 0.1, 0.1, 0.2, 0.2, 0.2, 0.3, 0.3, 0.4}
	cfg := predict.Config{Timeout: 1}
	withModel := newTestPipeline(t, WithAdvisor(predict.NewAdvisor(&stubPredictor{vector: vector}, cfg, nil, 0, nil)))

	advised, err := withModel.AnalyzeText(context.Background(), input, nil)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if advised.Analysis.Result.CredibilityScore != plain.Analysis.Result.CredibilityScore {
		t.Errorf("Model changed the credibility score: %v != %v",
			advised.Analysis.Result.CredibilityScore, plain.Analysis.Result.CredibilityScore)
	}
	if advised.Model == nil || !advised.Model.Available {
		t.Fatalf("Expected model advice, got %+v", advised.Model)
	}
	if advised.Model.Agreement == nil {
		t.Error("Expected agreement to be computed")
	}
}

func TestAnalyzeText_ModelFailureIsAWarning(t *testing.T) {
	cfg := predict.Config{Timeout: 1}
	p := newTestPipeline(t, WithAdvisor(predict.NewAdvisor(&stubPredictor{err: fmt.Errorf("connection refused")}, cfg, nil, 0, nil)))

	report, err := p.AnalyzeText(context.Background(), "The team won the championship game.", nil)
	if err != nil {
		t.Fatalf("Expected model failure to be ignored, got %v", err)
	}
	if report.Model == nil || report.Model.Available || len(report.Model.Warnings) == 0 {
		t.Errorf("Expected unavailable advice with warnings, got %+v", report.Model)
	}
}

func TestAnalyzeURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, articleHTML)
	}))
	defer server.Close()

	p := newTestPipeline(t)
	report, err := p.AnalyzeURL(context.Background(), server.URL+"/news/budget")
	if err != nil {
		t.Fatalf("AnalyzeURL failed: %v", err)
	}

	if report.Source == nil {
		t.Fatal("Expected source info")
	}
	if report.Source.Title != "Council approves budget" {
		t.Errorf("Unexpected title: %q", report.Source.Title)
	}
	if report.Source.Authority != model.TierTertiary {
		t.Errorf("Expected tertiary authority for a test host, got %s", report.Source.Authority)
	}
	if report.Analysis.Input.Words == 0 {
		t.Error("Expected words to be counted")
	}
}

func TestAnalyzeURL_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestPipeline(t).AnalyzeURL(context.Background(), server.URL)
	if err == nil || !strings.HasPrefix(err.Error(), "fetch: ") {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestNewPipeline_BadProviderIsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Model.Provider = "unknown"

	p, err := NewPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("Expected pipeline without model, got %v", err)
	}
	if p.advisor.IsEnabled() {
		t.Error("Expected advisor to be disabled")
	}
}

func TestNewPipeline_BadLexicon(t *testing.T) {
	cfg := testConfig()
	cfg.Lexicon.Path = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := NewPipeline(cfg, nil); err == nil {
		t.Error("Expected error for missing lexicon file")
	}
}

func sampleReport(t *testing.T) *model.Report {
	t.Helper()
	report, err := newTestPipeline(t).AnalyzeText(context.Background(),
		"Officials said the hospital outbreak is under investigation, according to the World Health Organization.",
		&model.SourceInfo{URL: "https://www.reuters.com/world/x", Host: "reuters.com", Title: "Outbreak", Authority: model.TierSecondary})
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	return report
}

func TestRenderer_JSONContract(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	if err := NewRenderer(model.OutputConfig{}).WriteJSON(&buf, report); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var decoded struct {
		Analysis struct {
			Result map[string]json.RawMessage `json:"result"`
		} `json:"analysis"`
		Source struct {
			Authority string `json:"authority"`
		} `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	for _, field := range []string{"credibility_score", "subject_distribution", "sentiment_distribution"} {
		if _, ok := decoded.Analysis.Result[field]; !ok {
			t.Errorf("Expected field %q in result", field)
		}
	}
	if decoded.Source.Authority != "secondary" {
		t.Errorf("Expected authority as text, got %q", decoded.Source.Authority)
	}
}

func TestRenderer_Markdown(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	if err := NewRenderer(model.OutputConfig{IncludeFooter: true}).WriteMarkdown(&buf, report); err != nil {
		t.Fatalf("WriteMarkdown failed: %v", err)
	}
	md := buf.String()

	for _, want := range []string{"# Credence Report", "## Credibility", "## Subjects", "## Sentiment", "| Health |", "reuters.com", "not a statistical"} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestRenderer_Files(t *testing.T) {
	report := sampleReport(t)
	dir := filepath.Join(t.TempDir(), "out")
	r := NewRenderer(model.OutputConfig{})

	jsonPath := filepath.Join(dir, "report.json")
	mdPath := filepath.Join(dir, "report.md")
	if err := r.RenderJSON(report, jsonPath); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}
	if err := r.RenderMarkdown(report, mdPath); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath} {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("Expected non-empty file %s, got %v", path, err)
		}
	}
}

func TestRenderer_Summary(t *testing.T) {
	report := sampleReport(t)

	var buf bytes.Buffer
	NewRenderer(model.OutputConfig{ShowSignals: true}).RenderSummary(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "Credibility: ") || !strings.Contains(out, "Sentiment: ") {
		t.Errorf("Unexpected summary:\n%s", out)
	}

	// Labels are padded so the bars line up
	var offsets []int
	for _, line := range strings.Split(out, "\n") {
		if idx := strings.IndexAny(line, "█·"); idx > 0 && strings.HasPrefix(line, "  ") {
			offsets = append(offsets, idx)
		}
	}
	if len(offsets) != len(report.Analysis.Subjects.Labels) {
		t.Fatalf("Expected one bar per subject, got %d", len(offsets))
	}
	for _, off := range offsets {
		if off != offsets[0] {
			t.Errorf("Bars are not aligned: %v", offsets)
			break
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0); got != strings.Repeat("·", barWidth) {
		t.Errorf("bar(0) = %q", got)
	}
	if got := bar(1); got != strings.Repeat("█", barWidth) {
		t.Errorf("bar(1) = %q", got)
	}
	if got := bar(0.5); strings.Count(got, "█") != barWidth/2 {
		t.Errorf("bar(0.5) = %q", got)
	}
}
