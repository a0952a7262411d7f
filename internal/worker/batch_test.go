package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/credence/internal/model"
)

// MockAnalyzer implements Analyzer
type MockAnalyzer struct {
	ShouldError bool
	urlCalls    atomic.Int32
	textCalls   atomic.Int32
}

func (m *MockAnalyzer) AnalyzeURL(ctx context.Context, url string) (*model.Report, error) {
	m.urlCalls.Add(1)
	time.Sleep(10 * time.Millisecond) // Simulate work
	if m.ShouldError {
		return nil, errors.New("analyze error")
	}
	return &model.Report{Source: &model.SourceInfo{URL: url}}, nil
}

func (m *MockAnalyzer) AnalyzeText(ctx context.Context, text string, src *model.SourceInfo) (*model.Report, error) {
	m.textCalls.Add(1)
	if m.ShouldError {
		return nil, errors.New("analyze error")
	}
	return &model.Report{Source: src, Analysis: model.Analysis{Input: model.InputStats{Characters: len(text)}}}, nil
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestKindOf(t *testing.T) {
	tests := map[string]InputKind{
		"http://example.com":   InputURL,
		"HTTPS://example.com/": InputURL,
		"notes/article.txt":    InputFile,
		"/tmp/story.md":        InputFile,
		"ftp://example.com":    InputFile,
	}
	for input, want := range tests {
		if got := KindOf(input); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	urls := []string{"http://example.com", "http://google.com", "http://bing.com"}
	results := processor.Process(context.Background(), urls)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Input != urls[i] {
			t.Errorf("expected input order to be kept, got %s at %d", res.Input, i)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Input, res.Error)
		}
		if res.Report == nil || res.Report.Source.URL != urls[i] {
			t.Errorf("expected report for %s", urls[i])
		}
	}
}

func TestBatchProcessor_Process_LargeInput(t *testing.T) {
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 1, 0, 0)

	urls := make([]string, 50)
	for i := range urls {
		urls[i] = fmt.Sprintf("http://example.com/story/%d", i)
	}

	done := make(chan []*ItemResult)
	go func() {
		done <- processor.Process(context.Background(), urls)
	}()

	select {
	case results := <-done:
		if len(results) != len(urls) {
			t.Fatalf("expected %d results, got %d", len(urls), len(results))
		}
		for i, res := range results {
			if res.Input != urls[i] {
				t.Errorf("result %d is for %s, want %s", i, res.Input, urls[i])
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Process did not finish")
	}
}

func TestBatchProcessor_Process_Error(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{ShouldError: true}, 2, 0, 0)

	results := processor.Process(context.Background(), []string{"http://example.com"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Report != nil {
		t.Error("expected nil report on error")
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0)

	results := processor.Process(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_Process_Files(t *testing.T) {
	article := writeTemp(t, "story.txt", "The council approved the budget.")
	analyzer := &MockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results := processor.Process(context.Background(), []string{article, filepath.Join(t.TempDir(), "missing.txt")})

	if results[0].Error != nil {
		t.Fatalf("unexpected error: %v", results[0].Error)
	}
	if results[0].Kind != InputFile || results[0].Report.Source.Title != "story.txt" {
		t.Errorf("unexpected result: %+v", results[0])
	}
	if results[0].Report.Analysis.Input.Characters != len("The council approved the budget.") {
		t.Error("expected file contents to be analyzed")
	}

	if results[1].Error == nil {
		t.Error("expected error for missing file")
	}
	if analyzer.urlCalls.Load() != 0 || analyzer.textCalls.Load() != 1 {
		t.Errorf("expected one text analysis, got %d url and %d text calls", analyzer.urlCalls.Load(), analyzer.textCalls.Load())
	}
}

func TestBatchProcessor_Process_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&MockAnalyzer{}, 1, 0.001, 1)
	done := make(chan struct{})
	go func() {
		processor.Process(ctx, []string{"http://example.com", "http://example.com/2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Process blocked after cancellation")
	}
}

func TestReadInputsFromFile(t *testing.T) {
	path := writeTemp(t, "inputs", `http://example.com
# comment
https://google.com
   
articles/local.txt
http://bing.com   `)

	inputs, err := ReadInputsFromFile(path)
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "https://google.com", "articles/local.txt", "http://bing.com"}
	if len(inputs) != len(expected) {
		t.Fatalf("expected %d inputs, got %d", len(expected), len(inputs))
	}
	for i, input := range inputs {
		if input != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, input)
		}
	}
}

func TestReadInputsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadInputsFromFile("non_existent_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadInputsFromFile_Deduplication(t *testing.T) {
	path := writeTemp(t, "dedup", "http://example.com\nhttp://example.com\n")

	inputs, err := ReadInputsFromFile(path)
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}
	if len(inputs) != 1 {
		t.Errorf("expected 1 input after deduplication, got %d", len(inputs))
	}
}

func TestItemResult_GetError(t *testing.T) {
	r1 := &ItemResult{Input: "http://example.com"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("analyze failed")
	r2 := &ItemResult{Input: "http://example.com", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeTemp(t, "batch", "http://example.com\nhttps://google.com\n# comment\n\nhttp://bing.com\n")

	results, err := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0).ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	_, err := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0).ProcessFile(context.Background(), "no_such_file.txt")
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile_Empty(t *testing.T) {
	path := writeTemp(t, "empty", "")

	results, err := NewBatchProcessor(&MockAnalyzer{}, 2, 0, 0).ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected 0 results for empty file, got %d", len(results))
	}
}
