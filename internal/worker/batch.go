package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/credence/internal/model"
)

// Analyzer is the part of the pipeline a batch needs
type Analyzer interface {
	AnalyzeURL(ctx context.Context, url string) (*model.Report, error)
	AnalyzeText(ctx context.Context, text string, src *model.SourceInfo) (*model.Report, error)
}

// InputKind tells how a batch input is analyzed
type InputKind string

const (
	InputURL  InputKind = "url"
	InputFile InputKind = "file"
)

// KindOf classifies a batch input: http(s) URLs are fetched, anything else
// is read as a local text file
func KindOf(input string) InputKind {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return InputURL
	}
	return InputFile
}

// AnalyzeJob analyzes one batch input
type AnalyzeJob struct {
	Input    string
	Analyzer Analyzer
	Limiter  *Limiter // optional, applies to URLs only
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result := &ItemResult{Input: j.Input, Kind: KindOf(j.Input)}

	switch result.Kind {
	case InputURL:
		if j.Limiter != nil {
			if err := j.Limiter.Wait(ctx, j.Input); err != nil {
				result.Error = fmt.Errorf("rate limit: %w", err)
				return result
			}
		}
		result.Report, result.Error = j.Analyzer.AnalyzeURL(ctx, j.Input)

	default:
		data, err := os.ReadFile(j.Input)
		if err != nil {
			result.Error = fmt.Errorf("read file: %w", err)
			return result
		}
		src := &model.SourceInfo{Title: filepath.Base(j.Input)}
		result.Report, result.Error = j.Analyzer.AnalyzeText(ctx, string(data), src)
	}

	if result.Error != nil {
		result.Report = nil
	}
	return result
}

// ItemResult is the outcome of one batch input
type ItemResult struct {
	Input  string
	Kind   InputKind
	Report *model.Report
	Error  error
}

// GetError returns the error from the analysis
func (r *ItemResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. URL fetches are limited to
// requestsPerSecond per domain; a non-positive rate disables the limit.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// Process analyzes inputs concurrently. Results are in input order.
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*ItemResult {
	if len(inputs) == 0 {
		return []*ItemResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:    input,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	items := make([]*ItemResult, len(results))
	for i, result := range results {
		items[i] = result.(*ItemResult)
	}
	return items
}

// ProcessFile reads inputs from a file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ItemResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads one URL or file path per line. Blank lines and
// lines starting with # are skipped and duplicates are dropped.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
