// Package pipeline turns URLs, files and raw text into rendered reports
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/engine"
	"github.com/ppiankov/credence/internal/extract"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/predict"
	"github.com/ppiankov/credence/internal/source"
	"github.com/ppiankov/credence/internal/util"
)

// Pipeline orchestrates fetching, extraction, scoring and the optional
// model advice
type Pipeline struct {
	engine     *engine.Engine
	fetcher    *Fetcher
	extractor  *extract.Extractor
	classifier *source.Classifier
	advisor    *predict.Advisor // nil when no model is configured
	renderer   *Renderer
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithAdvisor replaces the configured model advisor
func WithAdvisor(a *predict.Advisor) Option {
	return func(p *Pipeline) { p.advisor = a }
}

// WithFetcher replaces the configured fetcher
func WithFetcher(f *Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// NewPipeline creates a new pipeline with the given configuration. A model
// provider that fails to initialize is logged and left disabled.
func NewPipeline(cfg *model.Config, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	eng, err := engine.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	store := cache.New(cfg.Cache)

	fetcher := NewFetcherFromConfig(cfg.HTTP).
		WithCache(store, cfg.Cache.DiskTTL).
		WithLogger(logger)
	if cfg.HTTP.RespectRobots {
		fetcher.WithRobots(util.NewRobotsChecker(fetcher.Client(), cfg.HTTP.UserAgent, cfg.HTTP.Timeout))
	}

	p := &Pipeline{
		engine:     eng,
		fetcher:    fetcher,
		extractor:  extract.NewExtractor(),
		classifier: source.NewClassifier(&cfg.Authority),
		renderer:   NewRenderer(cfg.Output),
		logger:     logger,
		now:        time.Now,
	}

	if cfg.Model.Provider != "" {
		predictorConfig := predict.ConfigFromModel(cfg.Model, cfg.HTTP, eng.SubjectLabels())
		predictor, err := predict.NewPredictor(predictorConfig)
		if err != nil {
			logger.Warn("model provider disabled", "provider", cfg.Model.Provider, "error", err)
		} else {
			p.advisor = predict.NewAdvisor(predictor, predictorConfig, store, cfg.Cache.DiskTTL, logger)
		}
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Engine returns the scoring engine
func (p *Pipeline) Engine() *engine.Engine {
	return p.engine
}

// Renderer returns the report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Fetcher returns the page fetcher
func (p *Pipeline) Fetcher() *Fetcher {
	return p.fetcher
}

// Classifier returns the source authority classifier
func (p *Pipeline) Classifier() *source.Classifier {
	return p.classifier
}

// AnalyzeText scores raw text. The model, when configured, runs alongside
// the engine; its failures end up as warnings on the report and only the
// engine's error is returned.
func (p *Pipeline) AnalyzeText(ctx context.Context, raw string, src *model.SourceInfo) (*model.Report, error) {
	var (
		analysis *model.Analysis
		advice   *model.ModelAdvice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := p.engine.Analyze(raw)
		if err != nil {
			return err
		}
		analysis = a
		return nil
	})
	if p.advisor.IsEnabled() {
		g.Go(func() error {
			advice = p.advisor.Advise(gctx, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	predict.Compare(advice, analysis)

	report := &model.Report{
		ID:         uuid.NewString(),
		AnalyzedAt: p.now().UTC(),
		Source:     src,
		Analysis:   *analysis,
		Principles: model.DefaultPrinciples(),
		Model:      advice,
	}

	p.logger.Debug("analysis complete",
		"id", report.ID,
		"credibility", analysis.Result.CredibilityScore,
		"verdict", analysis.Credibility.Verdict,
		"words", analysis.Input.Words)

	return report, nil
}

// AnalyzeArticle scores an extracted or feed article
func (p *Pipeline) AnalyzeArticle(ctx context.Context, article *model.Article) (*model.Report, error) {
	var src *model.SourceInfo
	if article.URL != "" {
		src = p.classifier.Describe(article.URL, article.Title)
		src.Published = article.Published
	}
	return p.AnalyzeText(ctx, article.Text(), src)
}

// AnalyzeURL fetches a page, extracts its article and scores it
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	article, err := p.extractor.Extract(fetched.HTML, fetched.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	report, err := p.AnalyzeArticle(ctx, article)
	if err != nil {
		return nil, err
	}
	if report.Source != nil {
		report.Source.FromCache = fetched.FromCache
	}
	return report, nil
}
