package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ppiankov/credence/internal/cache"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/util"
)

// ErrRobotsDisallowed is returned when robots.txt forbids fetching a URL
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

const maxFetchAttempts = 3

// fetchSleepFunc is replaced in tests to skip backoff delays
var fetchSleepFunc = sleepContext

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Fetcher fetches HTML content from URLs
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	cache      cache.Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewFetcher creates a new Fetcher. Proxy settings fall back to the
// environment when empty.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecureTLS bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	client := util.NewHTTPClient(timeout, httpProxy, httpsProxy, noProxy)
	if insecureTLS {
		transport := client.Transport.(*http.Transport)
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via http.insecure_tls
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 3 {
			return fmt.Errorf("stopped after 3 redirects")
		}
		return nil
	}

	return &Fetcher{
		httpClient: client,
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		cache:      cache.Nop{},
		logger:     slog.New(slog.DiscardHandler),
	}
}

// NewFetcherFromConfig creates a Fetcher from the HTTP section of the config
func NewFetcherFromConfig(cfg model.HTTPConfig) *Fetcher {
	return NewFetcher(cfg.Timeout, cfg.UserAgent, cfg.MaxBodyBytes, cfg.InsecureTLS, cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)
}

// WithRobots enables robots.txt checks before each fetch
func (f *Fetcher) WithRobots(checker *util.RobotsChecker) *Fetcher {
	f.robots = checker
	return f
}

// WithCache stores successful fetches for ttl
func (f *Fetcher) WithCache(c cache.Cache, ttl time.Duration) *Fetcher {
	if c == nil {
		c = cache.Nop{}
	}
	f.cache = c
	f.cacheTTL = ttl
	return f
}

// WithLogger sets the logger
func (f *Fetcher) WithLogger(logger *slog.Logger) *Fetcher {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Client returns the underlying HTTP client
func (f *Fetcher) Client() *http.Client {
	return f.httpClient
}

// FetchResult contains the fetched HTML and metadata
type FetchResult struct {
	HTML        string `msgpack:"html"`
	StatusCode  int    `msgpack:"status"`
	ContentType string `msgpack:"content_type"`
	FinalURL    string `msgpack:"final_url"`
	FromCache   bool   `msgpack:"-"`
}

// Fetch retrieves HTML content from the given URL
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	// Read body with size limit
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &FetchResult{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

// FetchWithRetry checks robots.txt and the cache, then fetches with up to
// three attempts. Server errors, 429 and network errors are retried with
// exponential backoff.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(cache.NamespacePage, rawURL)
	if data, ok := f.cache.Get(key); ok {
		var cached FetchResult
		if err := msgpack.Unmarshal(data, &cached); err == nil {
			cached.FromCache = true
			f.logger.Debug("page cache hit", "url", rawURL)
			return &cached, nil
		}
		_ = f.cache.Delete(key)
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
		}
		if delay > 0 {
			if err := fetchSleepFunc(ctx, delay); err != nil {
				return nil, fmt.Errorf("crawl delay: %w", err)
			}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			if data, err := msgpack.Marshal(result); err == nil {
				if err := f.cache.Set(key, data, f.cacheTTL); err != nil {
					f.logger.Warn("page cache write failed", "url", rawURL, "error", err)
				}
			}
			return result, nil
		}
		lastErr = err

		if attempt == maxFetchAttempts || !isRetryableFetchError(err) || ctx.Err() != nil {
			break
		}
		backoff := time.Duration(1<<(attempt-1)) * time.Second
		f.logger.Debug("retrying fetch", "url", rawURL, "attempt", attempt, "backoff", backoff, "error", err)
		if err := fetchSleepFunc(ctx, backoff); err != nil {
			return nil, fmt.Errorf("%w (retry aborted: %v)", lastErr, err)
		}
	}

	return nil, lastErr
}

// isRetryableFetchError reports whether a fetch error is worth another attempt
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	if strings.HasPrefix(msg, "unexpected status: ") {
		code := strings.TrimPrefix(msg, "unexpected status: ")
		return strings.HasPrefix(code, "5") || strings.HasPrefix(code, "429")
	}
	return strings.HasPrefix(msg, "fetch: ")
}
