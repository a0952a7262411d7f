package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/pipeline"
)

var (
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	insecureTLS bool
	noRobots    bool
	httpProxy   string
	httpsProxy  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch an article and score it",
	Long: `Scan fetches a web page, extracts the article title and body, classifies
the source host and scores the article text.

Example:
  credence scan https://www.reuters.com/world/some-story/
  credence scan https://example.com/news --json report.json --md report.md
  credence scan https://example.com/news --model-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "", `output JSON path ("-" for stdout)`)
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	addHTTPFlags(scanCmd)
	scanCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall scan timeout")
}

// addHTTPFlags registers the fetch flags shared by scan, batch, feed and watch
func addHTTPFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// applyHTTPFlags overlays the fetch flags on the loaded config
func applyHTTPFlags(cfg *model.Config) {
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if httpProxy != "" {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if httpsProxy != "" {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
}

// newFetchPipeline loads the config, applies the fetch flags and builds a
// pipeline
func newFetchPipeline() (*model.Config, *pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	applyHTTPFlags(cfg)

	p, err := pipeline.NewPipeline(cfg, newLogger(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, p, err := newFetchPipeline()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.AnalyzeURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d words\n", report.Analysis.Input.Words)
		if report.Source != nil && report.Source.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Page served from cache\n")
		}
		if report.Model != nil && report.Model.Available {
			fmt.Fprintf(os.Stderr, "✓ Consulted model %s\n", report.Model.Provider)
		}
		fmt.Fprintln(os.Stderr)
	}

	return emitReport(cmd.OutOrStdout(), p.Renderer(), report, outJSON, outMD)
}
