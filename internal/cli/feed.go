package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/feed"
	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/pipeline"
)

var (
	feedLimit   int
	feedJSON    bool
	feedTimeout time.Duration
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed <url>",
	Short: "Score the latest items of an RSS or Atom feed",
	Long: `Feed reads an RSS or Atom feed and scores each item's title and
description, newest first. Item pages are not fetched.

Example:
  credence feed https://feeds.bbci.co.uk/news/rss.xml
  credence feed https://example.com/atom.xml --limit 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFeed,
}

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().IntVar(&feedLimit, "limit", 10, "maximum number of items (0 for all)")
	feedCmd.Flags().BoolVar(&feedJSON, "json", false, "print reports as a JSON array")
	feedCmd.Flags().DurationVar(&feedTimeout, "timeout", 2*time.Minute, "overall timeout")
	addHTTPFlags(feedCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), feedTimeout)
	defer cancel()

	cfg, p, err := newFetchPipeline()
	if err != nil {
		return err
	}

	reader := feed.NewReader(p.Fetcher().Client(), cfg.HTTP.UserAgent)
	items, err := reader.Read(ctx, args[0], feedLimit)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Read %d items\n\n", len(items))
	}

	scored := analyzeItems(ctx, p, items)
	if feedJSON {
		reports := make([]*model.Report, len(scored))
		for i, s := range scored {
			reports[i] = s.report
		}
		return writeReports(cmd.OutOrStdout(), reports)
	}
	for _, s := range scored {
		fmt.Fprintln(cmd.OutOrStdout(), oneLine(s.report, s.item.Article.Title))
	}
	return nil
}

type scoredItem struct {
	item   feed.Item
	report *model.Report
}

// analyzeItems scores feed items in order. Items without usable text are
// reported on stderr and skipped.
func analyzeItems(ctx context.Context, p *pipeline.Pipeline, items []feed.Item) []scoredItem {
	scored := make([]scoredItem, 0, len(items))
	for _, item := range items {
		report, err := p.AnalyzeArticle(ctx, &item.Article)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", item.GUID, err)
			continue
		}
		scored = append(scored, scoredItem{item: item, report: report})
	}
	return scored
}

func writeReports(w io.Writer, reports []*model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
