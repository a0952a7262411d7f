package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/ppiankov/credence/internal/feed"
)

var (
	watchSchedule string
	watchLimit    int
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <url>",
	Short: "Score new feed items on a schedule",
	Long: `Watch reads a feed immediately and then on a cron schedule, scoring only
items not seen since the command started. Nothing is persisted between runs.

Example:
  credence watch https://feeds.bbci.co.uk/news/rss.xml
  credence watch https://example.com/atom.xml --schedule "0 * * * *"`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "*/30 * * * *", "standard 5-field cron schedule")
	watchCmd.Flags().IntVar(&watchLimit, "limit", 20, "maximum number of items read per poll (0 for all)")
	addHTTPFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	url := args[0]

	schedule, err := cron.ParseStandard(watchSchedule)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", watchSchedule, err)
	}

	cfg, p, err := newFetchPipeline()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := feed.NewWatcher(feed.NewReader(p.Fetcher().Client(), cfg.HTTP.UserAgent), url, watchLimit)
	out := cmd.OutOrStdout()

	poll := func() {
		pollCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
		defer cancel()

		items, err := watcher.Poll(pollCtx)
		if err != nil {
			logger.Warn("feed poll failed", "url", url, "error", err)
			return
		}
		logger.Debug("feed polled", "url", url, "new", len(items), "seen", watcher.Seen())

		for _, s := range analyzeItems(pollCtx, p, items) {
			fmt.Fprintln(out, oneLine(s.report, s.item.Article.Title))
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(schedule, cron.FuncJob(poll))

	fmt.Fprintf(os.Stderr, "Watching %s (%s), press Ctrl+C to stop\n\n", url, watchSchedule)
	poll()

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	fmt.Fprintf(os.Stderr, "\nStopped after %d items\n", watcher.Seen())
	return nil
}
