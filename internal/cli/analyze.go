package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ppiankov/credence/internal/engine"
	"github.com/ppiankov/credence/internal/pipeline"
)

var (
	inputFile      string
	analyzeTimeout time.Duration
)

// errNoInput is returned when analyze has nothing to read
var errNoInput = errors.New("no input: pass text as arguments, use --file, or pipe text on stdin")

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Score a headline or article text",
	Long: `Analyze scores text for credibility, subject and sentiment.

Text is taken from the arguments, from --file, or from stdin when stdin is
not a terminal.

Example:
  credence analyze "Officials said the vote was confirmed, according to Reuters."
  credence analyze --file article.txt --md report.md
  cat article.txt | credence analyze --json -`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read text from a file")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", `output JSON path ("-" for stdout)`)
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "overall timeout, including the remote model")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(args, inputFile, os.Stdin)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	report, err := p.AnalyzeText(ctx, text, nil)
	if errors.Is(err, engine.ErrEmptyInput) {
		return err
	}
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	return emitReport(cmd.OutOrStdout(), p.Renderer(), report, outJSON, outMD)
}

// readInput picks the text source: arguments, then --file, then stdin when
// it is not a terminal
func readInput(args []string, file string, stdin *os.File) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		return string(data), nil
	case stdin != nil && !term.IsTerminal(int(stdin.Fd())):
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", errNoInput
	}
}
