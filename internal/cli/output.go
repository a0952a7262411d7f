package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/pipeline"
)

// Output flags shared by analyze and scan
var (
	outJSON string
	outMD   string
)

// emitReport writes the requested files and the terminal summary. A JSON
// path of "-" prints JSON to stdout instead of the summary.
func emitReport(w io.Writer, renderer *pipeline.Renderer, report *model.Report, jsonPath, mdPath string) error {
	if jsonPath == "-" {
		if err := renderer.WriteJSON(w, report); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	} else if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if jsonPath != "-" {
		renderer.RenderSummary(w, report)
	}
	return nil
}

// oneLine is the compact form used by batch, feed and watch
func oneLine(report *model.Report, label string) string {
	a := report.Analysis
	subject := a.Subjects.Top()
	if subject == "" {
		subject = "-"
	}
	return fmt.Sprintf("%5.1f%%  %-11s  %-13s  %-8s  %s",
		a.Credibility.Score*100, a.Credibility.Verdict, subject, a.Sentiment.Dominant(), label)
}

// sanitizeFilename turns an input into a safe report file name
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.Trim(s, "/")

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"&", "_",
		"=", "_",
		" ", "-",
	)
	s = replacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." || s == ".." {
		s = "report"
	}
	return s
}
