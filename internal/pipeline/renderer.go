package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ppiankov/credence/internal/model"
)

const barWidth = 30

// Renderer writes reports as JSON, Markdown or a terminal summary
type Renderer struct {
	includeFooter bool
	showSignals   bool

	good    *color.Color
	bad     *color.Color
	neutral *color.Color
	heading *color.Color
	faint   *color.Color
}

// NewRenderer creates a renderer. Colors follow the terminal unless the
// output config turns them off.
func NewRenderer(cfg model.OutputConfig) *Renderer {
	r := &Renderer{
		includeFooter: cfg.IncludeFooter,
		showSignals:   cfg.ShowSignals || cfg.Verbose,
		good:          color.New(color.FgGreen, color.Bold),
		bad:           color.New(color.FgRed, color.Bold),
		neutral:       color.New(color.FgYellow, color.Bold),
		heading:       color.New(color.Bold),
		faint:         color.New(color.Faint),
	}
	if !cfg.Color {
		for _, c := range []*color.Color{r.good, r.bad, r.neutral, r.heading, r.faint} {
			c.DisableColor()
		}
	}
	return r
}

// RenderJSON writes the report as indented JSON to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteJSON(w, report) })
}

// WriteJSON writes the report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, func(w io.Writer) error { return r.WriteMarkdown(w, report) })
}

// WriteMarkdown writes the report as Markdown
func (r *Renderer) WriteMarkdown(w io.Writer, report *model.Report) error {
	a := report.Analysis
	var b strings.Builder

	b.WriteString("# Credence Report\n\n")
	if src := report.Source; src != nil {
		if src.Title != "" {
			fmt.Fprintf(&b, "**Title:** %s  \n", src.Title)
		}
		fmt.Fprintf(&b, "**Source:** %s (%s)  \n", src.URL, src.Authority)
		if src.Published != nil {
			fmt.Fprintf(&b, "**Published:** %s  \n", src.Published.UTC().Format("2006-01-02"))
		}
	}
	fmt.Fprintf(&b, "**Analyzed:** %s  \n", report.AnalyzedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "**Report ID:** %s\n\n", report.ID)

	b.WriteString("## Credibility\n\n")
	fmt.Fprintf(&b, "**Score:** %s (%s)\n\n", percent(a.Credibility.Score), a.Credibility.Verdict)
	if len(a.Credibility.Signals) > 0 {
		b.WriteString("| Signal | Change | Details |\n|---|---|---|\n")
		for _, s := range a.Credibility.Signals {
			fmt.Fprintf(&b, "| %s | %+.2f | %s |\n", s.Type, s.Delta, escapeCell(s.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Subjects\n\n")
	if a.Subjects.Uniform {
		b.WriteString("_No subject keywords matched; shares are uniform._\n\n")
	}
	b.WriteString("| Subject | Share | Matches |\n|---|---|---|\n")
	for i, label := range a.Subjects.Labels {
		matched := ""
		if i < len(a.Subjects.Matched) {
			matched = strings.Join(a.Subjects.Matched[i], ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", label, percent(a.Subjects.Distribution[i]), escapeCell(matched))
	}
	b.WriteString("\n")

	b.WriteString("## Sentiment\n\n")
	b.WriteString("| Positive | Neutral | Negative |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n", percent(a.Sentiment.Positive), percent(a.Sentiment.Neutral), percent(a.Sentiment.Negative))

	if m := report.Model; m != nil {
		b.WriteString("## Model Advice\n\n")
		b.WriteString("_Advisory only. The model never changes the scores above._\n\n")
		if m.Available {
			fmt.Fprintf(&b, "- Provider: %s", m.Provider)
			if m.Model != "" {
				fmt.Fprintf(&b, " (%s)", m.Model)
			}
			b.WriteString("\n")
			fmt.Fprintf(&b, "- Credibility: %s\n", percent(m.CredibilityScore))
			if m.Agreement != nil {
				fmt.Fprintf(&b, "- Agreement with heuristics: %s\n", percent(*m.Agreement))
			}
		}
		for _, warning := range m.Warnings {
			fmt.Fprintf(&b, "- ⚠ %s\n", warning)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_Input: %d words, %d sentences, %d characters._\n", a.Input.Words, a.Input.Sentences, a.Input.Characters)

	if r.includeFooter {
		b.WriteString("\n---\n\n")
		b.WriteString("Scores come from keyword and pattern heuristics. They are not a statistical ")
		b.WriteString("measure of truth; read the signals before trusting a number.\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderSummary prints a short terminal summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	a := report.Analysis

	if src := report.Source; src != nil {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		fmt.Fprintf(w, "%s\n", r.heading.Sprint(title))
		fmt.Fprintf(w, "%s\n", r.faint.Sprintf("%s · %s", src.Host, src.Authority))
	}

	fmt.Fprintf(w, "\nCredibility: %s  %s\n", r.verdictColor(a.Credibility.Verdict).Sprint(percent(a.Credibility.Score)), a.Credibility.Verdict)

	fmt.Fprintf(w, "\nSubjects:\n")
	labelWidth := 0
	for _, label := range a.Subjects.Labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(label))
	}
	for i, label := range a.Subjects.Labels {
		share := a.Subjects.Distribution[i]
		fmt.Fprintf(w, "  %s %s %s\n", runewidth.FillRight(label, labelWidth), bar(share), percent(share))
	}
	if a.Subjects.Uniform {
		fmt.Fprintf(w, "  %s\n", r.faint.Sprint("(no subject keywords matched)"))
	}

	fmt.Fprintf(w, "\nSentiment: %s positive, %s neutral, %s negative\n",
		r.good.Sprint(percent(a.Sentiment.Positive)),
		r.neutral.Sprint(percent(a.Sentiment.Neutral)),
		r.bad.Sprint(percent(a.Sentiment.Negative)))

	if r.showSignals && len(a.Credibility.Signals) > 0 {
		fmt.Fprintf(w, "\nSignals:\n")
		for _, s := range a.Credibility.Signals {
			c := r.faint
			switch {
			case s.Delta > 0:
				c = r.good
			case s.Delta < 0:
				c = r.bad
			}
			fmt.Fprintf(w, "  %s %s\n", c.Sprintf("%+.2f", s.Delta), truncate(s.Description, 80))
		}
	}

	if m := report.Model; m != nil {
		if m.Available {
			line := fmt.Sprintf("\nModel (%s): credibility %s", m.Provider, percent(m.CredibilityScore))
			if m.Agreement != nil {
				line += fmt.Sprintf(", agreement %s", percent(*m.Agreement))
			}
			fmt.Fprintln(w, line)
		}
		for _, warning := range m.Warnings {
			fmt.Fprintf(w, "%s %s\n", r.neutral.Sprint("⚠"), warning)
		}
	}
}

func (r *Renderer) verdictColor(v model.Verdict) *color.Color {
	switch v {
	case model.VerdictLikelyReal:
		return r.good
	case model.VerdictLikelyFake:
		return r.bad
	default:
		return r.neutral
	}
}

func bar(share float64) string {
	n := int(math.Round(share * barWidth))
	n = min(max(n, 0), barWidth)
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
