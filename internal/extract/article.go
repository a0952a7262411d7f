// Package extract turns fetched HTML into article text
package extract

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ppiankov/credence/internal/model"
)

// ErrNoContent is returned when a page has no readable text
var ErrNoContent = errors.New("no readable content")

// Extractor extracts the title and body text of an article page
type Extractor struct {
	minParagraph int
}

// NewExtractor creates a new article extractor
func NewExtractor() *Extractor {
	return &Extractor{minParagraph: 2}
}

// Extract extracts an article from HTML content
func (e *Extractor) Extract(htmlContent string, pageURL string) (*model.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	article := &model.Article{
		URL:       pageURL,
		Title:     e.title(doc),
		Published: published(doc),
	}

	doc.Find("script, style, noscript, iframe, nav, header, footer, aside, form, figure figcaption").Remove()

	// 1. Semantic containers, 2. every paragraph, 3. all visible text
	body := ""
	for _, sel := range []string{"article", "[itemprop=articleBody]", "main", "[role=main]"} {
		if container := doc.Find(sel).First(); container.Length() > 0 {
			if body = e.paragraphs(container.Find("p")); body == "" {
				body = collapse(container.Text())
			}
			if body != "" {
				break
			}
		}
	}
	if body == "" {
		body = e.paragraphs(doc.Find("p"))
	}
	if body == "" && len(doc.Nodes) > 0 {
		body = collapse(extractVisibleText(doc.Nodes[0]))
	}

	article.Body = body
	if article.Body == "" && article.Title == "" {
		return nil, ErrNoContent
	}
	return article, nil
}

func (e *Extractor) title(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && strings.TrimSpace(og) != "" {
		return collapse(og)
	}
	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapse(doc.Find("h1").First().Text())
}

// paragraphs joins paragraph texts with blank lines, skipping fragments
// shorter than minParagraph words
func (e *Extractor) paragraphs(sel *goquery.Selection) string {
	var parts []string
	seen := make(map[string]bool)
	sel.Each(func(_ int, p *goquery.Selection) {
		text := collapse(p.Text())
		if len(strings.Fields(text)) < e.minParagraph || seen[text] {
			return
		}
		seen[text] = true
		parts = append(parts, text)
	})
	return strings.Join(parts, "\n\n")
}

func published(doc *goquery.Document) *time.Time {
	for _, sel := range []string{
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	} {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
				return &t
			}
		}
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
			return &t
		}
	}
	return nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
