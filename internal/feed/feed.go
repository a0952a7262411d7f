// Package feed reads RSS and Atom feeds into articles
package feed

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/ppiankov/credence/internal/model"
)

// Item is one feed entry ready for analysis
type Item struct {
	GUID    string
	Article model.Article
}

// Reader fetches and parses feeds
type Reader struct {
	parser *gofeed.Parser
}

// NewReader creates a new feed reader. A nil client and an empty user agent
// keep the parser defaults.
func NewReader(client *http.Client, userAgent string) *Reader {
	parser := gofeed.NewParser()
	parser.Client = client
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Reader{parser: parser}
}

// Read fetches a feed and returns its items newest first. A limit of zero or
// less returns every item.
func (r *Reader) Read(ctx context.Context, url string, limit int) ([]Item, error) {
	f, err := r.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return Items(f, limit), nil
}

// Parse parses feed content that was fetched elsewhere
func (r *Reader) Parse(content string, limit int) ([]Item, error) {
	f, err := r.parser.ParseString(content)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return Items(f, limit), nil
}

// Items converts parsed feed entries, skipping entries without text
func Items(f *gofeed.Feed, limit int) []Item {
	items := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		article := model.Article{
			Title:     clean(it.Title),
			Body:      clean(content(it)),
			URL:       strings.TrimSpace(it.Link),
			Published: published(it),
		}
		if article.Title == "" && article.Body == "" {
			continue
		}

		guid := it.GUID
		if guid == "" {
			guid = article.URL
		}
		if guid == "" {
			guid = article.Title
		}
		items = append(items, Item{GUID: guid, Article: article})
	}

	// Newest first; undated entries keep feed order after dated ones
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Article.Published, items[j].Article.Published
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func content(it *gofeed.Item) string {
	if strings.TrimSpace(it.Content) != "" {
		return it.Content
	}
	return it.Description
}

func published(it *gofeed.Item) *time.Time {
	if it.PublishedParsed != nil {
		return it.PublishedParsed
	}
	return it.UpdatedParsed
}

// clean strips markup and collapses whitespace
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
		s = html.UnescapeString(s)
	}
	return strings.Join(strings.Fields(s), " ")
}
