package source

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	readability "github.com/go-shiori/go-readability"
	"github.com/samber/lo"

	"github.com/helpsignal/helpsignal/internal/model"
)

// contextTransport injects a context into every outgoing request so that
// context cancellation and deadlines propagate through the rss library.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

type RSSSource struct {
	feedURLs []string
	timeout  time.Duration
}

func NewRSSSource(feedURLs []string, timeout time.Duration) *RSSSource {
	return &RSSSource{feedURLs: feedURLs, timeout: timeout}
}

func (s *RSSSource) Name() string { return "RSS" }

// Fetch loads every configured feed and returns up to limit items per feed.
// A failing feed yields a partial result, not an error for the whole source.
func (s *RSSSource) Fetch(ctx context.Context, limit int) ([]model.RawItem, error) {
	var items []model.RawItem
	for _, feedURL := range s.feedURLs {
		feedURL = strings.TrimSpace(feedURL)
		if feedURL == "" {
			continue
		}

		feed, err := s.loadFeed(ctx, feedURL)
		if err != nil {
			log.Printf("[ERROR] failed to fetch RSS feed %s: %v", feedURL, err)
			continue
		}

		feedItems := feed.Items
		if limit > 0 && len(feedItems) > limit {
			feedItems = feedItems[:limit]
		}

		items = append(items, lo.Map(feedItems, func(item *rss.Item, _ int) model.RawItem {
			description := cleanDescription(itemText(item))
			return model.RawItem{
				Title:        item.Title,
				Description:  description,
				URL:          item.Link,
				PublishedAt:  formatDate(item.Date),
				LocationHint: locationHint(item.Title, description),
				SourceLabel:  "RSS",
			}
		})...)
	}
	return items, nil
}

// itemText returns the richest available text for an item. Content (full
// body) is preferred over Summary (short excerpt).
func itemText(item *rss.Item) string {
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	return strings.TrimSpace(item.Summary)
}

// cleanDescription strips feed HTML down to readable text. Plain text passes
// through untouched; if extraction fails, the raw value is kept.
func cleanDescription(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := readability.FromReader(strings.NewReader(s), nil)
	if err != nil {
		return s
	}
	if text := strings.TrimSpace(doc.TextContent); text != "" {
		return text
	}
	return s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func (s *RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	client := &http.Client{
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
		Timeout:   s.timeout,
	}
	return rss.FetchByClient(url, client)
}
