package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/helpsignal/helpsignal/internal/model"
)

const twitterBaseURL = "https://api.twitter.com"

// Search terms for the recent-search query. Only the first five are sent to
// keep the query under the API's length limit.
var crisisKeywords = []string{
	"humanitarian crisis", "emergency relief", "disaster response",
	"refugee crisis", "natural disaster", "earthquake", "flood",
	"famine", "drought", "conflict", "war", "displacement",
}

type twitterTweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type TwitterSource struct {
	baseURL     string
	bearerToken string
	client      *http.Client
}

func NewTwitterSource(bearerToken string, timeout time.Duration) *TwitterSource {
	return &TwitterSource{
		baseURL:     twitterBaseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: timeout},
	}
}

func (s *TwitterSource) Name() string { return "Twitter" }

func (s *TwitterSource) Fetch(ctx context.Context, limit int) ([]model.RawItem, error) {
	quoted := lo.Map(crisisKeywords[:5], func(k string, _ int) string {
		return fmt.Sprintf("%q", k)
	})
	query := strings.Join(quoted, " OR ")

	u := fmt.Sprintf("%s/2/tweets/search/recent?query=%s&max_results=%d&tweet.fields=created_at",
		s.baseURL, url.QueryEscape(query), min(limit, 100))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.bearerToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("twitter: http %d", resp.StatusCode)
	}

	var body struct {
		Data []twitterTweet `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("twitter: decode response: %w", err)
	}

	return lo.Map(body.Data, func(t twitterTweet, _ int) model.RawItem {
		return model.RawItem{
			Title:        truncate(t.Text, 100),
			Description:  t.Text,
			URL:          "https://twitter.com/i/web/status/" + t.ID,
			PublishedAt:  t.CreatedAt,
			LocationHint: locationHint(t.Text, ""),
			SourceLabel:  "Twitter",
		}
	}), nil
}

// truncate shortens s to n characters, not bytes, so a multi-byte rune at
// the cut point cannot produce invalid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
