package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"

	"github.com/helpsignal/helpsignal/internal/model"
)

const newsAPIBaseURL = "https://newsapi.org"

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type NewsAPISource struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewNewsAPISource(apiKey string, timeout time.Duration) *NewsAPISource {
	return &NewsAPISource{
		baseURL: newsAPIBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *NewsAPISource) Name() string { return "NewsAPI" }

func (s *NewsAPISource) Fetch(ctx context.Context, limit int) ([]model.RawItem, error) {
	u := fmt.Sprintf("%s/v2/top-headlines?language=en&sortBy=publishedAt&pageSize=%d", s.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("newsapi: http %d", resp.StatusCode)
	}

	var body struct {
		Articles []newsAPIArticle `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}

	return lo.Map(body.Articles, func(a newsAPIArticle, _ int) model.RawItem {
		return model.RawItem{
			Title:        a.Title,
			Description:  a.Description,
			URL:          a.URL,
			PublishedAt:  a.PublishedAt,
			LocationHint: locationHint(a.Title, a.Description),
			SourceLabel:  "NewsAPI",
		}
	}), nil
}
