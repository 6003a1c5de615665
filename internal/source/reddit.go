package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/helpsignal/helpsignal/internal/model"
)

const (
	redditBaseURL      = "https://www.reddit.com"
	redditOAuthBaseURL = "https://oauth.reddit.com"
)

// Subreddits polled for crisis reporting.
var crisisSubreddits = []string{
	"worldnews", "news", "globalhealth", "humanrights",
	"CrisisWatch", "ukraine", "syriancivilwar", "afghanistan",
	"refugees", "DisasterResponse", "HumanitarianAid",
}

type RedditSource struct {
	baseURL      string
	oauthBaseURL string
	clientID     string
	clientSecret string
	userAgent    string
	client       *http.Client
}

func NewRedditSource(clientID, clientSecret, userAgent string, timeout time.Duration) *RedditSource {
	return &RedditSource{
		baseURL:      redditBaseURL,
		oauthBaseURL: redditOAuthBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		client:       &http.Client{Timeout: timeout},
	}
}

func (s *RedditSource) Name() string { return "Reddit" }

func (s *RedditSource) Fetch(ctx context.Context, limit int) ([]model.RawItem, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reddit: obtain token: %w", err)
	}

	perSubreddit := max(1, limit/len(crisisSubreddits))

	var items []model.RawItem
	for _, sub := range crisisSubreddits {
		posts, err := s.fetchHot(ctx, token, sub, perSubreddit)
		if err != nil {
			log.Printf("[ERROR] failed to fetch from subreddit %s: %v", sub, err)
			continue
		}
		items = append(items, posts...)
	}
	return items, nil
}

func (s *RedditSource) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/v1/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("empty access token")
	}
	return body.AccessToken, nil
}

func (s *RedditSource) fetchHot(ctx context.Context, token, subreddit string, limit int) ([]model.RawItem, error) {
	u := fmt.Sprintf("%s/r/%s/hot?limit=%d", s.oauthBaseURL, subreddit, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	var body struct {
		Data struct {
			Children []struct {
				Data struct {
					Title      string  `json:"title"`
					SelfText   string  `json:"selftext"`
					Permalink  string  `json:"permalink"`
					CreatedUTC float64 `json:"created_utc"`
					Stickied   bool    `json:"stickied"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	var items []model.RawItem
	for _, child := range body.Data.Children {
		post := child.Data
		if post.Stickied {
			continue
		}

		description := post.SelfText
		if description == "" {
			description = post.Title
		}

		items = append(items, model.RawItem{
			Title:        post.Title,
			Description:  description,
			URL:          "https://reddit.com" + post.Permalink,
			PublishedAt:  time.Unix(int64(post.CreatedUTC), 0).UTC().Format(time.RFC3339),
			LocationHint: locationHint(post.Title, description),
			SourceLabel:  "Reddit r/" + subreddit,
		})
	}
	return items, nil
}
