package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

const tweetEndpoint = "https://api.twitter.com/2/tweets"

// TwitterPoster publishes crisis alerts through the X API v2, signed with
// OAuth 1.0a user credentials.
type TwitterPoster struct {
	endpoint string
	client   *http.Client
}

type TwitterCredentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

func NewTwitterPoster(creds TwitterCredentials, timeout time.Duration) *TwitterPoster {
	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	client := cfg.Client(oauth1.NoContext, token)
	client.Timeout = timeout

	return &TwitterPoster{endpoint: tweetEndpoint, client: client}
}

func (p *TwitterPoster) Post(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twitter: http %d: %s", resp.StatusCode, detail)
	}
	return nil
}
