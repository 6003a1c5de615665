package config

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
	"github.com/cristalhq/aconfig/aconfigyaml"
)

// Config is read once at process start. Presence or absence of each
// credential decides whether the matching collaborator gets its real or
// disabled implementation; nothing in the core packages reads it directly.
type Config struct {
	NewsAPIKey  string   `hcl:"news_api_key" env:"NEWS_API_KEY"`
	RSSFeedURLs []string `hcl:"rss_feed_urls" env:"RSS_FEED_URLS"`

	TwitterBearerToken string `hcl:"twitter_bearer_token" env:"TWITTER_BEARER_TOKEN"`

	RedditClientID     string `hcl:"reddit_client_id" env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `hcl:"reddit_client_secret" env:"REDDIT_CLIENT_SECRET"`
	RedditUserAgent    string `hcl:"reddit_user_agent" env:"REDDIT_USER_AGENT" default:"HelpSignal:v1.0 (by /u/helpsignal)"`

	AIType    string        `hcl:"ai_type" env:"AI_TYPE" default:"openai"`
	AIBaseURL string        `hcl:"ai_base_url" env:"AI_BASE_URL"`
	AIKey     string        `hcl:"ai_key" env:"AI_KEY"`
	AIModel   string        `hcl:"ai_model" env:"AI_MODEL" default:"gpt-4o-mini"`
	AITimeout time.Duration `hcl:"ai_timeout" env:"AI_TIMEOUT" default:"10s"`

	OpenCageAPIKey string        `hcl:"opencage_api_key" env:"OPENCAGE_API_KEY"`
	GeocodeTimeout time.Duration `hcl:"geocode_timeout" env:"GEOCODE_TIMEOUT" default:"10s"`

	DatabaseDSN string `hcl:"database_dsn" env:"DATABASE_DSN"`

	ObjectEndpoint  string `hcl:"object_endpoint" env:"OBJECT_ENDPOINT"`
	ObjectAccessKey string `hcl:"object_access_key" env:"OBJECT_ACCESS_KEY"`
	ObjectSecretKey string `hcl:"object_secret_key" env:"OBJECT_SECRET_KEY"`
	ObjectBucket    string `hcl:"object_bucket" env:"OBJECT_BUCKET"`
	ObjectInsecure  bool   `hcl:"object_insecure" env:"OBJECT_INSECURE"`

	TwitterConsumerKey       string `hcl:"twitter_consumer_key" env:"TWITTER_CONSUMER_KEY"`
	TwitterConsumerSecret    string `hcl:"twitter_consumer_secret" env:"TWITTER_CONSUMER_SECRET"`
	TwitterAccessToken       string `hcl:"twitter_access_token" env:"TWITTER_ACCESS_TOKEN"`
	TwitterAccessTokenSecret string `hcl:"twitter_access_token_secret" env:"TWITTER_ACCESS_TOKEN_SECRET"`

	TelegramBotToken  string `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChannelID int64  `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID"`

	FetchLimit  int           `hcl:"fetch_limit" env:"FETCH_LIMIT" default:"15"`
	HTTPTimeout time.Duration `hcl:"http_timeout" env:"HTTP_TIMEOUT" default:"10s"`
}

var (
	cfg  Config
	once sync.Once
)

func Get() Config {
	once.Do(func() {
		loader := aconfig.LoaderFor(&cfg, aconfig.Config{
			EnvPrefix: "HS",
			Files: []string{
				"./config.hcl",
				"./config.local.hcl",
				"./config.yml",
				"$HOME/.config/helpsignal/config.hcl",
			},
			FileDecoders: map[string]aconfig.FileDecoder{
				".hcl": aconfighcl.New(),
				".yml": aconfigyaml.New(),
			},
		})

		if err := loader.Load(); err != nil {
			slog.Error("failed to load config", "err", err)
		}
	})

	return cfg
}
