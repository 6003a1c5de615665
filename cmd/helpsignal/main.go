package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helpsignal/helpsignal/internal/batch"
	"github.com/helpsignal/helpsignal/internal/completion"
	"github.com/helpsignal/helpsignal/internal/config"
	"github.com/helpsignal/helpsignal/internal/enrich"
	"github.com/helpsignal/helpsignal/internal/geocode"
	"github.com/helpsignal/helpsignal/internal/pipeline"
	"github.com/helpsignal/helpsignal/internal/sink"
	"github.com/helpsignal/helpsignal/internal/source"
)

func main() {
	var (
		once     = flag.Bool("once", false, "run a single batch then exit")
		interval = flag.Duration("interval", 0, "run a batch on this interval (0 disables the scheduler)")
		addr     = flag.String("addr", "127.0.0.1:8088", "http listen address")
	)
	flag.Parse()

	cfg := config.Get()

	runner := batch.NewRunner(
		buildSources(cfg),
		pipeline.New(enrich.New(buildCompleter(cfg)), buildGeocoder(cfg)),
		sink.NewDispatcher(buildRowSink(cfg), buildObjectSink(cfg), buildPoster(cfg)),
		cfg.FetchLimit,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *once {
		runner.Run(ctx)
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		// The request payload, if any, is ignored; a scheduler and a manual
		// curl both get the same plain status.
		runner.Run(r.Context())
		fmt.Fprint(w, "OK")
	})

	go func() {
		if err := http.ListenAndServe(*addr, mux); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[ERROR] failed to run http server: %v", err)
				cancel()
			}
		}
	}()
	log.Printf("[INFO] listening on %s", *addr)

	if *interval > 0 {
		runner.Run(ctx)
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("[INFO] stopping: %v", ctx.Err())
				return
			case <-ticker.C:
				runner.Run(ctx)
			}
		}
	}

	<-ctx.Done()
	log.Printf("[INFO] stopping: %v", ctx.Err())
}

func buildSources(cfg config.Config) []source.Source {
	var sources []source.Source

	if cfg.NewsAPIKey != "" {
		sources = append(sources, source.NewNewsAPISource(cfg.NewsAPIKey, cfg.HTTPTimeout))
	} else {
		log.Printf("[WARN] HS_NEWS_API_KEY not set; NewsAPI source disabled")
	}

	if len(cfg.RSSFeedURLs) > 0 {
		sources = append(sources, source.NewRSSSource(cfg.RSSFeedURLs, cfg.HTTPTimeout))
	} else {
		log.Printf("[WARN] no RSS feed URLs configured; RSS source disabled")
	}

	if cfg.TwitterBearerToken != "" {
		sources = append(sources, source.NewTwitterSource(cfg.TwitterBearerToken, cfg.HTTPTimeout))
	} else {
		log.Printf("[WARN] HS_TWITTER_BEARER_TOKEN not set; Twitter source disabled")
	}

	if cfg.RedditClientID != "" && cfg.RedditClientSecret != "" {
		sources = append(sources, source.NewRedditSource(
			cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent, cfg.HTTPTimeout))
	} else {
		log.Printf("[WARN] Reddit credentials not set; Reddit source disabled")
	}

	return sources
}

func buildCompleter(cfg config.Config) completion.Completer {
	switch cfg.AIType {
	case "ollama":
		if cfg.AIBaseURL == "" {
			log.Printf("[WARN] ai_base_url (HS_AI_BASE_URL) not set; enrichment disabled")
			return completion.Disabled{}
		}
		log.Printf("[INFO] using Ollama completer (model: %s)", cfg.AIModel)
		return completion.NewOllamaCompleter(cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout)
	default:
		if cfg.AIKey == "" {
			log.Printf("[WARN] ai_key (HS_AI_KEY) not set; enrichment disabled")
			return completion.Disabled{}
		}
		log.Printf("[INFO] using OpenAI-compatible completer (model: %s)", cfg.AIModel)
		return completion.NewOpenAICompleter(cfg.AIBaseURL, cfg.AIKey, cfg.AIModel, cfg.AITimeout)
	}
}

func buildGeocoder(cfg config.Config) geocode.Geocoder {
	if cfg.OpenCageAPIKey == "" {
		log.Printf("[WARN] HS_OPENCAGE_API_KEY not set; geocoding disabled")
		return geocode.Disabled{}
	}
	return geocode.NewOpenCage(cfg.OpenCageAPIKey, cfg.GeocodeTimeout)
}

func buildRowSink(cfg config.Config) sink.RowSink {
	if cfg.DatabaseDSN == "" {
		log.Printf("[WARN] HS_DATABASE_DSN not set; tabular sink disabled")
		return sink.DisabledRowSink{}
	}
	db, err := sqlx.Connect("postgres", cfg.DatabaseDSN)
	if err != nil {
		log.Printf("[ERROR] failed to connect to db, tabular sink disabled: %v", err)
		return sink.DisabledRowSink{}
	}
	s, err := sink.NewPostgresRowSink(db)
	if err != nil {
		log.Printf("[ERROR] failed to init tabular sink, disabled: %v", err)
		return sink.DisabledRowSink{}
	}
	return s
}

func buildObjectSink(cfg config.Config) sink.ObjectSink {
	if cfg.ObjectEndpoint == "" || cfg.ObjectBucket == "" {
		log.Printf("[WARN] object store not configured; archive sink disabled")
		return sink.DisabledObjectSink{}
	}
	s, err := sink.NewS3ObjectSink(sink.S3Options{
		Endpoint:  cfg.ObjectEndpoint,
		AccessKey: cfg.ObjectAccessKey,
		SecretKey: cfg.ObjectSecretKey,
		Bucket:    cfg.ObjectBucket,
		Insecure:  cfg.ObjectInsecure,
	})
	if err != nil {
		log.Printf("[ERROR] failed to init object sink, disabled: %v", err)
		return sink.DisabledObjectSink{}
	}
	return s
}

func buildPoster(cfg config.Config) sink.Poster {
	if cfg.TwitterConsumerKey != "" && cfg.TwitterConsumerSecret != "" &&
		cfg.TwitterAccessToken != "" && cfg.TwitterAccessTokenSecret != "" {
		return sink.NewTwitterPoster(sink.TwitterCredentials{
			ConsumerKey:       cfg.TwitterConsumerKey,
			ConsumerSecret:    cfg.TwitterConsumerSecret,
			AccessToken:       cfg.TwitterAccessToken,
			AccessTokenSecret: cfg.TwitterAccessTokenSecret,
		}, cfg.HTTPTimeout)
	}

	if cfg.TelegramBotToken != "" && cfg.TelegramChannelID != 0 {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("[ERROR] failed to create telegram bot, social sink disabled: %v", err)
			return sink.DisabledPoster{}
		}
		return sink.NewTelegramPoster(botAPI, cfg.TelegramChannelID)
	}

	log.Printf("[WARN] no social credentials configured; social sink disabled")
	return sink.DisabledPoster{}
}
