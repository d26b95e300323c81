package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ecomsimply/price-truth/cmd/pricetruth/config"
	"github.com/ecomsimply/price-truth/internal/consensus"
	"github.com/ecomsimply/price-truth/internal/fetcher"
	"github.com/ecomsimply/price-truth/internal/handler"
	"github.com/ecomsimply/price-truth/internal/platform/rabbitmq"
	"github.com/ecomsimply/price-truth/internal/platform/storage"
	"github.com/ecomsimply/price-truth/internal/source"
	"github.com/ecomsimply/price-truth/internal/truth"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// UserAgent is user agent header value used when fetching source pages.
	UserAgent = "price-truth/0.0.1"
	// MinSourcesRequired is the number of agreeing sources a valid consensus needs.
	MinSourcesRequired = 2
)

// sourceDefinitions is the fixed registry of price sources.
var sourceDefinitions = []struct {
	name      string
	searchURL string
	selector  string
	currency  string
}{
	{"amazon", "https://www.amazon.fr/s?k=%s", `"priceAmount":([0-9]+\.[0-9]{2})`, "EUR"},
	{"google_shopping", "https://www.google.com/search?tbm=shop&q=%s", `([0-9]+[.,][0-9]{2})\s*€`, "EUR"},
	{"cdiscount", "https://www.cdiscount.com/search/10/%s.html", `"price":\s*"([0-9]+[.,][0-9]{2})"`, "EUR"},
	{"fnac", "https://www.fnac.com/SearchResult/ResultList.aspx?Search=%s", `class="price">([0-9]+[.,][0-9]{2})`, "EUR"},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var cfg config.Config
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't parse env variables")
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	if err := conn.DeclareCommandQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't declare command queue")
	}

	var (
		store       truth.Store
		pgDB        *sql.DB
		redisClient *redis.Client
	)

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't parse Redis URL")
		}
		redisClient = redis.NewClient(opts)
		store = storage.NewRedis(redisClient)
	} else {
		pgDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't open Postgres connection")
		}
		store = storage.NewPostgres(pgDB)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't ensure store indexes")
	}

	pageFetcher := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTPTimeout}, UserAgent)

	adapters := make([]truth.SourceAdapter, 0, len(sourceDefinitions))
	for _, def := range sourceDefinitions {
		adapter, err := source.NewHTTPSource(def.name, pageFetcher, def.searchURL, def.selector, def.currency)
		if err != nil {
			logger.Fatal().
				Err(err).
				Str("source", def.name).
				Msg("can't build source adapter")
		}
		adapters = append(adapters, adapter)
	}

	svc := truth.NewService(
		truth.Config{
			Enabled:            cfg.Enabled,
			TTLHours:           cfg.TTLHours,
			FetchTimeout:       cfg.FetchTimeout,
			MaxParallelFetches: cfg.MaxParallelFetches,
		},
		store,
		adapters,
		consensus.NewCalculator(cfg.TolerancePct, MinSourcesRequired),
		truth.WithLogger(&logger),
	)

	han := handler.NewHandler(conn, svc, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	// periodic refresh of stale records
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RefreshSchedule, func() {
		summary, err := svc.RefreshStalePrices(ctx)
		if err != nil {
			logger.Error().
				Err(err).
				Msg("can't refresh stale prices")
			return
		}
		logger.Info().
			Int("found", summary.Found).
			Int("refreshed", summary.Refreshed).
			Int("errors", summary.Errors).
			Msg("stale prices refreshed")
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't schedule stale prices refresh")
	}
	scheduler.Start()

	logger.Info().Msg("price truth service up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	<-scheduler.Stop().Done()

	// wait for consumer to finish
	<-conn.Done()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		switch {
		case redisClient != nil:
			if err := redisClient.Close(); err != nil {
				logger.Fatal().
					Err(err).
					Msg("can't close Redis connection")
			}
		case pgDB != nil:
			if err := pgDB.Close(); err != nil {
				logger.Fatal().
					Err(err).
					Msg("can't close Postgres connection")
			}
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
