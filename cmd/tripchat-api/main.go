// README: Entry point; loads config, wires collaborators behind the shared outbound pool, serves HTTP until signalled.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripchat/internal/ai"
	"tripchat/internal/config"
	httptransport "tripchat/internal/http"
	"tripchat/internal/infra"
	"tripchat/internal/maps"
	"tripchat/internal/modules/answer"
	"tripchat/internal/modules/cities"
	"tripchat/internal/modules/faq"
	"tripchat/internal/modules/flights"
	"tripchat/internal/modules/handoff"
	"tripchat/internal/modules/travel"
	"tripchat/internal/service"
	"tripchat/internal/workpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := workpool.New(cfg.Outbound.Workers, cfg.Outbound.Timeout)
	now := func() time.Time { return time.Now().In(cfg.Location) }

	llm, closeLLM, err := newLLM(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("llm init", zap.Error(err))
	}
	defer closeLLM()
	llm = ai.WithPool(llm, pool)

	cityOpts := []cities.Option{cities.WithPool(pool)}
	if cfg.Cities.MapsAPIKey != "" {
		geocoder, err := maps.NewGeocoder(cfg.Cities.MapsAPIKey)
		if err != nil {
			logger.Fatal("geocoder init", zap.Error(err))
		}
		cityOpts = append(cityOpts, cities.WithCanonicalizer(geocoder))
	}
	citySvc := cities.NewService(cfg.Cities.LookupURL, logger.Named("cities"), cityOpts...)
	flightSvc := flights.NewService(cfg.Flights.SearchURL, pool, logger.Named("flights"))

	var channels []handoff.Channel
	var inbox *handoff.InboxStore
	if cfg.DB.DSN != "" {
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("db init", zap.Error(err))
		}
		defer db.Close()
		inbox = handoff.NewInboxStore(db)
		channels = append(channels, inbox)
	}
	if cfg.Handoff.SNSTopic != "" {
		snsClient, err := infra.NewSNS(ctx, cfg.Handoff.AWSRegion)
		if err != nil {
			logger.Fatal("sns init", zap.Error(err))
		}
		channels = append(channels, handoff.NewSNSChannel(snsClient, cfg.Handoff.SNSTopic))
	}
	if cfg.Handoff.WebhookURL != "" {
		channels = append(channels, handoff.NewWebhookChannel(cfg.Handoff.WebhookURL))
	}
	if len(channels) == 0 {
		logger.Warn("no handoff channels configured; escalations will not reach an agent")
	}
	handoffSvc := handoff.NewService(channels, pool, logger.Named("handoff"))

	var sources []faq.Provider
	if cfg.FAQ.File != "" {
		sources = append(sources, faq.FileSource{Path: cfg.FAQ.File})
	}
	if len(cfg.FAQ.URLs) > 0 {
		sources = append(sources, faq.NewSiteScraper(cfg.FAQ.URLs, pool, logger.Named("faq")))
	}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password)
		defer rdb.Close()
	}
	faqContent := faq.NewContent(sources, rdb, cfg.FAQ.TTL, logger.Named("faq"))
	if faqContent == nil {
		logger.Info("no faq source configured; answering without company information")
	}
	answerSvc := answer.NewService(llm, faqContent, handoffSvc, logger.Named("answer"))

	pipeline := travel.NewPipeline(
		travel.NewPatternExtractor(),
		travel.NewModelExtractor(llm, logger.Named("model_extractor"), now),
		now,
		logger.Named("travel"),
	)
	assistant := service.NewAssistant(pipeline, citySvc, flightSvc, answerSvc, logger.Named("assistant"))

	deps := httptransport.RouterDeps{
		Assistant:   assistant,
		ChatTimeout: cfg.HTTP.ChatTimeout,
		Log:         logger.Named("http"),
	}
	if inbox != nil {
		deps.Inbox = inbox
	}
	server := httptransport.NewServer(cfg.HTTP.Addr, httptransport.NewRouter(deps), logger)

	if err := server.Run(ctx); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}

func newLLM(ctx context.Context, cfg config.LLMConfig) (ai.LLMProvider, func(), error) {
	if cfg.Provider == "openai" {
		p, err := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model)
		return p, func() {}, err
	}
	p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model)
	if err != nil {
		return nil, func() {}, err
	}
	return p, p.Close, nil
}
