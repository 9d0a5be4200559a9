// Package main wires the HTTP server for the PR summary bot.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"slack-gpt-bot/config"
	"slack-gpt-bot/internal/ai/gemini"
	"slack-gpt-bot/internal/cache"
	"slack-gpt-bot/internal/github"
	slacknotify "slack-gpt-bot/internal/slack"
	"slack-gpt-bot/internal/transport/http/middleware"
	handlers_fiber "slack-gpt-bot/internal/transport/http/server/handlers-fiber"
	"slack-gpt-bot/internal/usecase"
	"slack-gpt-bot/internal/usecase/domain"
	"slack-gpt-bot/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	store, err := cache.New(ctx, "redis", log, cfg)
	if err != nil {
		log.Errorw("cache initialization error", "error", err)
		return
	}
	if err := store.OnStart(ctx); err != nil {
		log.Errorw("cache start error", "error", err)
		return
	}
	defer func() {
		_ = store.OnStop(context.Background())
	}()

	fetcher := github.NewClient(log, cfg.GitHub.Token, cfg.GitHub.FetchTimeout)

	summarizer, err := gemini.NewSummarizer(ctx, log, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Errorw("summarizer initialization error", "error", err)
		return
	}
	defer func() {
		_ = summarizer.Close()
	}()

	notifier := slacknotify.NewNotifier(log, cfg.Slack.BotToken, cfg.Slack.NotifyTimeout, cfg.Slack.MaxRetries)

	uc := usecase.New(log, store, fetcher, summarizer, notifier, domain.Options{
		Channel:         cfg.Slack.ChannelID,
		Owner:           cfg.GitHub.Owner,
		CacheTTL:        cfg.Cache.TTL,
		PipelineTimeout: cfg.HTTP.PipelineTimeout,
	})

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	h.Register(serv)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
