package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ChainSentinel/internal/collector"
	"ChainSentinel/internal/config"
	"ChainSentinel/internal/notifier"
	"ChainSentinel/internal/recorder"
	"ChainSentinel/internal/scheduler"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("ChainSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// Init fetcher with a TTL cache in front of the HTTP source
	cg := collector.NewCoinGeckoFetcher(collector.Options{
		BaseURL:     cfg.DataSource.BaseURL,
		RateBaseURL: cfg.DataSource.RateBaseURL,
		APIKey:      cfg.DataSource.APIKey,
		ProxyURL:    cfg.Proxy,
	})
	ttl := time.Duration(cfg.DataSource.TTLSeconds) * time.Second
	fetcher := collector.NewCachedFetcher(cg, ttl, nil)
	log.Info().Str("source", fetcher.Name()).Dur("cache_ttl", ttl).Msg("data source ready")

	// Init collector
	col := collector.NewCollector(fetcher, collector.CollectorOptions{
		Asset:           cfg.DataSource.Asset,
		ReferenceSymbol: cfg.DataSource.Reference,
		LookbackDays:    cfg.DataSource.Lookback,
		TopN:            cfg.DataSource.TopN,
		Currency:        cfg.DataSource.Currency,
		RateBase:        cfg.Conversion.Base,
		RateQuote:       cfg.Conversion.Quote,
	})

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, tn, rec)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	log.Info().Msg("ChainSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	log.Info().Msg("ChainSentinel stopped")
}
