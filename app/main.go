package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rssdigest/app/api"
	"rssdigest/app/cache"
	"rssdigest/app/cfg"
	"rssdigest/app/config"
	"rssdigest/app/database"
	"rssdigest/app/feed"
	"rssdigest/app/notify"
	"rssdigest/app/summary"
	"rssdigest/app/tasks"
)

func main() {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting RSS Digest", "version", appCfg.Version)

	conf, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", appCfg.ConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Configuration loaded", "feeds", len(conf.Feeds))

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	itemRepo := database.NewItemRepository(db)

	if appCfg.Stats {
		printStats(itemRepo)
		return
	}

	cacheStore := cache.NewStore(appCfg.CachePath)
	fetcher := feed.NewFetcher(appCfg.UserAgent, feed.DefaultFetchTimeout)
	extractor := feed.NewExtractor(appCfg.UserAgent, feed.DefaultFetchTimeout)
	summarizer := summary.NewSummarizer(conf.LLM)
	dispatcher := notify.NewDispatcher(conf.Notify)

	if !dispatcher.HasChannels() {
		slog.Warn("No notification channels configured, items will only be recorded")
	}

	runner := tasks.NewRunner(conf, fetcher, extractor, summarizer, dispatcher,
		itemRepo, cacheStore)

	if appCfg.Once {
		if _, err := runner.Run(context.Background()); err != nil {
			slog.Error("Pipeline run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	scheduler := tasks.NewScheduler(runner, conf.Schedule.IntervalMinutes)
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	var httpServer *http.Server
	serverErrChan := make(chan error, 1)

	if appCfg.Port != "" {
		handler := api.NewHandler(itemRepo)
		httpServer = &http.Server{
			Addr:         ":" + appCfg.Port,
			Handler:      api.NewServer(handler),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		go func() {
			slog.Info("HTTP status server listening", "port", appCfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErrChan <- err
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}
}

func printStats(itemRepo *database.ItemRepository) {
	stats, err := itemRepo.GetStats()
	if err != nil {
		slog.Error("Failed to read statistics", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Processed items: %d\n", stats.TotalCount)
	for _, fc := range stats.ByFeed {
		fmt.Printf("  %-30s %d\n", fc.FeedName, fc.Count)
	}
}
