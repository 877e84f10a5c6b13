package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/langxubai/Sentiment-Compass-app/internal/config"
	"github.com/langxubai/Sentiment-Compass-app/internal/history"
	"github.com/langxubai/Sentiment-Compass-app/internal/logging"
	"github.com/langxubai/Sentiment-Compass-app/internal/metrics"
	redisclient "github.com/langxubai/Sentiment-Compass-app/internal/redis"
	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
	"github.com/langxubai/Sentiment-Compass-app/internal/server"
	"github.com/langxubai/Sentiment-Compass-app/internal/version"
	"github.com/langxubai/Sentiment-Compass-app/internal/websocket"
)

const historyPruneInterval = 5 * time.Minute

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRedis(ctx context.Context, redisURL string) *goredis.Client {
	client, err := redisclient.NewClient(ctx, redisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, hub *websocket.Hub, stopPrune func()) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		if stopPrune != nil {
			stopPrune()
		}

		close(done)
	}()

	return done
}

func main() {
	host := flag.String("host", "", "bind address, overriding HOST (use 0.0.0.0 for all interfaces)")
	flag.Parse()

	clock := clockwork.NewRealClock()

	cfg := setupConfig()
	if *host != "" {
		cfg.Host = *host
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "host", cfg.Host, "port", cfg.Port)

	info := version.Get()
	metrics.BuildInfo.WithLabelValues(info.Version, info.Commit, info.BuildTime, info.GoVersion).Set(1)

	// The scorer is the one hard startup dependency: a broken lexicon is fatal.
	analyzer, err := sentiment.NewAnalyzer()
	if err != nil {
		slog.Error("Failed to initialize sentiment analyzer", "error", err)
		os.Exit(1)
	}

	var (
		historyStore history.Store
		redisClient  *goredis.Client
		stopPrune    func()
	)
	if cfg.RedisURL != "" {
		redisClient = setupRedis(context.Background(), cfg.RedisURL)
		defer func() { _ = redisClient.Close() }()
		historyStore = history.NewRedisStore(redisClient, cfg.HistoryLimit, cfg.HistoryTTL)
		slog.Info("Using Redis-backed history store")
	} else {
		memStore := history.NewMemoryStore(cfg.HistoryLimit, cfg.HistoryTTL, clock)
		stopPrune = memStore.StartPruneTimer(historyPruneInterval)
		historyStore = memStore
		slog.Info("Using in-memory history store")
	}

	hub := websocket.NewHub(cfg.MaxWebSocketConnections)

	srv, err := server.NewServer(cfg, analyzer, historyStore, hub, clock, redisClient)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, hub, stopPrune)

	slog.Info("Server starting", "addr", cfg.Host+":"+cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
