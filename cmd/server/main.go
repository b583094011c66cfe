package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ratnabot/internal/chat"
	"ratnabot/internal/config"
	"ratnabot/internal/gemini"
	"ratnabot/internal/metrics"
	"ratnabot/internal/session"
	"ratnabot/internal/storage"
	"ratnabot/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.Log.Level)
	log.Info().
		Str("env", cfg.AppEnv).
		Str("addr", cfg.ListenAddr).
		Bool("gemini_configured", cfg.Gemini.APIKey != "").
		Msg("starting ratnabot")
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set; chat will answer with a fixed error reply")
	} else {
		log.Info().Int("key_length", len(cfg.Gemini.APIKey)).Msg("gemini api key loaded")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	m := metrics.Global()
	sessions := session.NewStore(rdb, cfg.SecretKey, cfg.Session.TTL)
	users := storage.NewUserStore(cfg.Store.UsersFile)
	feedback := storage.NewFeedbackStore(cfg.Store.FeedbacksFile)

	client := gemini.New(gemini.Config{
		APIKey:     cfg.Gemini.APIKey,
		BaseURL:    cfg.Gemini.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Gemini.Timeout},
	})
	resolver := gemini.NewResolver(client, log.Logger)
	bot := chat.New(chat.Config{
		Resolver:      chat.NewGeminiResolver(resolver),
		Policy:        chat.DefaultRetryPolicy(cfg.Chat.MaxRetries, cfg.Chat.BackoffBase),
		KeyConfigured: client.Configured(),
		Logger:        log.Logger,
		Metrics:       m,
	})

	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	server := web.NewServer(web.Config{
		Sessions:   sessions,
		Users:      users,
		Feedback:   feedback,
		Bot:        bot,
		Gemini:     client,
		APIKeyLen:  len(cfg.Gemini.APIKey),
		CookieName: cfg.Session.CookieName,
		Logger:     log.Logger,
		Metrics:    m,
	})
	server.Router(engine)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server error")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("stopped")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
