package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var (
	ErrMissingSecretKey = errors.New("SECRET_KEY is required")
	ErrMissingRedisAddr = errors.New("REDIS_ADDR is required")
)

type Config struct {
	ListenAddr string
	AppEnv     string
	SecretKey  string

	Gemini  GeminiConfig
	Chat    ChatConfig
	Redis   RedisConfig
	Session SessionConfig
	Store   StoreConfig
	Log     LogConfig
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type ChatConfig struct {
	MaxRetries  int
	BackoffBase time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type StoreConfig struct {
	UsersFile     string
	FeedbacksFile string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr: ":" + mustEnv("PORT", "5000"),
		AppEnv:     strings.ToLower(mustEnv("APP_ENV", EnvProduction)),
		SecretKey:  mustEnv("SECRET_KEY", "chatbot-dev-change-in-production"),
		Gemini: GeminiConfig{
			APIKey:  mustEnv("GEMINI_API_KEY", ""),
			BaseURL: mustEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout: mustDuration("HTTP_TIMEOUT", 30*time.Second),
		},
		Chat: ChatConfig{
			MaxRetries:  mustInt("CHAT_MAX_RETRIES", 3),
			BackoffBase: mustDuration("CHAT_BACKOFF_BASE", 2*time.Second),
		},
		Redis: RedisConfig{
			Addr:     mustEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: mustEnv("REDIS_PASSWORD", ""),
			DB:       mustInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: mustEnv("SESSION_COOKIE", "ratnabot_session"),
			TTL:        mustDuration("SESSION_TTL", 24*time.Hour),
		},
		Store: StoreConfig{
			UsersFile:     mustEnv("USERS_FILE", "users.json"),
			FeedbacksFile: mustEnv("FEEDBACKS_FILE", "feedbacks.txt"),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}

	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}
	if cfg.Redis.Addr == "" {
		return nil, ErrMissingRedisAddr
	}
	if cfg.AppEnv != EnvDevelopment && cfg.AppEnv != EnvProduction {
		return nil, fmt.Errorf("unsupported APP_ENV %q", cfg.AppEnv)
	}
	if cfg.Chat.MaxRetries < 1 {
		cfg.Chat.MaxRetries = 1
	}

	return cfg, nil
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustInt(key string, def int) int {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
