package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/raylincc/codechat/internal/ai"
	"github.com/raylincc/codechat/internal/chat"
	"github.com/raylincc/codechat/internal/config"
	"github.com/raylincc/codechat/internal/httpapi"
	"github.com/raylincc/codechat/internal/ratelimit"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	store, err := buildStore(cfg)
	if err != nil {
		slog.Error("store init failed", "error", err)
		os.Exit(1)
	}

	limiter := buildLimiter(cfg)
	registry := buildRegistry(cfg)

	router := httpapi.NewRouter(store, registry, limiter, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "store", cfg.ChatStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func buildStore(cfg config.Config) (chat.Store, error) {
	if cfg.ChatStore == "sqlite" {
		db, err := gorm.Open(gormsqlite.Open(cfg.SQLiteDSN), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return chat.NewGormStore(db)
	}
	return chat.NewMemStore(), nil
}

func buildLimiter(cfg config.Config) ratelimit.Limiter {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return ratelimit.NewRedisLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	return ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
}

// buildRegistry registers only providers whose secrets are present; an
// unconfigured provider must never be invoked.
func buildRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()
	if cfg.AnthropicConfigured() {
		reg.Register(ai.NewAnthropicProvider(cfg.AnthropicBaseURL, cfg.AnthropicAPIKey))
	}
	if cfg.OpenAIConfigured() {
		reg.Register(ai.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey))
	}
	return reg
}
