package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/fsp-platform/console-bff/internal/api"
	"github.com/fsp-platform/console-bff/internal/config"
	"github.com/fsp-platform/console-bff/internal/features"
	"github.com/fsp-platform/console-bff/internal/logger"
	"github.com/fsp-platform/console-bff/internal/querycache"
	"github.com/fsp-platform/console-bff/internal/session"
	"github.com/fsp-platform/console-bff/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("config load failed")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	zlog.Info().Str("env", cfg.AppEnv).Msg("logger initialized")

	sess, err := session.Open(cfg.StateDir)
	if err != nil {
		zlog.Fatal().Err(err).Str("dir", cfg.StateDir).Msg("session state unavailable")
	}

	var store querycache.Store
	if cfg.RedisURL != "" {
		redisStore, err := querycache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("redis unavailable")
		}
		defer redisStore.Close()
		store = redisStore
		zlog.Info().Msg("query cache backed by redis")
	} else {
		store = querycache.NewMemoryStore()
		zlog.Info().Msg("query cache in memory")
	}
	cache := querycache.New(store, cfg.CacheTTL)

	gw := upstream.NewClient(cfg.APIBaseURL, sess, upstream.ClientConfig{
		ReadTimeout:  cfg.UpstreamReadTimeout,
		WriteTimeout: cfg.UpstreamWriteTimeout,
	})
	reg := features.NewRegistry(cache, gw, cfg.CacheTTLRefs)

	router := api.NewRouter(cfg, sess, reg, cache, store, upstream.NewAuthClient(gw))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Str("api", cfg.APIBaseURL).Msg("console gateway starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("shutdown incomplete")
	}
	zlog.Info().Msg("console gateway stopped")
}
