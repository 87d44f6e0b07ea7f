package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/rptrainor/blog-cache-service/internal/api"
	"github.com/rptrainor/blog-cache-service/internal/cache"
	"github.com/rptrainor/blog-cache-service/internal/config"
	"github.com/rptrainor/blog-cache-service/internal/service"
	"github.com/rptrainor/blog-cache-service/internal/store"
	"github.com/rptrainor/blog-cache-service/internal/upstream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	kv, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("store init", "err", err)
		os.Exit(1)
	}

	source := upstream.New(cfg.UpstreamURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	svc := service.NewService(source, cache.NewWriter(kv), cache.NewReader(kv), logger)
	handler := api.NewHandler(svc, logger)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	logger.Info("listening", "addr", cfg.Addr, "store", cfg.StoreBackend)
	if err := router.Run(cfg.Addr); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func openStore(cfg config.Config, logger *slog.Logger) (store.KeyValueStore, error) {
	switch cfg.StoreBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Keep going; the store may come up after us.
			logger.Warn("redis ping failed", "addr", cfg.RedisAddr, "err", err)
		}
		return store.NewRedisStore(rdb), nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL required for postgres backend")
		}
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		// simple ping + wait (db might be starting alongside us)
		for i := 0; i < 10; i++ {
			if err = db.Ping(); err == nil {
				break
			}
			logger.Info("waiting for db", "attempt", i+1, "err", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("could not connect to db: %w", err)
		}
		if err := store.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		return store.NewPgStore(db), nil

	case "memory":
		return store.NewMemStore(), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
