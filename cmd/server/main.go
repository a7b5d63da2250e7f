package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/electro_shop/internal/cache"
	"github.com/Skotchmaster/electro_shop/internal/config"
	"github.com/Skotchmaster/electro_shop/internal/db"
	"github.com/Skotchmaster/electro_shop/internal/events"
	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/electro_shop/internal/middleware/logging"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/search"
	"github.com/Skotchmaster/electro_shop/internal/seed"
	"github.com/Skotchmaster/electro_shop/internal/tokens"
	httpserver "github.com/Skotchmaster/electro_shop/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("db_open_error", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers)
		logger.Info("kafka_enabled", "brokers", cfg.Kafka.Brokers)
	}

	var index search.Index
	if cfg.ES.URL != "" {
		es, err := search.NewClient(ctx, search.Config{
			URL:      cfg.ES.URL,
			User:     cfg.ES.User,
			Password: cfg.ES.Password,
			Index:    cfg.ES.Index,
		})
		if err != nil {
			logger.Warn("elasticsearch_unavailable", "error", err)
		} else {
			index = es
			logger.Info("elasticsearch_enabled", "index", cfg.ES.Index)
		}
	}

	var productCache *cache.ProductCache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		productCache = cache.New(rdb, cfg.Redis.TTL)
		if err := productCache.Ping(ctx); err != nil {
			logger.Warn("redis_unavailable", "error", err)
		} else {
			logger.Info("redis_enabled", "addr", cfg.Redis.Addr)
		}
	}

	var csrfCfg *csrf.Config
	if cfg.CSRFEnabled {
		c := csrf.DefaultConfig()
		csrfCfg = &c
	}

	deps := httpserver.NewDeps(httpserver.Options{
		DB: gdb,
		Tokens: &tokens.Issuer{
			AccessSecret:  []byte(cfg.JWT.AccessSecret),
			RefreshSecret: []byte(cfg.JWT.RefreshSecret),
			AccessTTL:     cfg.JWT.AccessTTL,
			RefreshTTL:    cfg.JWT.RefreshTTL,
		},
		Events: publisher,
		Cache:  productCache,
		Index:  index,
		CSRF:   csrfCfg,
	})

	if cfg.SeedOnStart {
		rep, err := seed.New(&repo.GormRepo{DB: gdb}).Ensure(ctx)
		if err != nil {
			logger.Error("seed_error", "error", err)
			os.Exit(1)
		}
		if rep.Products > 0 && index != nil {
			if _, err := deps.ProductHandler.Svc.Reindex(ctx); err != nil {
				logger.Warn("reindex_error", "error", err)
			}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Error("redis_close_error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
