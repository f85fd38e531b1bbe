package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/api/handler"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/api/router"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/service"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/database"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/jwt"
	applogger "github.com/Ahogberg/handymate-dashboard-sub000/pkg/logger"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database + migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("access underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. redis; startup continues without it, losing the token blacklist,
	// rate limiting and the persisted sync status
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, degrading", zap.Error(err))
		rdb = nil
	}

	// 5. wiring: repository, services, handlers, routes
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 6. periodic calendar sync
	var scheduler *cron.Cron
	if cfg.Sync.FeedURL != "" {
		scheduler = cron.New()
		schedule := fmt.Sprintf("@every %s", cfg.Sync.Interval)
		_, err := scheduler.AddFunc(schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := svc.Sync.Trigger(ctx); err != nil {
				logger.Warn("scheduled calendar sync failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("schedule calendar sync failed", zap.Error(err))
		}
		scheduler.Start()
		logger.Info("calendar sync scheduled", zap.Duration("interval", cfg.Sync.Interval))
	}

	// 7. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
