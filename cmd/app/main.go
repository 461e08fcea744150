package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fooddispatch/cmd"
	"fooddispatch/internal/adapters/out/postgres"
	"fooddispatch/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(configs.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err = run(configs, zapLogger); err != nil {
		zapLogger.Error("service stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zapLogger.Info("service stopped gracefully")
}

func run(configs cmd.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(configs.Postgres)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return err
	}
	zapLogger.Info("database ready")

	redisOptions, err := redis.ParseURL(configs.Redis.URL)
	if err != nil {
		return fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOptions)
	defer func() { _ = rdb.Close() }()

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, zapLogger)
	if err = app.Ping(ctx); err != nil {
		zapLogger.Warn("stream not reachable yet, dispatching will retry", zap.Error(err))
	}

	router, err := app.CreateRouter(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%d", configs.HTTP.Port)
		zapLogger.Info("http server listening", zap.String("addr", addr))
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.HTTP.ShutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if worker := app.CreateDispatchWorker(); worker != nil {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(gctx); err != nil {
		stop()
		_ = g.Wait()
		return err
	}
	g.Go(func() error {
		<-gctx.Done()
		jobManager.StopAll()
		return nil
	})

	return g.Wait()
}

func openDatabase(cfg cmd.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
