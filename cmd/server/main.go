package main

import (
	"context"
	"database/sql"
	"delivery-time-service/internal/adapters/cache"
	"delivery-time-service/internal/adapters/model"
	"delivery-time-service/internal/adapters/repositories"
	"delivery-time-service/internal/api"
	"delivery-time-service/internal/config"
	"delivery-time-service/internal/platform/db"
	"delivery-time-service/internal/platform/logger"
	"delivery-time-service/internal/ports"
	"delivery-time-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (model artifact, Redis, SQL) behind ports and starts the HTTP server.
func main() {
	foundEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if !foundEnv {
		lg.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	m, err := openModel(startCtx, cfg)
	if err != nil {
		return err
	}
	lg.Info("model loaded",
		zap.String("version", m.Version()),
		zap.Int("features", len(m.FeatureNames())),
	)

	svc := services.NewEstimateService(m, lg)

	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(startCtx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer rdb.Close()

		svc.Cache = cache.NewRedisEstimateCache(rdb, cfg.CacheTTL)
		lg.Info("estimate cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	conn, dialect, err := openAuditDB(startCtx, cfg)
	if err != nil {
		return err
	}
	if conn != nil {
		defer conn.Close()

		if dialect == repositories.Postgres {
			svc.Log = repositories.NewSQLPredictionLog(conn)
		} else {
			svc.Log = repositories.NewSqlitePredictionLog(conn)
		}
		lg.Info("prediction log enabled", zap.String("dialect", string(dialect)))

		// Without Redis, the audit database doubles as the estimate cache.
		if svc.Cache == nil {
			if dialect == repositories.Postgres {
				svc.Cache = cache.NewSQLEstimateCache(conn, cfg.CacheTTL)
			} else {
				svc.Cache = cache.NewSqliteEstimateCache(conn, cfg.CacheTTL)
			}
			lg.Info("estimate cache enabled", zap.String("backend", string(dialect)), zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	router := api.NewRouter(svc, m, lg)

	// Remote model calls are retried, so the write timeout leaves room for backoff.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openModel prefers a remote model server and falls back to the local artifact.
func openModel(ctx context.Context, cfg *config.Config) (ports.DeliveryTimeModel, error) {
	if cfg.ModelURL != "" {
		m, err := model.NewRemoteModel(ctx, cfg.ModelURL, model.RemoteOptions{
			Timeout:        cfg.ModelTimeout,
			RequestsPerSec: cfg.ModelRPS,
		})
		if err != nil {
			return nil, fmt.Errorf("open model: %w", err)
		}
		return m, nil
	}

	m, err := model.LoadForest(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	return m, nil
}

// openAuditDB opens and migrates the audit database. It returns a nil
// connection when neither DATABASE_URL nor DB_PATH is set.
func openAuditDB(ctx context.Context, cfg *config.Config) (*sql.DB, repositories.Dialect, error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	switch {
	case cfg.DatabaseURL != "":
		dialect = repositories.Postgres
		conn, err = db.OpenPostgres(ctx, cfg.DatabaseURL)
	case cfg.DBPath != "":
		dialect = repositories.SQLite
		conn, err = db.OpenSQLite(ctx, cfg.DBPath)
	default:
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return nil, "", err
	}
	return conn, dialect, nil
}
