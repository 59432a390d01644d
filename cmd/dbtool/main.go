package main

import (
	"context"
	"database/sql"
	"delivery-time-service/internal/adapters/repositories"
	"delivery-time-service/internal/config"
	"delivery-time-service/internal/platform/db"
	"delivery-time-service/internal/platform/logger"
	"time"

	"go.uber.org/zap"
)

// dbtool creates the prediction audit schema. DATABASE_URL selects Postgres;
// otherwise DB_PATH (default data/app.db) selects SQLite.
func main() {
	foundEnv := config.LoadDotEnv()

	lg, err := logger.New(config.Get("LOG_LEVEL", "info"), "console")
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	if !foundEnv {
		lg.Info("no .env file found (using environment variables)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, dialect, err := open(ctx)
	if err != nil {
		lg.Fatal("open database failed", zap.Error(err))
	}
	defer conn.Close()

	lg.Info("initializing database schema", zap.String("dialect", string(dialect)))
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		lg.Fatal("schema initialization failed", zap.Error(err))
	}
	lg.Info("schema ready")
}

func open(ctx context.Context) (*sql.DB, repositories.Dialect, error) {
	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.OpenPostgres(ctx, url)
		return conn, repositories.Postgres, err
	}

	conn, err := db.OpenSQLite(ctx, config.Get("DB_PATH", "data/app.db"))
	return conn, repositories.SQLite, err
}
