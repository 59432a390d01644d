package repositories

import (
	"context"
	"database/sql"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// SQLPredictionLog is a Postgres-backed implementation of the PredictionLog port.
type SQLPredictionLog struct {
	DB *sql.DB
}

func NewSQLPredictionLog(db *sql.DB) *SQLPredictionLog {
	return &SQLPredictionLog{DB: db}
}

// Append one estimate to the audit table.
func (s *SQLPredictionLog) Record(ctx context.Context, rec domain.PredictionRecord) (err error) {
	defer obs.Time(ctx, "prediction.log.Record")(&err)

	if s.DB == nil {
		return errors.New("prediction log: db is nil")
	}
	if rec.ID == "" {
		return errors.New("record prediction: id must not be empty")
	}

	features, err := encodeFeatures(rec.Features)
	if err != nil {
		return fmt.Errorf("record prediction id=%s: %w", rec.ID, err)
	}

	q := `
	INSERT INTO predictions (id, created_at, model_version, features, minutes, formatted)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := s.DB.ExecContext(ctx, q,
		rec.ID, rec.CreatedAt, rec.ModelVersion, string(features), rec.Minutes, rec.Formatted,
	); err != nil {
		return fmt.Errorf("record prediction id=%s: insert: %w", rec.ID, err)
	}

	return nil
}

// Return up to limit records, newest first.
func (s *SQLPredictionLog) Recent(ctx context.Context, limit int) (_ []domain.PredictionRecord, err error) {
	defer obs.Time(ctx, "prediction.log.Recent")(&err)

	if s.DB == nil {
		return nil, errors.New("prediction log: db is nil")
	}
	if limit <= 0 {
		return []domain.PredictionRecord{}, nil
	}

	q := `
	SELECT id, created_at, model_version, features, minutes, formatted
	FROM predictions
	ORDER BY created_at DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent predictions: query predictions table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PredictionRecord, 0, limit)
	for rows.Next() {
		var (
			rec      domain.PredictionRecord
			created  time.Time
			features []byte
		)
		if err := rows.Scan(&rec.ID, &created, &rec.ModelVersion, &features, &rec.Minutes, &rec.Formatted); err != nil {
			return nil, fmt.Errorf("recent predictions: scan row: %w", err)
		}
		rec.CreatedAt = created.UTC()
		if rec.Features, err = decodeFeatures(features); err != nil {
			return nil, fmt.Errorf("recent predictions id=%s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent predictions: row iteration: %w", err)
	}

	return out, nil
}
