package ports

import (
	"context"
	"delivery-time-service/internal/domain"
)

// Port: append-only audit trail of produced estimates.
type PredictionLog interface {
	Record(ctx context.Context, rec domain.PredictionRecord) error
	// Return the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.PredictionRecord, error)
}
