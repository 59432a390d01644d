package ports

import (
	"context"
	"delivery-time-service/internal/domain"
)

// Contract for the externally trained delivery-time regressor.
type DeliveryTimeModel interface {
	// Ordered column names the model was trained with.
	FeatureNames() []string
	// Identifier of the loaded artifact, used for cache keys and audit rows.
	Version() string
	// Return predicted delivery time in minutes for one feature row.
	Predict(ctx context.Context, features domain.FeatureVector) (float64, error)
}
