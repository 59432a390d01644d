package domain

import "time"

// PredictionRecord is the audit entry written after a successful estimate.
type PredictionRecord struct {
	ID           string
	CreatedAt    time.Time
	ModelVersion string
	Features     FeatureVector
	Minutes      float64
	Formatted    string
}
