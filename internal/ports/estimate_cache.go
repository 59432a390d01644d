package ports

import "context"

// Boundary for caching model outputs keyed by model version and feature row.
type EstimateCache interface {
	// Return cached minutes and whether the key was present.
	Get(ctx context.Context, key string) (float64, bool, error)
	Set(ctx context.Context, key string, minutes float64) error
}
