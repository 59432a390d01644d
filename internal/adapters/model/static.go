package model

import (
	"context"
	"delivery-time-service/internal/domain"
	"fmt"
)

// StaticModel returns a fixed prediction. It stands in for a trained model in
// tests and local demos.
type StaticModel struct {
	names   []string
	minutes float64
}

func NewStaticModel(names []string, minutes float64) *StaticModel {
	out := make([]string, len(names))
	copy(out, names)
	return &StaticModel{names: out, minutes: minutes}
}

func (m *StaticModel) FeatureNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *StaticModel) Version() string { return "static" }

func (m *StaticModel) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	if !features.SameOrder(m.names) {
		return 0, fmt.Errorf("static predict: %w", ErrFeatureOrder)
	}
	return m.minutes, nil
}
