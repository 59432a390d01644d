package services

import (
	"delivery-time-service/internal/domain"
	"errors"
	"fmt"
)

var ErrMissingFeature = errors.New("missing feature")

// AssembleFeatures builds one model row from named values.
//
// The output is labelled exactly by order, which must be the column order the
// model was trained with. Keys in raw that are not part of order are ignored.
// A name in order with no value in raw is an error, never a zero.
func AssembleFeatures(raw map[string]float64, order []string) (domain.FeatureVector, error) {
	if len(order) == 0 {
		return domain.FeatureVector{}, errors.New("assemble features: feature order must not be empty")
	}

	seen := make(map[string]struct{}, len(order))
	names := make([]string, 0, len(order))
	values := make([]float64, 0, len(order))

	for _, name := range order {
		if _, dup := seen[name]; dup {
			return domain.FeatureVector{}, fmt.Errorf("assemble features: duplicate feature %q in order", name)
		}
		seen[name] = struct{}{}

		v, ok := raw[name]
		if !ok {
			return domain.FeatureVector{}, fmt.Errorf("assemble features: %w: %q", ErrMissingFeature, name)
		}
		names = append(names, name)
		values = append(values, v)
	}

	return domain.FeatureVector{Names: names, Values: values}, nil
}
