package repositories

import (
	"delivery-time-service/internal/domain"
	"encoding/json"
	"fmt"
)

// Features are stored as an ordered list so the column order survives.
type featureJSON struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func encodeFeatures(v domain.FeatureVector) ([]byte, error) {
	out := make([]featureJSON, 0, v.Len())
	for i, n := range v.Names {
		out = append(out, featureJSON{Name: n, Value: v.Values[i]})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode features: %w", err)
	}
	return b, nil
}

func decodeFeatures(b []byte) (domain.FeatureVector, error) {
	var in []featureJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return domain.FeatureVector{}, fmt.Errorf("decode features: %w", err)
	}

	v := domain.FeatureVector{
		Names:  make([]string, 0, len(in)),
		Values: make([]float64, 0, len(in)),
	}
	for _, f := range in {
		v.Names = append(v.Names, f.Name)
		v.Values = append(v.Values, f.Value)
	}
	return v, nil
}
