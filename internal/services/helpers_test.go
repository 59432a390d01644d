package services

import (
	"context"
	"delivery-time-service/internal/domain"
	"errors"
	"time"
)

func validSubmission() domain.Submission {
	age, prep, multi, fest := 30, 15, 1, 0
	rating, dist := 4.5, 5.0
	weather := domain.WeatherSunny
	traffic := domain.TrafficMedium
	order := domain.OrderMeal
	vehicle := domain.VehicleMotorcycle
	cond := domain.ConditionNew
	city := domain.CityMetropolitan
	date := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	return domain.Submission{
		CourierAge:         &age,
		CourierRating:      &rating,
		Weather:            &weather,
		Traffic:            &traffic,
		OrderType:          &order,
		VehicleType:        &vehicle,
		VehicleCondition:   &cond,
		MultipleDeliveries: &multi,
		Festival:           &fest,
		City:               &city,
		Date:               &date,
		PrepTimeMinutes:    &prep,
		DistanceKm:         &dist,
	}
}

type fakeModel struct {
	names   []string
	minutes float64
	err     error
	calls   int
	got     domain.FeatureVector
}

func (m *fakeModel) FeatureNames() []string { return m.names }
func (m *fakeModel) Version() string        { return "test-v1" }

func (m *fakeModel) Predict(ctx context.Context, v domain.FeatureVector) (float64, error) {
	m.calls++
	m.got = v
	return m.minutes, m.err
}

type fakeCache struct {
	m      map[string]float64
	getErr error
}

func (c *fakeCache) Get(ctx context.Context, key string) (float64, bool, error) {
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, minutes float64) error {
	if c.m == nil {
		c.m = map[string]float64{}
	}
	c.m[key] = minutes
	return nil
}

type fakeLog struct {
	recs []domain.PredictionRecord
	err  error
}

func (l *fakeLog) Record(ctx context.Context, rec domain.PredictionRecord) error {
	if l.err != nil {
		return l.err
	}
	l.recs = append(l.recs, rec)
	return nil
}

func (l *fakeLog) Recent(ctx context.Context, limit int) ([]domain.PredictionRecord, error) {
	if l.err != nil {
		return nil, l.err
	}
	out := make([]domain.PredictionRecord, 0, len(l.recs))
	for i := len(l.recs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.recs[i])
	}
	return out, nil
}

var errBoom = errors.New("boom")

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}
