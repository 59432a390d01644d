package services

import (
	"context"
	"delivery-time-service/internal/domain"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T, m *fakeModel) *EstimateService {
	t.Helper()
	svc := NewEstimateService(m, zaptest.NewLogger(t))
	svc.Now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestEstimateHappyPath(t *testing.T) {
	order := reversed(domain.FeatureNames)
	m := &fakeModel{names: order, minutes: 125.9}
	svc := newTestService(t, m)

	est, err := svc.Estimate(context.Background(), validSubmission())
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, order, m.got.Names, "model must receive its own column order")
	assert.Equal(t, "2 hours and 5 minutes", est.Formatted)
	assert.Equal(t, "Predicted Delivery Time: 2 hours and 5 minutes", est.Message())
	assert.Equal(t, "test-v1", est.ModelVersion)
	assert.False(t, est.Cached)

	perKm, ok := m.got.Get(domain.FeaturePrepareTimePerKm)
	require.True(t, ok)
	assert.Equal(t, 3.0, perKm)

	weekend, _ := m.got.Get(domain.FeatureIsWeekend)
	assert.Equal(t, 1.0, weekend)
}

func TestEstimateRejectionSkipsModel(t *testing.T) {
	for _, age := range []int{17, 51} {
		m := &fakeModel{names: domain.FeatureNames, minutes: 30}
		svc := newTestService(t, m)

		s := validSubmission()
		s.CourierAge = &age

		_, err := svc.Estimate(context.Background(), s)
		assert.ErrorIs(t, err, ErrInvalidSubmission)
		assert.Equal(t, 0, m.calls, "age %d must not reach the model", age)
	}

	m := &fakeModel{names: domain.FeatureNames, minutes: 30}
	svc := newTestService(t, m)
	s := validSubmission()
	rating := 0.5
	s.CourierRating = &rating

	_, err := svc.Estimate(context.Background(), s)
	assert.ErrorIs(t, err, ErrInvalidSubmission)
	assert.Equal(t, 0, m.calls)
}

func TestEstimateUsesCoordinatesWhenDistanceMissing(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, minutes: 30}
	svc := newTestService(t, m)

	s := validSubmission()
	s.DistanceKm = nil
	s.Pickup = &domain.Coordinates{Lat: 0, Lon: 0}
	s.Dropoff = &domain.Coordinates{Lat: 0, Lon: 0.1}

	_, err := svc.Estimate(context.Background(), s)
	require.NoError(t, err)

	d, _ := m.got.Get(domain.FeatureDistance)
	assert.InDelta(t, 11.1, d, 1e-9)
}

func TestEstimateModelFailure(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, err: errBoom}
	svc := newTestService(t, m)

	_, err := svc.Estimate(context.Background(), validSubmission())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, errors.Is(err, ErrInvalidSubmission))
}

func TestEstimateGuardsModelOutput(t *testing.T) {
	for _, out := range []float64{-1, math.NaN(), math.Inf(1)} {
		m := &fakeModel{names: domain.FeatureNames, minutes: out}
		svc := newTestService(t, m)

		_, err := svc.Estimate(context.Background(), validSubmission())
		assert.ErrorIs(t, err, domain.ErrInvalidPrediction, "output %v", out)
	}
}

func TestEstimateMissingModelColumn(t *testing.T) {
	m := &fakeModel{names: append([]string{"unknown_column"}, domain.FeatureNames...)}
	svc := newTestService(t, m)

	_, err := svc.Estimate(context.Background(), validSubmission())
	assert.ErrorIs(t, err, ErrMissingFeature)
	assert.Equal(t, 0, m.calls)
}

func TestEstimateCacheHitBypassesModel(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, minutes: 42}
	cache := &fakeCache{}
	svc := newTestService(t, m)
	svc.Cache = cache

	first, err := svc.Estimate(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Estimate(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Formatted, second.Formatted)
	assert.Equal(t, 1, m.calls)
}

func TestEstimateCacheErrorFallsBackToModel(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, minutes: 42}
	svc := newTestService(t, m)
	svc.Cache = &fakeCache{getErr: errBoom}

	est, err := svc.Estimate(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Equal(t, "0 hours and 42 minutes", est.Formatted)
	assert.Equal(t, 1, m.calls)
}

func TestEstimateRecordsPrediction(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, minutes: 61}
	log := &fakeLog{}
	svc := newTestService(t, m)
	svc.Log = log

	_, err := svc.Estimate(context.Background(), validSubmission())
	require.NoError(t, err)

	require.Len(t, log.recs, 1)
	rec := log.recs[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "test-v1", rec.ModelVersion)
	assert.Equal(t, 61.0, rec.Minutes)
	assert.Equal(t, "1 hours and 1 minutes", rec.Formatted)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), rec.CreatedAt)

	recent, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestEstimateLogFailureDoesNotFailRequest(t *testing.T) {
	m := &fakeModel{names: domain.FeatureNames, minutes: 10}
	svc := newTestService(t, m)
	svc.Log = &fakeLog{err: errBoom}

	_, err := svc.Estimate(context.Background(), validSubmission())
	assert.NoError(t, err)
}

func TestRecentWithoutLog(t *testing.T) {
	svc := newTestService(t, &fakeModel{names: domain.FeatureNames})
	recs, err := svc.Recent(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, recs)
}

func TestEstimateCacheKey(t *testing.T) {
	a := domain.FeatureVector{Names: []string{"x", "y"}, Values: []float64{1, 2}}
	b := domain.FeatureVector{Names: []string{"x", "y"}, Values: []float64{1, 2.5}}

	assert.Equal(t, EstimateCacheKey("v1", a), EstimateCacheKey("v1", a))
	assert.NotEqual(t, EstimateCacheKey("v1", a), EstimateCacheKey("v1", b))
	assert.NotEqual(t, EstimateCacheKey("v1", a), EstimateCacheKey("v2", a))
}
