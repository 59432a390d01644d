package services

import (
	"context"
	"crypto/sha256"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/metrics"
	"delivery-time-service/internal/platform/obs"
	"delivery-time-service/internal/ports"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EstimateService turns a delivery form into a formatted delivery-time
// estimate. Cache and Log are optional; their failures never fail a request.
type EstimateService struct {
	Model     ports.DeliveryTimeModel
	Validator *SubmissionValidator
	Cache     ports.EstimateCache
	Log       ports.PredictionLog
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewEstimateService(model ports.DeliveryTimeModel, logger *zap.Logger) *EstimateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EstimateService{
		Model:     model,
		Validator: NewSubmissionValidator(logger),
		Logger:    logger,
		Now:       time.Now,
	}
}

// Estimate validates sub, scores it with the model and formats the result.
// It returns ErrInvalidSubmission for any rejected input; every other error is
// an internal failure of the request.
func (s *EstimateService) Estimate(ctx context.Context, sub domain.Submission) (_ domain.Estimate, err error) {
	defer obs.Time(ctx, "estimate")(&err)

	start := time.Now()
	defer func() {
		metrics.ObserveEstimate(estimateOutcome(err), time.Since(start))
	}()

	sub = ResolveDistance(sub)
	if err = s.Validator.Validate(sub); err != nil {
		return domain.Estimate{}, err
	}

	vec, err := AssembleFeatures(sub.Raw(), s.Model.FeatureNames())
	if err != nil {
		return domain.Estimate{}, fmt.Errorf("estimate: %w", err)
	}

	minutes, cached, err := s.predict(ctx, vec)
	if err != nil {
		return domain.Estimate{}, fmt.Errorf("estimate: %w", err)
	}

	formatted, err := domain.FormatMinutes(minutes)
	if err != nil {
		return domain.Estimate{}, fmt.Errorf("estimate: %w", err)
	}

	est := domain.Estimate{
		Minutes:      minutes,
		Formatted:    formatted,
		Features:     vec,
		ModelVersion: s.Model.Version(),
		Cached:       cached,
	}
	s.record(ctx, est)

	return est, nil
}

func (s *EstimateService) predict(ctx context.Context, vec domain.FeatureVector) (float64, bool, error) {
	key := EstimateCacheKey(s.Model.Version(), vec)

	if s.Cache != nil {
		minutes, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.EstimateCacheLookups.WithLabelValues("error").Inc()
			s.logger(ctx).Warn("estimate cache lookup failed", zap.Error(err))
		case ok:
			metrics.EstimateCacheLookups.WithLabelValues("hit").Inc()
			return minutes, true, nil
		default:
			metrics.EstimateCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	minutes, err := s.Model.Predict(ctx, vec)
	if err != nil {
		return 0, false, fmt.Errorf("model predict: %w", err)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return 0, false, fmt.Errorf("model predict returned %v: %w", minutes, domain.ErrInvalidPrediction)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, minutes); err != nil {
			s.logger(ctx).Warn("estimate cache store failed", zap.Error(err))
		}
	}

	return minutes, false, nil
}

func (s *EstimateService) record(ctx context.Context, est domain.Estimate) {
	if s.Log == nil {
		return
	}

	rec := domain.PredictionRecord{
		ID:           uuid.NewString(),
		CreatedAt:    s.Now().UTC(),
		ModelVersion: est.ModelVersion,
		Features:     est.Features,
		Minutes:      est.Minutes,
		Formatted:    est.Formatted,
	}
	if err := s.Log.Record(ctx, rec); err != nil {
		s.logger(ctx).Warn("prediction log write failed", zap.String("id", rec.ID), zap.Error(err))
	}
}

// Recent returns the newest audit records, or nil when no log is configured.
func (s *EstimateService) Recent(ctx context.Context, limit int) ([]domain.PredictionRecord, error) {
	if s.Log == nil {
		return nil, nil
	}
	recs, err := s.Log.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent estimates: %w", err)
	}
	return recs, nil
}

func (s *EstimateService) logger(ctx context.Context) *zap.Logger {
	if l := obs.Logger(ctx); l.Core().Enabled(zap.ErrorLevel) {
		return l
	}
	return s.Logger
}

// EstimateCacheKey identifies one model version and feature row.
func EstimateCacheKey(version string, vec domain.FeatureVector) string {
	h := sha256.New()
	h.Write([]byte(version))
	for i, n := range vec.Names {
		h.Write([]byte{0})
		h.Write([]byte(n))
		h.Write([]byte{'='})
		h.Write([]byte(strconv.FormatFloat(vec.Values[i], 'g', -1, 64)))
	}
	return "estimate:" + hex.EncodeToString(h.Sum(nil))
}

func estimateOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidSubmission):
		return "rejected"
	default:
		return "error"
	}
}
