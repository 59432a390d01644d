package handlers

import (
	"context"
	"delivery-time-service/internal/api/dto"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/obs"
	"delivery-time-service/internal/ports"
	"delivery-time-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
	maxBodyBytes       = 64 << 10
)

// Estimator is the behaviour the HTTP layer needs from the estimate service.
type Estimator interface {
	Estimate(ctx context.Context, sub domain.Submission) (domain.Estimate, error)
	Recent(ctx context.Context, limit int) ([]domain.PredictionRecord, error)
}

// EstimateHandler exposes the JSON estimate API.
type EstimateHandler struct {
	Service Estimator
	Model   ports.DeliveryTimeModel
}

// Estimates creates an estimate on POST and lists recent ones on GET.
func (h *EstimateHandler) Estimates(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	if r.Method == http.MethodGet {
		h.recent(w, r)
		return
	}

	var req dto.EstimateRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			writeError(w, r, http.StatusUnprocessableEntity, services.InvalidSubmissionMessage)
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	est, err := h.Service.Estimate(r.Context(), submissionFromRequest(req))
	if errors.Is(err, services.ErrInvalidSubmission) {
		writeError(w, r, http.StatusUnprocessableEntity, services.InvalidSubmissionMessage)
		return
	}
	if err != nil {
		obs.Logger(r.Context()).Error("estimate failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.EstimateResponse{
		Minutes:      est.Minutes,
		Formatted:    est.Formatted,
		Message:      est.Message(),
		ModelVersion: est.ModelVersion,
		Cached:       est.Cached,
		Features:     featuresResponse(est.Features),
	})
}

func (h *EstimateHandler) recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxRecentLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	recs, err := h.Service.Recent(r.Context(), limit)
	if err != nil {
		obs.Logger(r.Context()).Error("list recent estimates failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRecordsResponse{Estimates: make([]dto.RecordResponse, 0, len(recs))}
	for _, rec := range recs {
		res.Estimates = append(res.Estimates, dto.RecordResponse{
			ID:           rec.ID,
			CreatedAt:    rec.CreatedAt,
			ModelVersion: rec.ModelVersion,
			Minutes:      rec.Minutes,
			Formatted:    rec.Formatted,
			Features:     featuresResponse(rec.Features),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Features reports the column order the loaded model expects.
func (h *EstimateHandler) Features(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FeaturesResponse{
		ModelVersion: h.Model.Version(),
		FeatureNames: h.Model.FeatureNames(),
	})
}
