package model

import (
	"bytes"
	"context"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/metrics"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RemoteModel scores feature rows on an external model server.
//
// The server exposes:
//   - GET  {base}/metadata -> {"version": "...", "feature_names": [...]}
//   - POST {base}/predict  <- {"feature_names": [...], "rows": [[...]]}
//     -> {"predictions": [minutes]}
//
// Metadata is fetched once at construction; the column order never changes
// for the lifetime of the client. Safe for concurrent use.
type RemoteModel struct {
	session    *http.Client
	limiter    *rate.Limiter
	baseURL    string
	maxElapsed time.Duration
	version    string
	names      []string
}

type RemoteOptions struct {
	Timeout        time.Duration
	RequestsPerSec int
	MaxElapsed     time.Duration
}

type metadataResponse struct {
	Version      string   `json:"version"`
	FeatureNames []string `json:"feature_names"`
}

type predictRequest struct {
	FeatureNames []string    `json:"feature_names"`
	Rows         [][]float64 `json:"rows"`
}

type predictResponse struct {
	Predictions []float64 `json:"predictions"`
}

func NewRemoteModel(ctx context.Context, baseURL string, opts RemoteOptions) (*RemoteModel, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("remote model: base url is empty")
	}

	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 20
	}
	if opts.MaxElapsed == 0 {
		opts.MaxElapsed = 10 * time.Second
	}

	m := &RemoteModel{
		session:    &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSec), opts.RequestsPerSec),
		baseURL:    baseURL,
		maxElapsed: opts.MaxElapsed,
	}

	if err := m.loadMetadata(ctx); err != nil {
		return nil, fmt.Errorf("remote model: %w", err)
	}

	return m, nil
}

func (m *RemoteModel) loadMetadata(ctx context.Context) error {
	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		return m.newRequest(ctx, http.MethodGet, m.baseURL+"/metadata", nil)
	})
	if err != nil {
		return fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	var md metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return fmt.Errorf("decode metadata: %w", err)
	}
	if len(md.FeatureNames) == 0 {
		return errors.New("metadata: feature_names must not be empty")
	}

	m.names = md.FeatureNames
	m.version = md.Version
	if m.version == "" {
		m.version = "remote"
	}
	return nil
}

func (m *RemoteModel) FeatureNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

func (m *RemoteModel) Version() string { return m.version }

func (m *RemoteModel) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	start := time.Now()
	defer func() { metrics.ObservePredict("remote", time.Since(start)) }()

	if !features.SameOrder(m.names) {
		return 0, fmt.Errorf("remote predict: %w", ErrFeatureOrder)
	}

	body, err := json.Marshal(predictRequest{
		FeatureNames: features.Names,
		Rows:         [][]float64{features.Values},
	})
	if err != nil {
		return 0, fmt.Errorf("remote predict: encode request: %w", err)
	}

	resp, err := m.doWithRetry(ctx, func() (*http.Request, error) {
		return m.newRequest(ctx, http.MethodPost, m.baseURL+"/predict", bytes.NewReader(body))
	})
	if err != nil {
		return 0, fmt.Errorf("remote predict: %w", err)
	}
	defer resp.Body.Close()

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("remote predict: decode response: %w", err)
	}
	if len(pr.Predictions) != 1 {
		return 0, fmt.Errorf("remote predict: expected 1 prediction, got %d", len(pr.Predictions))
	}

	return pr.Predictions[0], nil
}
