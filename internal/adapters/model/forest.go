package model

import (
	"context"
	"crypto/sha256"
	"delivery-time-service/internal/domain"
	"delivery-time-service/internal/platform/metrics"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

var ErrFeatureOrder = errors.New("feature vector does not match model column order")

// Forest is a tree-ensemble regressor loaded from a JSON export of a trained
// random forest. It is immutable after loading and safe for concurrent use.
type Forest struct {
	version string
	names   []string
	trees   []tree
}

type forestArtifact struct {
	Version      string         `json:"version"`
	FeatureNames []string       `json:"feature_names"`
	Trees        []treeArtifact `json:"trees"`
}

// Parallel node arrays as exported by scikit-learn's tree_ attribute.
// A node is a leaf when ChildrenLeft[i] == -1.
type treeArtifact struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type tree struct {
	left, right []int
	feature     []int
	threshold   []float64
	value       []float64
}

// LoadForest reads and validates a forest artifact from path.
func LoadForest(path string) (*Forest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load forest: read %q: %w", path, err)
	}

	f, err := ParseForest(b)
	if err != nil {
		return nil, fmt.Errorf("load forest %q: %w", path, err)
	}
	return f, nil
}

// ParseForest decodes a forest artifact. When the artifact carries no version,
// one is derived from its content hash.
func ParseForest(b []byte) (*Forest, error) {
	var a forestArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse forest: decode json: %w", err)
	}

	if len(a.FeatureNames) == 0 {
		return nil, errors.New("parse forest: feature_names must not be empty")
	}
	seen := make(map[string]struct{}, len(a.FeatureNames))
	for _, n := range a.FeatureNames {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("parse forest: duplicate feature name %q", n)
		}
		seen[n] = struct{}{}
	}

	if len(a.Trees) == 0 {
		return nil, errors.New("parse forest: trees must not be empty")
	}

	trees := make([]tree, 0, len(a.Trees))
	for i, ta := range a.Trees {
		t, err := buildTree(ta, len(a.FeatureNames))
		if err != nil {
			return nil, fmt.Errorf("parse forest: tree #%d: %w", i, err)
		}
		trees = append(trees, t)
	}

	version := a.Version
	if version == "" {
		sum := sha256.Sum256(b)
		version = "sha256:" + hex.EncodeToString(sum[:6])
	}

	names := make([]string, len(a.FeatureNames))
	copy(names, a.FeatureNames)

	return &Forest{version: version, names: names, trees: trees}, nil
}

func buildTree(a treeArtifact, nFeatures int) (tree, error) {
	n := len(a.ChildrenLeft)
	if n == 0 {
		return tree{}, errors.New("no nodes")
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return tree{}, fmt.Errorf("node arrays differ in length (want %d)", n)
	}

	for i := 0; i < n; i++ {
		l, r := a.ChildrenLeft[i], a.ChildrenRight[i]
		if l == -1 {
			if r != -1 {
				return tree{}, fmt.Errorf("node %d: leaf with right child %d", i, r)
			}
			continue
		}
		// Children always follow their parent, which rules out cycles.
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d: child index out of range (left=%d right=%d)", i, l, r)
		}
		if a.Feature[i] < 0 || a.Feature[i] >= nFeatures {
			return tree{}, fmt.Errorf("node %d: feature index %d out of range", i, a.Feature[i])
		}
	}

	return tree{
		left:      a.ChildrenLeft,
		right:     a.ChildrenRight,
		feature:   a.Feature,
		threshold: a.Threshold,
		value:     a.Value,
	}, nil
}

func (f *Forest) FeatureNames() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Forest) Version() string { return f.version }

func (f *Forest) Trees() int { return len(f.trees) }

// Predict returns the mean of the per-tree leaf values for one row.
func (f *Forest) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	start := time.Now()
	defer func() { metrics.ObservePredict("forest", time.Since(start)) }()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !features.SameOrder(f.names) {
		return 0, fmt.Errorf("forest predict: %w", ErrFeatureOrder)
	}

	var sum float64
	for _, t := range f.trees {
		sum += t.predict(features.Values)
	}
	return sum / float64(len(f.trees)), nil
}

func (t tree) predict(x []float64) float64 {
	node := 0
	for t.left[node] != -1 {
		if x[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.value[node]
}
