package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidPrediction = errors.New("prediction must be a finite, non-negative number of minutes")

// Estimate is the outcome of one prediction request.
type Estimate struct {
	Minutes      float64
	Formatted    string
	Features     FeatureVector
	ModelVersion string
	Cached       bool
}

// Message is the text shown to the user.
func (e Estimate) Message() string {
	return "Predicted Delivery Time: " + e.Formatted
}

// FormatMinutes renders minutes as "<H> hours and <M> minutes".
// Fractional minutes are truncated, not rounded.
func FormatMinutes(minutes float64) (string, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes < 0 {
		return "", fmt.Errorf("format minutes %v: %w", minutes, ErrInvalidPrediction)
	}

	// Formatted as floats: there is no upper bound and int64 would overflow.
	hours := strconv.FormatFloat(math.Floor(minutes/60), 'f', 0, 64)
	mins := strconv.FormatFloat(math.Floor(math.Mod(minutes, 60)), 'f', 0, 64)

	return hours + " hours and " + mins + " minutes", nil
}
