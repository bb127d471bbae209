package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"credisight-service/internal/domain"
)

// LogisticModel is an exported binary logistic regression. Coefficients are
// expressed over preprocessed (scaled) features, in schema order.
type LogisticModel struct {
	Coefficients []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

// LoadLogistic reads and validates a logistic regression export.
func LoadLogistic(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logistic model: %w", err)
	}

	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse logistic model: %w", err)
	}
	if len(m.Coefficients) == 0 {
		return nil, fmt.Errorf("logistic model: empty coefficients")
	}

	return &m, nil
}

// NumFeatures returns the number of coefficients.
func (m *LogisticModel) NumFeatures() int {
	return len(m.Coefficients)
}

// PredictProba returns the probability of the default class for a
// preprocessed feature vector.
func (m *LogisticModel) PredictProba(z []float64) (float64, error) {
	if len(z) != len(m.Coefficients) {
		return 0, domain.ErrVectorLengthMismatch
	}

	margin := m.Intercept
	for i, w := range m.Coefficients {
		margin += w * z[i]
	}
	return sigmoid(margin), nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
