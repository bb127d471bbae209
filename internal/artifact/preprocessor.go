// Package artifact loads the serialized model artifacts produced by the
// training pipeline and evaluates them natively. All artifacts are read once
// at startup and shared read-only across requests.
package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"credisight-service/internal/domain"
)

// Preprocessor is the exported imputation + scaling pipeline fitted at
// training time. Transform is a deterministic pure function.
type Preprocessor struct {
	FeatureNames []string `json:"feature_names"`
	Imputer      struct {
		Strategy   string    `json:"strategy"`
		Statistics []float64 `json:"statistics"`
	} `json:"imputer"`
	Scaler struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler"`
}

// LoadPreprocessor reads and validates a preprocessor export.
func LoadPreprocessor(path string) (*Preprocessor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preprocessor: %w", err)
	}

	var p Preprocessor
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preprocessor: %w", err)
	}

	n := len(p.FeatureNames)
	if n == 0 {
		return nil, fmt.Errorf("preprocessor: empty feature_names")
	}
	if len(p.Imputer.Statistics) != n || len(p.Scaler.Mean) != n || len(p.Scaler.Scale) != n {
		return nil, fmt.Errorf("preprocessor: statistics length mismatch (features=%d imputer=%d mean=%d scale=%d)",
			n, len(p.Imputer.Statistics), len(p.Scaler.Mean), len(p.Scaler.Scale))
	}
	for i, s := range p.Scaler.Scale {
		if s == 0 {
			return nil, fmt.Errorf("preprocessor: zero scale for feature %q", p.FeatureNames[i])
		}
	}

	return &p, nil
}

// NumFeatures returns the width of the fitted pipeline.
func (p *Preprocessor) NumFeatures() int {
	return len(p.FeatureNames)
}

// Transform imputes NaN entries with the per-feature training statistic and
// applies standard scaling. The input is not modified.
func (p *Preprocessor) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(p.FeatureNames) {
		return nil, domain.ErrVectorLengthMismatch
	}

	out := make([]float64, len(raw))
	for i, v := range raw {
		if math.IsNaN(v) {
			v = p.Imputer.Statistics[i]
		}
		out[i] = (v - p.Scaler.Mean[i]) / p.Scaler.Scale[i]
	}
	return out, nil
}
