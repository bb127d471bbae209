package usecase

import (
	"credisight-service/internal/artifact"
)

// PredictUseCase scores one applicant record against a chosen model variant.
// Both variants share the preprocessing pipeline.
type PredictUseCase struct {
	pre      *artifact.Preprocessor
	logistic *artifact.LogisticModel
	xgboost  *artifact.XGBoostModel
}

func NewPredictUseCase(bundle *artifact.Bundle) *PredictUseCase {
	return &PredictUseCase{
		pre:      bundle.Preprocessor,
		logistic: bundle.Logistic,
		xgboost:  bundle.XGBoost,
	}
}

// Logistic returns the logistic regression's probability of default for a raw
// feature vector in schema order. NaN marks a missing value.
func (uc *PredictUseCase) Logistic(raw []float64) (float64, error) {
	z, err := uc.pre.Transform(raw)
	if err != nil {
		return 0, err
	}
	return uc.logistic.PredictProba(z)
}

// XGBoost returns the tree ensemble's probability of default for a raw
// feature vector in schema order.
func (uc *PredictUseCase) XGBoost(raw []float64) (float64, error) {
	z, err := uc.pre.Transform(raw)
	if err != nil {
		return 0, err
	}
	return uc.xgboost.PredictProba(z)
}
