package dto

import (
	"credisight-service/internal/domain"
)

type PredictionResponse struct {
	ProbabilityOfDefault float64 `json:"probability_of_default"`
}

type FeatureExplanation struct {
	Feature   string  `json:"feature"`
	SHAPValue float64 `json:"shap_value"`
}

type ExplanationResponse struct {
	BaseValue    float64              `json:"base_value"`
	Explanations []FeatureExplanation `json:"explanations"`
	Summary      string               `json:"summary"`
}

func ToExplanationResponse(ex *domain.Explanation) ExplanationResponse {
	items := make([]FeatureExplanation, 0, len(ex.Attributions))
	for _, a := range ex.Attributions {
		items = append(items, FeatureExplanation{
			Feature:   a.Feature,
			SHAPValue: a.SHAPValue,
		})
	}
	return ExplanationResponse{
		BaseValue:    ex.BaseValue,
		Explanations: items,
		Summary:      ex.Summary,
	}
}
