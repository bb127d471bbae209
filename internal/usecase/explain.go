package usecase

import (
	"math"
	"sort"

	"credisight-service/internal/artifact"
	"credisight-service/internal/domain"
	"credisight-service/internal/shap"
)

// ExplainUseCase produces TreeSHAP attributions for the tree ensemble. The
// logistic model deliberately has no explainer.
type ExplainUseCase struct {
	pre       *artifact.Preprocessor
	explainer *shap.Explainer
}

func NewExplainUseCase(bundle *artifact.Bundle) *ExplainUseCase {
	return &ExplainUseCase{
		pre:       bundle.Preprocessor,
		explainer: shap.NewTreeExplainer(bundle.XGBoost),
	}
}

// Explain attributes the ensemble's output for a raw feature vector in schema
// order. Attributions come back ranked by descending absolute magnitude; the
// sort is stable, so equal magnitudes keep schema order.
func (uc *ExplainUseCase) Explain(raw []float64) (*domain.Explanation, error) {
	z, err := uc.pre.Transform(raw)
	if err != nil {
		return nil, err
	}

	phi, err := uc.explainer.SHAPValues(z)
	if err != nil {
		return nil, err
	}

	attrs := make([]domain.FeatureAttribution, len(phi))
	for i, v := range phi {
		attrs[i] = domain.FeatureAttribution{
			Feature:   domain.FeatureOrder[i],
			SHAPValue: v,
		}
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return math.Abs(attrs[i].SHAPValue) > math.Abs(attrs[j].SHAPValue)
	})

	base := uc.explainer.BaseValue()
	return &domain.Explanation{
		BaseValue:    base,
		Attributions: attrs,
		Summary:      generateSummary(base, attrs),
	}, nil
}
