package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credisight-service/internal/artifact"
	"credisight-service/internal/domain"
	"credisight-service/internal/testutil"
)

func loadFixtureBundle(t *testing.T) *artifact.Bundle {
	t.Helper()
	prePath, logPath, xgbPath := testutil.WriteArtifacts(t, t.TempDir())
	bundle, err := artifact.LoadBundle(prePath, logPath, xgbPath)
	require.NoError(t, err)
	return bundle
}

func referenceVector() []float64 {
	raw := make([]float64, domain.NumFeatures())
	raw[0] = 55  // ExternalRiskEstimate
	raw[17] = 80 // NetFractionRevolvingBurden
	return raw
}

func TestPredictLogistic(t *testing.T) {
	uc := NewPredictUseCase(loadFixtureBundle(t))

	p, err := uc.Logistic(referenceVector())
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2.7)), p, 1e-12)
}

func TestPredictXGBoost(t *testing.T) {
	uc := NewPredictUseCase(loadFixtureBundle(t))

	p, err := uc.XGBoost(referenceVector())
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-2.4)), p, 1e-12)
}

func TestPredict_ProbabilityRange(t *testing.T) {
	uc := NewPredictUseCase(loadFixtureBundle(t))

	vectors := [][]float64{
		make([]float64, domain.NumFeatures()),
		referenceVector(),
	}
	nulls := make([]float64, domain.NumFeatures())
	for i := range nulls {
		nulls[i] = math.NaN()
	}
	vectors = append(vectors, nulls)

	for _, raw := range vectors {
		for _, score := range []func([]float64) (float64, error){uc.Logistic, uc.XGBoost} {
			p, err := score(raw)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		}
	}
}

func TestPredict_NullsAreImputed(t *testing.T) {
	uc := NewPredictUseCase(loadFixtureBundle(t))

	withNull := make([]float64, domain.NumFeatures())
	withNull[0] = math.NaN()

	imputed := make([]float64, domain.NumFeatures())
	imputed[0] = 72 // the fixture median for ExternalRiskEstimate

	a, err := uc.XGBoost(withNull)
	require.NoError(t, err)
	b, err := uc.XGBoost(imputed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPredict_WrongVectorLength(t *testing.T) {
	uc := NewPredictUseCase(loadFixtureBundle(t))

	_, err := uc.Logistic([]float64{1})
	assert.ErrorIs(t, err, domain.ErrVectorLengthMismatch)
	_, err = uc.XGBoost([]float64{1})
	assert.ErrorIs(t, err, domain.ErrVectorLengthMismatch)
}
