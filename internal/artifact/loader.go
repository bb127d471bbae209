package artifact

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"credisight-service/internal/domain"
)

// Bundle is the full set of read-only artifacts the service needs. It is
// loaded once at startup and never mutated afterwards, so it is safe to share
// across concurrent requests without locking.
type Bundle struct {
	Preprocessor *Preprocessor
	Logistic     *LogisticModel
	XGBoost      *XGBoostModel
}

// LoadBundle loads all three artifacts and cross-checks them against the
// feature schema. Any failure is fatal to startup.
func LoadBundle(preprocessorPath, logisticPath, xgboostPath string) (*Bundle, error) {
	pre, err := LoadPreprocessor(preprocessorPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"path":     preprocessorPath,
		"features": pre.NumFeatures(),
	}).Info("preprocessor loaded")

	logistic, err := LoadLogistic(logisticPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"path":     logisticPath,
		"features": logistic.NumFeatures(),
	}).Info("logistic model loaded")

	xgb, err := LoadXGBoost(xgboostPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"path":  xgboostPath,
		"trees": len(xgb.Trees),
	}).Info("xgboost model loaded")

	want := domain.NumFeatures()
	if pre.NumFeatures() != want {
		return nil, fmt.Errorf("%w: preprocessor has %d, schema has %d",
			domain.ErrFeatureCountMismatch, pre.NumFeatures(), want)
	}
	if logistic.NumFeatures() != want {
		return nil, fmt.Errorf("%w: logistic model has %d, schema has %d",
			domain.ErrFeatureCountMismatch, logistic.NumFeatures(), want)
	}
	if xgb.NumFeatures() != 0 && xgb.NumFeatures() != want {
		return nil, fmt.Errorf("%w: xgboost model has %d, schema has %d",
			domain.ErrFeatureCountMismatch, xgb.NumFeatures(), want)
	}
	for _, name := range pre.FeatureNames {
		if domain.FeatureIndex(name) == -1 {
			return nil, fmt.Errorf("preprocessor: unknown feature %q", name)
		}
	}

	return &Bundle{Preprocessor: pre, Logistic: logistic, XGBoost: xgb}, nil
}
