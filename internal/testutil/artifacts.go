// Package testutil provides handcrafted artifact fixtures whose outputs are
// known in closed form, so tests can assert exact probabilities and
// attributions.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"credisight-service/internal/domain"
)

// The fixture ensemble has two depth-1 trees:
//
//	tree A splits on ExternalRiskEstimate at 0 (scaled): left leaf +2.0
//	(covers 50/50), so low estimates push the margin up;
//	tree B splits on NetFractionRevolvingBurden at 0.5 (scaled): leaves
//	-0.4/+0.4 with covers 60/40.
//
// base_score is the bracket-wrapped "[5E-1]" export quirk, so the base margin
// is 0 and the expected value is 0 + (-0.4*60+0.4*40)/100 = -0.08.
const fixtureXGBoostModel = `{
  "learner": {
    "attributes": {},
    "feature_names": [],
    "feature_types": [],
    "gradient_booster": {
      "model": {
        "gbtree_model_param": {"num_parallel_tree": "1", "num_trees": "2"},
        "tree_info": [0, 0],
        "trees": [
          {
            "base_weights": [0.0, 2.0, -2.0],
            "default_left": [1, 0, 0],
            "id": 0,
            "left_children": [1, -1, -1],
            "loss_changes": [10.0, 0.0, 0.0],
            "parents": [2147483647, 0, 0],
            "right_children": [2, -1, -1],
            "split_conditions": [0.0, 2.0, -2.0],
            "split_indices": [0, 0, 0],
            "split_type": [0, 0, 0],
            "sum_hessian": [100.0, 50.0, 50.0],
            "tree_param": {"num_deleted": "0", "num_feature": "23", "num_nodes": "3", "size_leaf_vector": "0"}
          },
          {
            "base_weights": [0.0, -0.4, 0.4],
            "default_left": [1, 0, 0],
            "id": 1,
            "left_children": [1, -1, -1],
            "loss_changes": [4.0, 0.0, 0.0],
            "parents": [2147483647, 0, 0],
            "right_children": [2, -1, -1],
            "split_conditions": [0.5, -0.4, 0.4],
            "split_indices": [17, 0, 0],
            "split_type": [0, 0, 0],
            "sum_hessian": [100.0, 60.0, 40.0],
            "tree_param": {"num_deleted": "0", "num_feature": "23", "num_nodes": "3", "size_leaf_vector": "0"}
          }
        ]
      },
      "name": "gbtree"
    },
    "learner_model_param": {"base_score": "[5E-1]", "num_class": "0", "num_feature": "23", "num_target": "1"},
    "objective": {"name": "binary:logistic", "reg_loss_param": {"scale_pos_weight": "1"}}
  },
  "version": [1, 7, 6]
}`

// FixtureBaseValue is the expected margin of the fixture ensemble.
const FixtureBaseValue = -0.08

// WriteArtifacts writes a complete fixture artifact set into dir and returns
// the three file paths.
func WriteArtifacts(t *testing.T, dir string) (preprocessorPath, logisticPath, xgboostPath string) {
	t.Helper()

	n := domain.NumFeatures()
	medians := make([]float64, n)
	means := make([]float64, n)
	scales := make([]float64, n)
	for i := range scales {
		scales[i] = 1
	}
	// ExternalRiskEstimate and NetFractionRevolvingBurden carry realistic
	// training statistics; all remaining features pass through unchanged.
	medians[0], means[0], scales[0] = 72, 70, 10
	medians[17], means[17], scales[17] = 30, 30, 20

	pre := map[string]any{
		"feature_names": domain.FeatureOrder,
		"imputer":       map[string]any{"strategy": "median", "statistics": medians},
		"scaler":        map[string]any{"mean": means, "scale": scales},
	}

	coef := make([]float64, n)
	coef[0] = -0.9  // ExternalRiskEstimate
	coef[7] = -0.35 // PercentTradesNeverDelq
	coef[15] = 0.25 // NumInqLast6M
	coef[17] = 0.6  // NetFractionRevolvingBurden
	logistic := map[string]any{"coef": coef, "intercept": -0.15}

	preprocessorPath = writeJSON(t, dir, "preprocessor.json", pre)
	logisticPath = writeJSON(t, dir, "logistic_model.json", logistic)

	xgboostPath = filepath.Join(dir, "xgb_model.json")
	if err := os.WriteFile(xgboostPath, []byte(fixtureXGBoostModel), 0o644); err != nil {
		t.Fatalf("write xgboost fixture: %v", err)
	}

	return preprocessorPath, logisticPath, xgboostPath
}

// ApplicationBody returns a complete request body covering every schema
// field. Overrides replace defaults; a nil override value becomes JSON null.
func ApplicationBody(overrides map[string]any) map[string]any {
	body := make(map[string]any, domain.NumFeatures())
	for _, name := range domain.FeatureOrder {
		body[name] = 0.0
	}
	body["ExternalRiskEstimate"] = 72.0
	body["NetFractionRevolvingBurden"] = 30.0
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

// ReferenceApplication is the documented example record: a weak external
// risk estimate and a heavy revolving burden.
func ReferenceApplication() map[string]any {
	return ApplicationBody(map[string]any{
		"ExternalRiskEstimate":       55.0,
		"NetFractionRevolvingBurden": 80.0,
	})
}

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
