package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"credisight-service/internal/domain"
)

// Tree is one regression tree of the ensemble, kept in the flat array layout
// of the XGBoost model file. Leaf nodes carry their value in SplitValue and
// have Left == -1.
type Tree struct {
	Left        []int
	Right       []int
	SplitIndex  []int
	SplitValue  []float64
	DefaultLeft []bool
	Cover       []float64
}

// IsLeaf reports whether node i is a leaf.
func (t *Tree) IsLeaf(i int) bool {
	return t.Left[i] == -1
}

// Output traverses the tree for a preprocessed vector and returns the leaf
// value. NaN entries follow the recorded default branch.
func (t *Tree) Output(z []float64) float64 {
	i := 0
	for !t.IsLeaf(i) {
		v := z[t.SplitIndex[i]]
		switch {
		case math.IsNaN(v):
			if t.DefaultLeft[i] {
				i = t.Left[i]
			} else {
				i = t.Right[i]
			}
		case v < t.SplitValue[i]:
			i = t.Left[i]
		default:
			i = t.Right[i]
		}
	}
	return t.SplitValue[i]
}

// XGBoostModel is a binary:logistic gradient-boosted tree ensemble read from
// the XGBoost JSON model format.
type XGBoostModel struct {
	Trees       []*Tree
	BaseMargin  float64 // logit of the trained base_score
	numFeatures int
}

type xgbTreeFile struct {
	LeftChildren    []int     `json:"left_children"`
	RightChildren   []int     `json:"right_children"`
	SplitIndices    []int     `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []int     `json:"default_left"`
	SumHessian      []float64 `json:"sum_hessian"`
}

type xgbModelFile struct {
	Learner struct {
		LearnerModelParam struct {
			BaseScore  string `json:"base_score"`
			NumFeature string `json:"num_feature"`
		} `json:"learner_model_param"`
		Objective struct {
			Name string `json:"name"`
		} `json:"objective"`
		GradientBooster struct {
			Model struct {
				Trees []xgbTreeFile `json:"trees"`
			} `json:"model"`
		} `json:"gradient_booster"`
	} `json:"learner"`
}

// LoadXGBoost reads and validates an XGBoost JSON model file.
func LoadXGBoost(path string) (*XGBoostModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xgboost model: %w", err)
	}

	var f xgbModelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse xgboost model: %w", err)
	}

	if name := f.Learner.Objective.Name; name != "binary:logistic" {
		return nil, fmt.Errorf("%w: got %q", domain.ErrUnsupportedObjective, name)
	}

	baseScore, err := parseModelParam(f.Learner.LearnerModelParam.BaseScore)
	if err != nil {
		return nil, fmt.Errorf("xgboost model: bad base_score: %w", err)
	}
	if baseScore <= 0 || baseScore >= 1 {
		return nil, fmt.Errorf("xgboost model: base_score %v outside (0,1)", baseScore)
	}

	numFeature := 0
	if s := f.Learner.LearnerModelParam.NumFeature; s != "" {
		nf, err := parseModelParam(s)
		if err != nil {
			return nil, fmt.Errorf("xgboost model: bad num_feature: %w", err)
		}
		numFeature = int(nf)
	}

	rawTrees := f.Learner.GradientBooster.Model.Trees
	if len(rawTrees) == 0 {
		return nil, fmt.Errorf("xgboost model: no trees")
	}

	trees := make([]*Tree, 0, len(rawTrees))
	for ti, rt := range rawTrees {
		n := len(rt.LeftChildren)
		if n == 0 ||
			len(rt.RightChildren) != n || len(rt.SplitIndices) != n ||
			len(rt.SplitConditions) != n || len(rt.DefaultLeft) != n ||
			len(rt.SumHessian) != n {
			return nil, fmt.Errorf("xgboost model: tree %d has inconsistent node arrays", ti)
		}

		t := &Tree{
			Left:        rt.LeftChildren,
			Right:       rt.RightChildren,
			SplitIndex:  rt.SplitIndices,
			SplitValue:  rt.SplitConditions,
			DefaultLeft: make([]bool, n),
			Cover:       rt.SumHessian,
		}
		for i, d := range rt.DefaultLeft {
			t.DefaultLeft[i] = d != 0
		}
		trees = append(trees, t)
	}

	return &XGBoostModel{
		Trees:       trees,
		BaseMargin:  math.Log(baseScore / (1 - baseScore)),
		numFeatures: numFeature,
	}, nil
}

// NumFeatures returns the feature width recorded in the model file.
func (m *XGBoostModel) NumFeatures() int {
	return m.numFeatures
}

// Margin returns the raw log-odds output for a preprocessed vector.
func (m *XGBoostModel) Margin(z []float64) float64 {
	margin := m.BaseMargin
	for _, t := range m.Trees {
		margin += t.Output(z)
	}
	return margin
}

// PredictProba returns the probability of the default class for a
// preprocessed vector.
func (m *XGBoostModel) PredictProba(z []float64) (float64, error) {
	if m.numFeatures > 0 && len(z) != m.numFeatures {
		return 0, domain.ErrVectorLengthMismatch
	}
	return sigmoid(m.Margin(z)), nil
}

// parseModelParam parses the string-encoded numeric params of the XGBoost
// model file. Some exports wrap base_score in brackets ("[5E-1]"); those are
// normalized here rather than by rewriting the file on disk.
func parseModelParam(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strconv.ParseFloat(s, 64)
}
