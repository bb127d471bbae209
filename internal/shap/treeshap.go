// Package shap implements path-dependent TreeSHAP for gradient-boosted tree
// ensembles. Attributions are computed in the model's margin (log-odds)
// space and satisfy, per record, the additivity property
//
//	BaseValue + sum(phi) == margin(x)
//
// within floating-point tolerance.
package shap

import (
	"credisight-service/internal/artifact"
	"credisight-service/internal/domain"
)

// Explainer is bound to one ensemble at construction and is safe for
// concurrent use; every call allocates its own working state.
type Explainer struct {
	model     *artifact.XGBoostModel
	baseValue float64
}

// NewTreeExplainer precomputes the ensemble's expected value (the
// cover-weighted mean leaf output of each tree, plus the trained base margin).
func NewTreeExplainer(model *artifact.XGBoostModel) *Explainer {
	base := model.BaseMargin
	for _, t := range model.Trees {
		base += expectedValue(t, 0)
	}
	return &Explainer{model: model, baseValue: base}
}

// BaseValue returns the ensemble's expected margin output absent any feature
// information.
func (e *Explainer) BaseValue() float64 {
	return e.baseValue
}

// SHAPValues returns one attribution per feature for a preprocessed vector,
// indexed by schema position.
func (e *Explainer) SHAPValues(z []float64) ([]float64, error) {
	if n := e.model.NumFeatures(); n > 0 && len(z) != n {
		return nil, domain.ErrVectorLengthMismatch
	}

	phi := make([]float64, len(z))
	for _, t := range e.model.Trees {
		treeSHAP(t, z, phi)
	}
	return phi, nil
}

// expectedValue is the cover-weighted mean leaf output of the subtree rooted
// at node i.
func expectedValue(t *artifact.Tree, i int) float64 {
	if t.IsLeaf(i) {
		return t.SplitValue[i]
	}
	l, r := t.Left[i], t.Right[i]
	return (t.Cover[l]*expectedValue(t, l) + t.Cover[r]*expectedValue(t, r)) / t.Cover[i]
}

// pathElement is one entry of the unique feature path maintained by the
// recursion: the proportion of subsets that flow down when the feature is
// unknown (zeroFraction) or matches the record (oneFraction), and the
// permutation weight of each subset size (pweight).
type pathElement struct {
	featureIndex int
	zeroFraction float64
	oneFraction  float64
	pweight      float64
}

func treeSHAP(t *artifact.Tree, z []float64, phi []float64) {
	recurse(t, z, phi, 0, nil, 1, 1, -1)
}

func recurse(t *artifact.Tree, z []float64, phi []float64, node int, parentPath []pathElement, zeroFraction, oneFraction float64, featureIndex int) {
	path := make([]pathElement, len(parentPath), len(parentPath)+1)
	copy(path, parentPath)
	path = extendPath(path, zeroFraction, oneFraction, featureIndex)

	if t.IsLeaf(node) {
		for i := 1; i < len(path); i++ {
			w := unwoundPathSum(path, i)
			el := path[i]
			phi[el.featureIndex] += w * (el.oneFraction - el.zeroFraction) * t.SplitValue[node]
		}
		return
	}

	split := t.SplitIndex[node]
	hot, cold := t.Left[node], t.Right[node]
	if !nextIsLeft(t, node, z) {
		hot, cold = cold, hot
	}
	hotZeroFraction := t.Cover[hot] / t.Cover[node]
	coldZeroFraction := t.Cover[cold] / t.Cover[node]

	// A feature already on the path is unwound and its fractions folded into
	// the child calls, so each feature occupies one path slot.
	incomingZero, incomingOne := 1.0, 1.0
	if k := findFeature(path, split); k >= 0 {
		incomingZero = path[k].zeroFraction
		incomingOne = path[k].oneFraction
		path = unwindPath(path, k)
	}

	recurse(t, z, phi, hot, path, hotZeroFraction*incomingZero, incomingOne, split)
	recurse(t, z, phi, cold, path, coldZeroFraction*incomingZero, 0, split)
}

func nextIsLeft(t *artifact.Tree, node int, z []float64) bool {
	v := z[t.SplitIndex[node]]
	if v != v { // NaN
		return t.DefaultLeft[node]
	}
	return v < t.SplitValue[node]
}

func findFeature(path []pathElement, featureIndex int) int {
	// Index 0 is the root sentinel (featureIndex -1).
	for i := 1; i < len(path); i++ {
		if path[i].featureIndex == featureIndex {
			return i
		}
	}
	return -1
}

// extendPath grows the path with a new feature split and updates the
// permutation weights for every subset size.
func extendPath(path []pathElement, zeroFraction, oneFraction float64, featureIndex int) []pathElement {
	path = append(path, pathElement{
		featureIndex: featureIndex,
		zeroFraction: zeroFraction,
		oneFraction:  oneFraction,
	})
	l := len(path)
	if l == 1 {
		path[0].pweight = 1
		return path
	}
	for i := l - 2; i >= 0; i-- {
		path[i+1].pweight += oneFraction * path[i].pweight * float64(i+1) / float64(l)
		path[i].pweight *= zeroFraction * float64(l-1-i) / float64(l)
	}
	return path
}

// unwindPath reverses extendPath for the element at index i, removing it from
// the path.
func unwindPath(path []pathElement, i int) []pathElement {
	l := len(path)
	one := path[i].oneFraction
	zero := path[i].zeroFraction
	next := path[l-1].pweight

	for j := l - 2; j >= 0; j-- {
		if one != 0 {
			tmp := path[j].pweight
			path[j].pweight = next * float64(l) / (float64(j+1) * one)
			next = tmp - path[j].pweight*zero*float64(l-1-j)/float64(l)
		} else {
			path[j].pweight = path[j].pweight * float64(l) / (zero * float64(l-1-j))
		}
	}
	for j := i; j < l-1; j++ {
		path[j].featureIndex = path[j+1].featureIndex
		path[j].zeroFraction = path[j+1].zeroFraction
		path[j].oneFraction = path[j+1].oneFraction
	}
	return path[:l-1]
}

// unwoundPathSum is the total permutation weight the element at index i would
// carry if unwound, used to weight leaf contributions.
func unwoundPathSum(path []pathElement, i int) float64 {
	l := len(path)
	one := path[i].oneFraction
	zero := path[i].zeroFraction
	next := path[l-1].pweight
	total := 0.0

	if one != 0 {
		for j := l - 2; j >= 0; j-- {
			tmp := next / (float64(j+1) * one)
			total += tmp
			next = path[j].pweight - tmp*zero*float64(l-1-j)
		}
	} else {
		for j := l - 2; j >= 0; j-- {
			total += path[j].pweight / (zero * float64(l-1-j))
		}
	}
	return total * float64(l)
}
