package domain

// FeatureAttribution is one feature's contribution to a single prediction,
// expressed in the model's margin (log-odds) space.
type FeatureAttribution struct {
	Feature   string
	SHAPValue float64
}

// Explanation is the full attribution result for one applicant record.
// Attributions are ordered by descending absolute magnitude; equal magnitudes
// keep schema order.
type Explanation struct {
	BaseValue    float64
	Attributions []FeatureAttribution
	Summary      string
}
