package usecase

import (
	"fmt"
	"strings"

	"credisight-service/internal/domain"
)

// generateSummary renders ranked attributions into a natural-language verdict.
// The record is high risk when the final log-odds (base plus all
// contributions) exceed the baseline.
func generateSummary(baseValue float64, ranked []domain.FeatureAttribution) string {
	finalLogOdds := baseValue
	for _, a := range ranked {
		finalLogOdds += a.SHAPValue
	}

	if finalLogOdds > baseValue {
		return highRiskSummary(ranked)
	}
	return lowRiskSummary(ranked)
}

func highRiskSummary(ranked []domain.FeatureAttribution) string {
	drivers := topDrivers(ranked, func(v float64) bool { return v > 0 })
	if len(drivers) == 0 {
		return "The prediction is slightly above average, but no single strong risk factor was identified."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This is a high-risk profile, primarily driven by: %s.", joinNames(drivers))

	if mitigator, ok := strongestAttribution(ranked, func(v float64) bool { return v < 0 }); ok {
		fmt.Fprintf(&b, " While factors like %s were a positive, "+
			"it was not enough to offset the primary risk factors.", mitigator)
	}
	return b.String()
}

func lowRiskSummary(ranked []domain.FeatureAttribution) string {
	drivers := topDrivers(ranked, func(v float64) bool { return v < 0 })
	if len(drivers) == 0 {
		return "The prediction is in line with the average; no significant factors were identified."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This is a low-risk profile, primarily due to positive factors like: %s.", joinNames(drivers))

	if riskFactor, ok := strongestAttribution(ranked, func(v float64) bool { return v > 0 }); ok {
		fmt.Fprintf(&b, " A minor risk was noted (%s), but it was offset by the strong positive factors.", riskFactor)
	}
	return b.String()
}

// topDrivers returns up to three feature names matching the sign predicate,
// in ranked order.
func topDrivers(ranked []domain.FeatureAttribution, match func(float64) bool) []string {
	var names []string
	for _, a := range ranked {
		if !match(a.SHAPValue) {
			continue
		}
		names = append(names, a.Feature)
		if len(names) == 3 {
			break
		}
	}
	return names
}

// strongestAttribution returns the matching feature with the largest absolute
// contribution. Ranked input means the first match wins.
func strongestAttribution(ranked []domain.FeatureAttribution, match func(float64) bool) (string, bool) {
	for _, a := range ranked {
		if match(a.SHAPValue) {
			return a.Feature, true
		}
	}
	return "", false
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
