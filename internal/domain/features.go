package domain

// FeatureOrder is the canonical ordering of the credit application schema.
// Every artifact (preprocessor statistics, model coefficients, tree split
// indices) is expressed against this ordering, so it must never be reordered
// without retraining.
var FeatureOrder = []string{
	"ExternalRiskEstimate",
	"MSinceOldestTradeOpen",
	"MSinceMostRecentTradeOpen",
	"AverageMInFile",
	"NumSatisfactoryTrades",
	"NumTrades60Ever2DerogPubRec",
	"NumTrades90Ever2DerogPubRec",
	"PercentTradesNeverDelq",
	"MSinceMostRecentDelq",
	"MaxDelq2PublicRecLast12M",
	"MaxDelqEver",
	"NumTotalTrades",
	"NumTradesOpeninLast12M",
	"PercentInstallTrades",
	"MSinceMostRecentInqexcl7days",
	"NumInqLast6M",
	"NumInqLast6Mexcl7days",
	"NetFractionRevolvingBurden",
	"NetFractionInstallBurden",
	"NumRevolvingTradesWBalance",
	"NumInstallTradesWBalance",
	"NumBank2NatlTradesWHighUtilization",
	"PercentTradesWBalance",
}

// NumFeatures is the width of a feature vector.
func NumFeatures() int {
	return len(FeatureOrder)
}

// FeatureIndex returns the position of name in FeatureOrder, or -1.
func FeatureIndex(name string) int {
	for i, n := range FeatureOrder {
		if n == name {
			return i
		}
	}
	return -1
}
