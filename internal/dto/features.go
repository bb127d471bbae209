package dto

import (
	"encoding/json"
	"errors"
	"math"

	"credisight-service/internal/domain"
)

// CreditApplicationRequest is one applicant's feature record. Every schema
// field must be present in the request body; a null value marks a missing
// measurement and is imputed downstream. Unknown fields are ignored.
type CreditApplicationRequest struct {
	ExternalRiskEstimate               *float64 `json:"ExternalRiskEstimate"`
	MSinceOldestTradeOpen              *float64 `json:"MSinceOldestTradeOpen"`
	MSinceMostRecentTradeOpen          *float64 `json:"MSinceMostRecentTradeOpen"`
	AverageMInFile                     *float64 `json:"AverageMInFile"`
	NumSatisfactoryTrades              *float64 `json:"NumSatisfactoryTrades"`
	NumTrades60Ever2DerogPubRec        *float64 `json:"NumTrades60Ever2DerogPubRec"`
	NumTrades90Ever2DerogPubRec        *float64 `json:"NumTrades90Ever2DerogPubRec"`
	PercentTradesNeverDelq             *float64 `json:"PercentTradesNeverDelq"`
	MSinceMostRecentDelq               *float64 `json:"MSinceMostRecentDelq"`
	MaxDelq2PublicRecLast12M           *float64 `json:"MaxDelq2PublicRecLast12M"`
	MaxDelqEver                        *float64 `json:"MaxDelqEver"`
	NumTotalTrades                     *float64 `json:"NumTotalTrades"`
	NumTradesOpeninLast12M             *float64 `json:"NumTradesOpeninLast12M"`
	PercentInstallTrades               *float64 `json:"PercentInstallTrades"`
	MSinceMostRecentInqexcl7days       *float64 `json:"MSinceMostRecentInqexcl7days"`
	NumInqLast6M                       *float64 `json:"NumInqLast6M"`
	NumInqLast6Mexcl7days              *float64 `json:"NumInqLast6Mexcl7days"`
	NetFractionRevolvingBurden         *float64 `json:"NetFractionRevolvingBurden"`
	NetFractionInstallBurden           *float64 `json:"NetFractionInstallBurden"`
	NumRevolvingTradesWBalance         *float64 `json:"NumRevolvingTradesWBalance"`
	NumInstallTradesWBalance           *float64 `json:"NumInstallTradesWBalance"`
	NumBank2NatlTradesWHighUtilization *float64 `json:"NumBank2NatlTradesWHighUtilization"`
	PercentTradesWBalance              *float64 `json:"PercentTradesWBalance"`
}

// UnmarshalJSON enforces the feature schema: every field present, every value
// numeric or null. Violations surface as domain.ValidationError naming the
// offending field.
func (r *CreditApplicationRequest) UnmarshalJSON(data []byte) error {
	type plain CreditApplicationRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &domain.ValidationError{Field: typeErr.Field, Reason: "must be a number or null"}
		}
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, name := range domain.FeatureOrder {
		if _, ok := raw[name]; !ok {
			return &domain.ValidationError{Field: name, Reason: "field is required"}
		}
	}

	*r = CreditApplicationRequest(p)
	return nil
}

// Vector flattens the record into schema order, with NaN standing in for
// null fields.
func (r *CreditApplicationRequest) Vector() []float64 {
	fields := []*float64{
		r.ExternalRiskEstimate,
		r.MSinceOldestTradeOpen,
		r.MSinceMostRecentTradeOpen,
		r.AverageMInFile,
		r.NumSatisfactoryTrades,
		r.NumTrades60Ever2DerogPubRec,
		r.NumTrades90Ever2DerogPubRec,
		r.PercentTradesNeverDelq,
		r.MSinceMostRecentDelq,
		r.MaxDelq2PublicRecLast12M,
		r.MaxDelqEver,
		r.NumTotalTrades,
		r.NumTradesOpeninLast12M,
		r.PercentInstallTrades,
		r.MSinceMostRecentInqexcl7days,
		r.NumInqLast6M,
		r.NumInqLast6Mexcl7days,
		r.NetFractionRevolvingBurden,
		r.NetFractionInstallBurden,
		r.NumRevolvingTradesWBalance,
		r.NumInstallTradesWBalance,
		r.NumBank2NatlTradesWHighUtilization,
		r.PercentTradesWBalance,
	}

	vec := make([]float64, len(fields))
	for i, f := range fields {
		if f == nil {
			vec[i] = math.NaN()
		} else {
			vec[i] = *f
		}
	}
	return vec
}
