package dto

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credisight-service/internal/domain"
	"credisight-service/internal/testutil"
)

func marshalBody(t *testing.T, body map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return data
}

func TestUnmarshal_CompleteBody(t *testing.T) {
	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, testutil.ReferenceApplication()), &req)
	require.NoError(t, err)

	require.NotNil(t, req.ExternalRiskEstimate)
	assert.Equal(t, 55.0, *req.ExternalRiskEstimate)
}

func TestUnmarshal_MissingFieldRejected(t *testing.T) {
	body := testutil.ReferenceApplication()
	delete(body, "NumTotalTrades")

	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, body), &req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "NumTotalTrades", vErr.Field)
	assert.Contains(t, vErr.Error(), "required")
}

func TestUnmarshal_WrongTypeRejected(t *testing.T) {
	body := testutil.ReferenceApplication()
	body["AverageMInFile"] = "not-a-number"

	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, body), &req)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "AverageMInFile", vErr.Field)
}

func TestUnmarshal_NullAccepted(t *testing.T) {
	body := testutil.ReferenceApplication()
	body["MSinceMostRecentDelq"] = nil

	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, body), &req)
	require.NoError(t, err)
	assert.Nil(t, req.MSinceMostRecentDelq)
}

func TestUnmarshal_UnknownFieldIgnored(t *testing.T) {
	body := testutil.ReferenceApplication()
	body["SomethingElse"] = 42.0

	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, body), &req)
	assert.NoError(t, err)
}

func TestUnmarshal_IntegerValuesAccepted(t *testing.T) {
	body := testutil.ReferenceApplication()
	body["NumTotalTrades"] = 12

	var req CreditApplicationRequest
	err := json.Unmarshal(marshalBody(t, body), &req)
	require.NoError(t, err)
	require.NotNil(t, req.NumTotalTrades)
	assert.Equal(t, 12.0, *req.NumTotalTrades)
}

func TestVector_SchemaOrderAndNulls(t *testing.T) {
	body := testutil.ApplicationBody(map[string]any{
		"MaxDelqEver":           6.0,
		"PercentTradesWBalance": nil,
	})

	var req CreditApplicationRequest
	require.NoError(t, json.Unmarshal(marshalBody(t, body), &req))

	vec := req.Vector()
	require.Len(t, vec, domain.NumFeatures())
	assert.Equal(t, 6.0, vec[domain.FeatureIndex("MaxDelqEver")])
	assert.True(t, math.IsNaN(vec[domain.FeatureIndex("PercentTradesWBalance")]))
	assert.Equal(t, 72.0, vec[domain.FeatureIndex("ExternalRiskEstimate")])
}
