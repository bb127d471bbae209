package handler

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credisight-service/internal/artifact"
	"credisight-service/internal/metrics"
	"credisight-service/internal/testutil"
	"credisight-service/internal/usecase"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prePath, logPath, xgbPath := testutil.WriteArtifacts(t, t.TempDir())
	bundle, err := artifact.LoadBundle(prePath, logPath, xgbPath)
	require.NoError(t, err)

	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	h := New(usecase.NewPredictUseCase(bundle), usecase.NewExplainUseCase(bundle), m)

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoot(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CrediSight")
}

func TestPredictLogistic(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/predict/logistic", testutil.ReferenceApplication())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	p, ok := resp["probability_of_default"]
	require.True(t, ok)
	assert.InDelta(t, 1/(1+math.Exp(-2.7)), p, 1e-9)
}

func TestPredictXGB(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/predict/xgb", testutil.ReferenceApplication())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1/(1+math.Exp(-2.4)), resp["probability_of_default"], 1e-9)
}

func TestPredict_ProbabilityInRange(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/predict/logistic", "/predict/xgb"} {
		w := postJSON(t, r, path, testutil.ApplicationBody(nil))
		require.Equal(t, http.StatusOK, w.Code, path)

		var resp map[string]float64
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.GreaterOrEqual(t, resp["probability_of_default"], 0.0, path)
		assert.LessOrEqual(t, resp["probability_of_default"], 1.0, path)
	}
}

func TestPredict_MissingFieldRejected(t *testing.T) {
	r := setupRouter(t)

	body := testutil.ReferenceApplication()
	delete(body, "ExternalRiskEstimate")

	for _, path := range []string{"/predict/logistic", "/predict/xgb", "/explain/xgb"} {
		w := postJSON(t, r, path, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "ExternalRiskEstimate", path)
	}
}

func TestPredict_WrongTypeRejected(t *testing.T) {
	r := setupRouter(t)

	body := testutil.ReferenceApplication()
	body["NumInqLast6M"] = "many"

	w := postJSON(t, r, "/predict/xgb", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NumInqLast6M")
}

func TestPredict_NullFieldsAccepted(t *testing.T) {
	r := setupRouter(t)

	body := testutil.ApplicationBody(map[string]any{
		"ExternalRiskEstimate": nil,
		"AverageMInFile":       nil,
	})

	w := postJSON(t, r, "/predict/xgb", body)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPredict_MalformedBodyRejected(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("POST", "/predict/xgb", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredict_EmptyBodyRejected(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("POST", "/predict/logistic", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExplainXGB(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/explain/xgb", testutil.ReferenceApplication())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		BaseValue    float64 `json:"base_value"`
		Explanations []struct {
			Feature   string  `json:"feature"`
			SHAPValue float64 `json:"shap_value"`
		} `json:"explanations"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.InDelta(t, testutil.FixtureBaseValue, resp.BaseValue, 1e-9)
	require.NotEmpty(t, resp.Explanations)

	// documented example: ExternalRiskEstimate must rank first
	assert.Equal(t, "ExternalRiskEstimate", resp.Explanations[0].Feature)

	for i := 1; i < len(resp.Explanations); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(resp.Explanations[i-1].SHAPValue),
			math.Abs(resp.Explanations[i].SHAPValue))
	}

	assert.Contains(t, resp.Summary, "high-risk profile")
}

func TestExplainXGB_Idempotent(t *testing.T) {
	r := setupRouter(t)

	first := postJSON(t, r, "/explain/xgb", testutil.ReferenceApplication())
	second := postJSON(t, r, "/explain/xgb", testutil.ReferenceApplication())

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestHealthz(t *testing.T) {
	r := setupRouter(t)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter(t)

	// served predictions must show up in the exposition
	w := postJSON(t, r, "/predict/xgb", testutil.ReferenceApplication())
	require.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `predictions_total{model="xgb"} 1`)
	assert.Contains(t, w.Body.String(), "explanations_total 0")
}

func TestExplain_NoLogisticExplainRoute(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(t, r, "/explain/logistic", testutil.ReferenceApplication())
	assert.Equal(t, http.StatusNotFound, w.Code)
}
