package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"credisight-service/internal/metrics"
	"credisight-service/internal/usecase"
)

type Handler struct {
	predictUC *usecase.PredictUseCase
	explainUC *usecase.ExplainUseCase
	metrics   *metrics.Metrics
}

func New(predictUC *usecase.PredictUseCase, explainUC *usecase.ExplainUseCase, m *metrics.Metrics) *Handler {
	return &Handler{predictUC: predictUC, explainUC: explainUC, metrics: m}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)

	// Prediction
	r.POST("/predict/logistic", h.PredictLogistic)
	r.POST("/predict/xgb", h.PredictXGB)

	// Explanation (tree ensemble only; the logistic model has no explainer)
	r.POST("/explain/xgb", h.ExplainXGB)

	// Operational
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.metrics.Gatherer, promhttp.HandlerOpts{})))
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the CrediSight credit risk API."})
}

// Healthz reports liveness. The process only serves traffic once all
// artifacts are loaded, so reaching the handler at all means healthy.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
