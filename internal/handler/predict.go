package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"credisight-service/internal/dto"
)

func (h *Handler) PredictLogistic(c *gin.Context) {
	h.predict(c, "logistic", h.predictUC.Logistic)
}

func (h *Handler) PredictXGB(c *gin.Context) {
	h.predict(c, "xgb", h.predictUC.XGBoost)
}

func (h *Handler) predict(c *gin.Context, model string, score func([]float64) (float64, error)) {
	var req dto.CreditApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ValidationFailures.Inc()
		mapDomainError(c, err)
		return
	}

	start := time.Now()
	prob, err := score(req.Vector())
	if err != nil {
		log.WithError(err).WithField("model", model).Error("prediction failed")
		mapDomainError(c, err)
		return
	}
	h.metrics.ScoringLatency.Observe(time.Since(start).Seconds())
	h.metrics.PredictionsTotal.WithLabelValues(model).Inc()

	c.JSON(http.StatusOK, dto.PredictionResponse{ProbabilityOfDefault: prob})
}
