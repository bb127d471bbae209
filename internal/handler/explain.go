package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"credisight-service/internal/dto"
)

func (h *Handler) ExplainXGB(c *gin.Context) {
	var req dto.CreditApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.ValidationFailures.Inc()
		mapDomainError(c, err)
		return
	}

	start := time.Now()
	explanation, err := h.explainUC.Explain(req.Vector())
	if err != nil {
		log.WithError(err).Error("explanation failed")
		mapDomainError(c, err)
		return
	}
	h.metrics.ScoringLatency.Observe(time.Since(start).Seconds())
	h.metrics.ExplanationsTotal.Inc()

	c.JSON(http.StatusOK, dto.ToExplanationResponse(explanation))
}
