package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-link-shortener/analytics"
	"go-link-shortener/types"
	"go.uber.org/zap"
)

// GetAnalytics summarizes the stored links for the ?timeframe= selector.
func (h *LinkHandler) GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	tf, err := analytics.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		h.logger.Info("Rejected analytics request", zap.String("timeframe", c.Query("timeframe")))
		h.handleError(c, err, nil)
		return
	}

	summary, err := h.service.Analytics(ctx, tf)
	if err != nil {
		h.handleError(c, err, map[error]string{
			context.DeadlineExceeded: errorTimeout,
			nil:                      errorAnalytics,
		})
		return
	}

	h.logger.Debug("Computed analytics", zap.String("timeframe", string(tf)), zap.Int("links", summary.TotalGeneratedLinks))
	c.JSON(http.StatusOK, summary)
}

// PostAnalytics summarizes a link collection supplied in the request body.
func (h *LinkHandler) PostAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.AnalyticsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	tf, err := analytics.ParseTimeframe(input.Timeframe)
	if err != nil {
		h.handleError(c, err, nil)
		return
	}

	summary, err := h.service.Summarize(ctx, input.Links, tf)
	if err != nil {
		h.handleError(c, err, map[error]string{
			context.DeadlineExceeded: errorTimeout,
			nil:                      errorAnalytics,
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}
