package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reviewlens/backend/internal/services"
	"github.com/reviewlens/backend/pkg/response"
)

// StatisticsHandler serves dashboard aggregates and trends.
type StatisticsHandler struct {
	stats  *services.StatisticsService
	trends *services.TrendService
}

func NewStatisticsHandler(stats *services.StatisticsService, trends *services.TrendService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, trends: trends}
}

// Statistics handles GET /api/statistics.
func (h *StatisticsHandler) Statistics(c *gin.Context) {
	stats, err := h.stats.Aggregate()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

// Trends handles GET /api/trends?days=N. days defaults to 7 when absent
// but a present, malformed value is rejected.
func (h *StatisticsHandler) Trends(c *gin.Context) {
	daysParam := c.DefaultQuery("days", "7")
	days, err := strconv.Atoi(daysParam)
	if err != nil {
		response.Error(c, response.NewBadRequest("days must be a positive integer"))
		return
	}

	points, err := h.trends.Trend(days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"days":   days,
		"trends": points,
	})
}
