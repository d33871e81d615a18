package api

import (
	"alcyxob/tracker-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// MonthlyStats godoc
// @Summary Statistics of one month
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} tracker.MonthlyStats
// @Failure 400 {object} gin.H "Invalid month"
// @Router /stats/monthly [get]
func (h *StatsHandler) MonthlyStats(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	month := time.Now().UTC()
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "month must be formatted as YYYY-MM")
			return
		}
		month = parsed
	}
	stats, err := h.statsService.MonthlyStats(c.Request.Context(), userID, month)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ChartData godoc
// @Summary Activity counts for the last six months
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} tracker.ChartPoint
// @Router /stats/chart [get]
func (h *StatsHandler) ChartData(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	points, err := h.statsService.ChartData(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// TrainingDistribution godoc
// @Summary Running vs strength share of the current month
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tracker.TrainingDistribution
// @Router /stats/distribution [get]
func (h *StatsHandler) TrainingDistribution(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	dist, err := h.statsService.TrainingDistribution(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

// BookProgress godoc
// @Summary Completion progress per book
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} tracker.BookProgressSummary
// @Router /stats/books [get]
func (h *StatsHandler) BookProgress(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	progress, err := h.statsService.BookProgress(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
