package api

import (
	"alcyxob/tracker-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves body-metric entries.
type HealthHandler struct {
	healthService service.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// SaveHealthEntryRequest carries at least one of the two metrics.
type SaveHealthEntryRequest struct {
	Weight            *float64 `json:"weight"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage"`
}

// ListEntries godoc
// @Summary List health entries
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} domain.HealthEntry
// @Router /health [get]
func (h *HealthHandler) ListEntries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	entries, err := h.healthService.ListHealthEntries(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// LatestEntry godoc
// @Summary Most recent health entry
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.HealthEntry
// @Failure 404 {object} gin.H "No entries yet"
// @Router /health/latest [get]
func (h *HealthHandler) LatestEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	entry, err := h.healthService.LatestHealthEntry(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// BodyMetrics godoc
// @Summary Body-metric series and trend
// @Tags Health
// @Produce json
// @Security BearerAuth
// @Param period query string false "week, month (default) or year"
// @Success 200 {object} tracker.BodyMetrics
// @Failure 400 {object} gin.H "Unknown period"
// @Router /health/metrics [get]
func (h *HealthHandler) BodyMetrics(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	metrics, err := h.healthService.BodyMetrics(c.Request.Context(), userID, c.DefaultQuery("period", "month"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// SaveEntry godoc
// @Summary Save the health entry of a date
// @Description Upserts by date. Both metrics are replaced; omitting one clears it.
// @Tags Health
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param entry body SaveHealthEntryRequest true "Metrics"
// @Success 200 {object} domain.HealthEntry
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /health/{date} [put]
func (h *HealthHandler) SaveEntry(c *gin.Context) {
	var req SaveHealthEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	entry, err := h.healthService.SaveHealthEntry(c.Request.Context(), userID, c.Param("date"), req.Weight, req.BodyFatPercentage)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry godoc
// @Summary Delete a health entry
// @Tags Health
// @Security BearerAuth
// @Param entryId path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} gin.H "Entry not found"
// @Router /health/{entryId} [delete]
func (h *HealthHandler) DeleteEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.healthService.DeleteHealthEntry(c.Request.Context(), userID, c.Param("entryId")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
