package api

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves data exports.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportResponse is export metadata plus a short-lived download URL.
type ExportResponse struct {
	Export      domain.Export `json:"export"`
	DownloadURL string        `json:"downloadUrl"`
}

// CreateExport godoc
// @Summary Export all user data
// @Description Writes books, records and health entries as JSON to object storage.
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 201 {object} ExportResponse
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /exports [post]
func (h *ExportHandler) CreateExport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	export, url, err := h.exportService.ExportUserData(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ExportResponse{Export: *export, DownloadURL: url})
}

// ListExports godoc
// @Summary List previous exports
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Export
// @Router /exports [get]
func (h *ExportHandler) ListExports(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	exports, err := h.exportService.ListExports(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exports)
}

// GetExportURL godoc
// @Summary Fresh download URL for an export
// @Tags Exports
// @Produce json
// @Security BearerAuth
// @Param exportId path string true "Export ID"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "Export not found"
// @Router /exports/{exportId}/url [get]
func (h *ExportHandler) GetExportURL(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	url, err := h.exportService.GetExportURL(c.Request.Context(), userID, c.Param("exportId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// DeleteExport godoc
// @Summary Delete an export
// @Tags Exports
// @Security BearerAuth
// @Param exportId path string true "Export ID"
// @Success 204 "No Content"
// @Failure 404 {object} gin.H "Export not found"
// @Router /exports/{exportId} [delete]
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.exportService.DeleteExport(c.Request.Context(), userID, c.Param("exportId")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
