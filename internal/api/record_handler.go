package api

import (
	"alcyxob/tracker-app/internal/domain"
	"alcyxob/tracker-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordHandler serves activity records, the completion index and draft selections.
type RecordHandler struct {
	activityService service.ActivityService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(activityService service.ActivityService) *RecordHandler {
	return &RecordHandler{activityService: activityService}
}

// SaveRecordRequest is the full state of one day; it replaces any existing record.
type SaveRecordRequest struct {
	Training      domain.TrainingFlags   `json:"training"`
	StudyProgress []domain.StudyProgress `json:"studyProgress"`
}

// SaveDraftRequest holds the chapter selections of an unsaved day.
type SaveDraftRequest struct {
	Selections []domain.DraftSelection `json:"selections"`
}

// ListRecords godoc
// @Summary List activity records
// @Tags Records
// @Produce json
// @Security BearerAuth
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Success 200 {array} domain.ActivityRecord
// @Router /records [get]
func (h *RecordHandler) ListRecords(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	records, err := h.activityService.ListActivityRecords(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetRecord godoc
// @Summary Get the record of a date
// @Tags Records
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} domain.ActivityRecord
// @Failure 404 {object} gin.H "No record for this date"
// @Router /records/{date} [get]
func (h *RecordHandler) GetRecord(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	record, err := h.activityService.GetActivityRecord(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// SaveRecord godoc
// @Summary Save the record of a date
// @Description Upserts the day's training flags and study list and clears the day's draft.
// @Tags Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param record body SaveRecordRequest true "Day state"
// @Success 200 {object} domain.ActivityRecord
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /records/{date} [put]
func (h *RecordHandler) SaveRecord(c *gin.Context) {
	var req SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	record, err := h.activityService.SaveActivityRecord(c.Request.Context(), userID, c.Param("date"), req.Training, req.StudyProgress)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// CompletedChapters godoc
// @Summary IDs of completed chapters
// @Tags Completion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "chapterIds"
// @Router /completion/chapters [get]
func (h *RecordHandler) CompletedChapters(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	ids, err := h.activityService.CompletedChapterIDs(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chapterIds": ids})
}

// ChapterCompletion godoc
// @Summary Completion date of a chapter
// @Tags Completion
// @Produce json
// @Security BearerAuth
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} gin.H "chapterId, completed, completedDate"
// @Router /completion/chapters/{chapterId} [get]
func (h *RecordHandler) ChapterCompletion(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	chapterID := c.Param("chapterId")
	date, completed, err := h.activityService.ChapterCompletionDate(c.Request.Context(), userID, chapterID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	resp := gin.H{"chapterId": chapterID, "completed": completed, "completedDate": nil}
	if completed {
		resp["completedDate"] = date
	}
	c.JSON(http.StatusOK, resp)
}

// GetDraft godoc
// @Summary Draft chapter selection of a date
// @Tags Drafts
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} SaveDraftRequest
// @Router /drafts/{date} [get]
func (h *RecordHandler) GetDraft(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	selections, err := h.activityService.GetDraftSelection(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SaveDraftRequest{Selections: nonNilSelections(selections)})
}

// SaveDraft godoc
// @Summary Save a draft chapter selection
// @Description Unknown books and chapters are dropped; an empty result removes the draft.
// @Tags Drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param draft body SaveDraftRequest true "Selections"
// @Success 200 {object} SaveDraftRequest "What was kept"
// @Router /drafts/{date} [put]
func (h *RecordHandler) SaveDraft(c *gin.Context) {
	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	kept, err := h.activityService.SaveDraftSelection(c.Request.Context(), userID, c.Param("date"), req.Selections)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SaveDraftRequest{Selections: nonNilSelections(kept)})
}

// ClearDraft godoc
// @Summary Clear a draft chapter selection
// @Tags Drafts
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 204 "No Content"
// @Router /drafts/{date} [delete]
func (h *RecordHandler) ClearDraft(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.activityService.ClearDraftSelection(c.Request.Context(), userID, c.Param("date")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func nonNilSelections(s []domain.DraftSelection) []domain.DraftSelection {
	if s == nil {
		return []domain.DraftSelection{}
	}
	return s
}
